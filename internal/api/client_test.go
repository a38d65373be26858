package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biggernumbers/biggernumbers/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLinkToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create_link_token", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"link_token": "link-sandbox-abc"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	token, err := client.CreateLinkToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "link-sandbox-abc", token)
}

func TestCreateLinkToken_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Error creating link token: INVALID_API_KEYS"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateLinkToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProvider)
	assert.Contains(t, err.Error(), "INVALID_API_KEYS")
}

func TestCreateLinkToken_NetworkError(t *testing.T) {
	// Nothing listens here.
	client := NewClient("http://127.0.0.1:1")
	_, err := client.CreateLinkToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestExchangePublicToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PublicToken string `json:"public_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "public-sandbox-123", req.PublicToken)
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "access-sandbox-456"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	accessToken, err := client.ExchangePublicToken(context.Background(), "public-sandbox-123")
	require.NoError(t, err)
	assert.Equal(t, "access-sandbox-456", accessToken)
}

func TestExchangePublicToken_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Error exchanging token: INVALID_PUBLIC_TOKEN"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ExchangePublicToken(context.Background(), "public-used")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExchangeFailed)
}

func TestSpending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spending/access-sandbox-456", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]float64{
			"daily":   10,
			"weekly":  30,
			"monthly": 60,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	snap, err := client.Spending(context.Background(), "access-sandbox-456")
	require.NoError(t, err)
	assert.InDelta(t, 10, snap.Daily, 1e-9)
	assert.InDelta(t, 30, snap.Weekly, 1e-9)
	assert.InDelta(t, 60, snap.Monthly, 1e-9)
}
