// Package api provides the client for the dashboard's own HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/common"
	"github.com/biggernumbers/biggernumbers/internal/spending"
)

// Client talks to the spending API server. Calls are strictly sequential
// from the caller's perspective; the client holds no state beyond the
// base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an API client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateLinkToken asks the server to mint a link token for a new linking
// session.
func (c *Client) CreateLinkToken(ctx context.Context) (string, error) {
	var resp struct {
		LinkToken string `json:"link_token"`
	}
	if err := c.post(ctx, "/create_link_token", nil, &resp); err != nil {
		return "", err
	}
	if resp.LinkToken == "" {
		return "", fmt.Errorf("%w: server returned empty link token", common.ErrProvider)
	}
	return resp.LinkToken, nil
}

// ExchangePublicToken trades a single-use public token for a durable
// access token.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, error) {
	req := struct {
		PublicToken string `json:"public_token"`
	}{PublicToken: publicToken}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.post(ctx, "/exchange_public_token", req, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrExchangeFailed, err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: server returned empty access token", common.ErrExchangeFailed)
	}
	return resp.AccessToken, nil
}

// Spending fetches the aggregated snapshot for an access token.
func (c *Client) Spending(ctx context.Context, accessToken string) (spending.Snapshot, error) {
	var snap spending.Snapshot
	path := "/spending/" + url.PathEscape(accessToken)
	if err := c.get(ctx, path, &snap); err != nil {
		return spending.Snapshot{}, err
	}
	return snap, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return c.do(req, out)
}

// do executes a request and decodes the JSON response. The client only
// distinguishes ok from not-ok; a non-2xx status surfaces the server's
// error body verbatim.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s", common.ErrProvider, apiErr.Error)
		}
		return fmt.Errorf("%w: unexpected status %d", common.ErrProvider, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
