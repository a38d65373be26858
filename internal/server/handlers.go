package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/biggernumbers/biggernumbers/internal/spending"
)

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeRequest struct {
	PublicToken string `json:"public_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// handleCreateLinkToken mints a link token for a new linking session.
func (s *Server) handleCreateLinkToken(w http.ResponseWriter, r *http.Request) {
	linkToken, err := s.provider.CreateLinkToken(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Link token creation failed", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Error creating link token: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, linkTokenResponse{LinkToken: linkToken})
}

// handleExchangePublicToken exchanges a single-use public token for a
// durable access token. The exchange is attempted exactly once.
func (s *Server) handleExchangePublicToken(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.PublicToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "public_token is required"})
		return
	}

	accessToken, err := s.provider.ExchangePublicToken(r.Context(), req.PublicToken)
	if err != nil {
		slog.ErrorContext(r.Context(), "Public token exchange failed", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Error exchanging token: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, exchangeResponse{AccessToken: accessToken})
}

// handleSpending fetches the last 30 days of transactions for the access
// token and reduces them to the three rolling totals. Pure read-and-reduce:
// nothing is cached or persisted.
func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	accessToken := r.PathValue("access_token")
	if accessToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "access token is required"})
		return
	}

	now := s.clock()
	start := now.AddDate(0, 0, -spending.LookbackDays)

	txns, err := s.provider.GetTransactions(r.Context(), accessToken, start, now)
	if err != nil {
		slog.ErrorContext(r.Context(), "Spending fetch failed", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Error fetching spending: " + err.Error()})
		return
	}

	snap := spending.Aggregate(txns, now)
	writeJSON(w, http.StatusOK, snap.Rounded())
}
