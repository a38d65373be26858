// Package server exposes the HTTP/JSON API: link token creation, public
// token exchange, and spending aggregation.
package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/plaid"
)

// Server wraps http.Server with the API routes and the provider client.
type Server struct {
	http.Server
	provider plaid.Provider
	clock    func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithClock overrides the reference-time source, used by tests to pin "now".
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, provider plaid.Provider, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
		provider: provider,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/create_link_token", s.withMiddleware(http.MethodPost, s.handleCreateLinkToken))
	mux.HandleFunc("/exchange_public_token", s.withMiddleware(http.MethodPost, s.handleExchangePublicToken))
	mux.HandleFunc("/spending/{access_token}", s.withMiddleware(http.MethodGet, s.handleSpending))

	return s
}

// withMiddleware adds CORS, the method check, request logging, and basic
// response headers. The dashboard client may be served from anywhere, so
// CORS is allow-all. The method check lives here instead of in the mux
// patterns so preflight requests still get CORS headers.
func (s *Server) withMiddleware(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := generateRequestID()

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != method {
			w.Header().Set("Allow", method)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.Info("Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for log correlation.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
