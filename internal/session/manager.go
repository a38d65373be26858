// Package session owns the client-resident connect/disconnect lifecycle:
// the link/public/access token handoff, local token persistence, and the
// demo-mode fallback.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/biggernumbers/biggernumbers/internal/common"
	"github.com/biggernumbers/biggernumbers/internal/spending"
	"github.com/biggernumbers/biggernumbers/internal/storage"
)

// State is the session lifecycle state.
type State string

// Session states. Transitions: Disconnected → LinkPending → Exchanging →
// Connected → Disconnected.
const (
	StateDisconnected State = "disconnected"
	StateLinkPending  State = "link_pending"
	StateExchanging   State = "exchanging"
	StateConnected    State = "connected"
)

// ErrLinkExit is returned when the linking session ended without a public
// token. Callers should offer the manual continuation path (demo mode)
// rather than fail silently: some institutions never fire the success
// callback even though linking worked.
var ErrLinkExit = errors.New("linking session exited")

// API is the subset of the server API the session manager drives.
type API interface {
	CreateLinkToken(ctx context.Context) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (string, error)
	Spending(ctx context.Context, accessToken string) (spending.Snapshot, error)
}

// Manager is the client-resident session/token state machine. It is not
// safe for concurrent use: every user action runs one call to completion
// before the next begins, signaled by the loading flag.
type Manager struct {
	api     API
	store   storage.TokenStore
	logger  *slog.Logger
	handler LinkHandler

	state    State
	loading  bool
	snapshot spending.Snapshot
}

// NewManager creates a session manager over the given API and token store.
func NewManager(api API, store storage.TokenStore) *Manager {
	return &Manager{
		api:    api,
		store:  store,
		state:  StateDisconnected,
		logger: slog.Default().With("component", "session"),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Loading reports whether a call is outstanding.
func (m *Manager) Loading() bool {
	return m.loading
}

// Snapshot returns the last fetched spending snapshot.
func (m *Manager) Snapshot() spending.Snapshot {
	return m.snapshot
}

// Restore reads the persisted access token and resumes the Connected
// state if one exists. Called once at startup.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.AccessToken(ctx)
	if errors.Is(err, common.ErrNotFound) {
		m.state = StateDisconnected
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	m.state = StateConnected
	m.logger.Debug("Restored session", "demo", token == spending.DemoToken)
	return nil
}

// RequestLinkToken mints a link token for a new linking session. Failure
// leaves the state machine Disconnected; no retry is attempted.
func (m *Manager) RequestLinkToken(ctx context.Context) (string, error) {
	m.loading = true
	defer func() { m.loading = false }()

	linkToken, err := m.api.CreateLinkToken(ctx)
	if err != nil {
		m.state = StateDisconnected
		return "", common.NewUserError("Could not start bank linking", err)
	}

	m.state = StateLinkPending
	return linkToken, nil
}

// BeginLinking hands the link token to the linking capability and drives
// the session to its terminal result. Any prior session is destroyed
// before the new one opens, so stale callbacks can never fire.
func (m *Manager) BeginLinking(ctx context.Context, handler LinkHandler, linkToken string) error {
	if m.handler != nil {
		m.handler.Destroy()
	}
	m.handler = handler

	result, err := handler.Open(ctx, linkToken)
	if err != nil {
		m.state = StateDisconnected
		return common.NewUserError("Bank linking failed", err)
	}

	if result.Exit != nil {
		return m.handleLinkExit(result.Exit)
	}

	return m.HandleLinkSuccess(ctx, result.PublicToken)
}

// HandleLinkSuccess exchanges the public token and persists the resulting
// access token. On failure the state returns to Disconnected; the loading
// flag clears on every exit path.
func (m *Manager) HandleLinkSuccess(ctx context.Context, publicToken string) error {
	m.state = StateExchanging
	m.loading = true
	defer func() { m.loading = false }()

	accessToken, err := m.api.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		m.state = StateDisconnected
		return common.NewUserError("Could not complete bank connection", err)
	}

	if err := m.store.SaveAccessToken(ctx, accessToken); err != nil {
		m.state = StateDisconnected
		return common.NewUserError("Could not save bank connection", err)
	}

	m.state = StateConnected
	m.logger.Info("Bank account connected")
	return nil
}

// handleLinkExit records the exit and reports ErrLinkExit so the caller
// can offer the manual continuation path. Exit is not an error state by
// itself: the user may simply have cancelled.
func (m *Manager) handleLinkExit(exit *ExitInfo) error {
	m.state = StateDisconnected

	if exit.ErrorCode != "" {
		m.logger.Warn("Linking session exited with error",
			"error_code", exit.ErrorCode,
			"institution", exit.Institution)
		return fmt.Errorf("%w: %s - %s", ErrLinkExit, exit.ErrorCode, exit.ErrorMessage)
	}

	m.logger.Info("Linking session exited", "institution", exit.Institution)
	return ErrLinkExit
}

// UseDemoMode installs the demo sentinel token and the fixed demo
// snapshot, bypassing the real exchange. This is the deliberate
// degraded-mode fallback offered after a link exit, not an error path.
func (m *Manager) UseDemoMode(ctx context.Context) error {
	if err := m.store.SaveAccessToken(ctx, spending.DemoToken); err != nil {
		return common.NewUserError("Could not enable demo mode", err)
	}

	m.snapshot = spending.DemoSnapshot()
	m.state = StateConnected
	m.logger.Info("Demo mode enabled")
	return nil
}

// RefreshSpending fetches a fresh snapshot for the persisted token and
// replaces the held snapshot wholesale. A demo token short-circuits to
// the fixed demo snapshot without any network call.
func (m *Manager) RefreshSpending(ctx context.Context) (spending.Snapshot, error) {
	m.loading = true
	defer func() { m.loading = false }()

	token, err := m.store.AccessToken(ctx)
	if errors.Is(err, common.ErrNotFound) {
		m.state = StateDisconnected
		return spending.Snapshot{}, common.NewUserError("No bank account connected", err)
	}
	if err != nil {
		return spending.Snapshot{}, fmt.Errorf("failed to read access token: %w", err)
	}

	if token == spending.DemoToken {
		m.snapshot = spending.DemoSnapshot()
		return m.snapshot, nil
	}

	snap, err := m.api.Spending(ctx, token)
	if err != nil {
		return spending.Snapshot{}, common.NewUserError("Could not load spending", err)
	}

	m.snapshot = snap
	return snap, nil
}

// Disconnect clears the persisted token and resets the snapshot to zero.
// Idempotent: disconnecting an already-disconnected session succeeds.
func (m *Manager) Disconnect(ctx context.Context) error {
	if m.handler != nil {
		m.handler.Destroy()
		m.handler = nil
	}

	if err := m.store.ClearAccessToken(ctx); err != nil {
		return common.NewUserError("Could not disconnect", err)
	}

	m.snapshot = spending.Snapshot{}
	m.state = StateDisconnected
	m.logger.Info("Bank account disconnected")
	return nil
}
