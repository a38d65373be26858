package main

import (
	"context"
	"fmt"
	"os"

	"github.com/biggernumbers/biggernumbers/internal/api"
	"github.com/biggernumbers/biggernumbers/internal/config"
	"github.com/biggernumbers/biggernumbers/internal/plaid"
	"github.com/biggernumbers/biggernumbers/internal/session"
	"github.com/biggernumbers/biggernumbers/internal/storage"
	"github.com/spf13/viper"
)

const defaultAPIBaseURL = "http://localhost:8000"

// initTokenStore opens the SQLite token store with proper path expansion.
func initTokenStore(ctx context.Context) (storage.TokenStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/bignum/bignum.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newAPIClient builds a client for the local API server.
func newAPIClient() *api.Client {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	return api.NewClient(baseURL)
}

// newSessionManager wires the API client and token store together and
// restores any previously linked session.
func newSessionManager(ctx context.Context) (*session.Manager, storage.TokenStore, error) {
	store, err := initTokenStore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	mgr := session.NewManager(newAPIClient(), store)
	if err := mgr.Restore(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return mgr, store, nil
}

// plaidConfigFromEnv reads Plaid credentials, preferring viper keys and
// falling back to the conventional PLAID_* environment variables.
func plaidConfigFromEnv() plaid.Config {
	cfg := plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
	}
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("PLAID_CLIENT_ID")
	}
	if cfg.Secret == "" {
		cfg.Secret = os.Getenv("PLAID_SECRET")
	}
	if cfg.Environment == "" {
		cfg.Environment = os.Getenv("PLAID_ENV")
	}
	if cfg.Environment == "" {
		cfg.Environment = "sandbox"
	}
	return cfg
}
