// Package storage persists the client's local device state in SQLite.
// The only durable value is the provider access token.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biggernumbers/biggernumbers/internal/common"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// AccessTokenKey is the single key-value pair the dashboard persists.
// Its absence means the Disconnected state.
const AccessTokenKey = "plaid_access_token"

// TokenStore is the persistence contract for the session manager.
type TokenStore interface {
	SaveAccessToken(ctx context.Context, token string) error
	AccessToken(ctx context.Context) (string, error)
	ClearAccessToken(ctx context.Context) error
	Close() error
}

// SQLiteStore implements TokenStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite store at dbPath, creating the
// directory if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveAccessToken stores (or replaces) the persisted access token.
func (s *SQLiteStore) SaveAccessToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token cannot be empty", common.ErrInvalidToken)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO device_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		AccessTokenKey, token)
	if err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	return nil
}

// AccessToken returns the persisted access token, or common.ErrNotFound
// when no bank connection exists.
func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM device_state WHERE key = ?`, AccessTokenKey).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	return token, nil
}

// ClearAccessToken removes the persisted token. Idempotent: clearing an
// already-empty store succeeds.
func (s *SQLiteStore) ClearAccessToken(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM device_state WHERE key = ?`, AccessTokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear access token: %w", err)
	}
	return nil
}

// Ensure SQLiteStore implements TokenStore.
var _ TokenStore = (*SQLiteStore)(nil)
