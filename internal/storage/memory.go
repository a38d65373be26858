package storage

import (
	"context"
	"fmt"

	"github.com/biggernumbers/biggernumbers/internal/common"
)

// MemoryStore is an in-memory TokenStore used by tests and demo setups.
type MemoryStore struct {
	token string
	set   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveAccessToken implements TokenStore.SaveAccessToken.
func (m *MemoryStore) SaveAccessToken(_ context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token cannot be empty", common.ErrInvalidToken)
	}
	m.token = token
	m.set = true
	return nil
}

// AccessToken implements TokenStore.AccessToken.
func (m *MemoryStore) AccessToken(_ context.Context) (string, error) {
	if !m.set {
		return "", common.ErrNotFound
	}
	return m.token, nil
}

// ClearAccessToken implements TokenStore.ClearAccessToken.
func (m *MemoryStore) ClearAccessToken(_ context.Context) error {
	m.token = ""
	m.set = false
	return nil
}

// Close implements TokenStore.Close.
func (m *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements TokenStore.
var _ TokenStore = (*MemoryStore)(nil)
