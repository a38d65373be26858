package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/biggernumbers/biggernumbers/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// No token yet: Disconnected.
	_, err := store.AccessToken(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.SaveAccessToken(ctx, "access-sandbox-123"))

	token, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-sandbox-123", token)

	// Saving again replaces the token.
	require.NoError(t, store.SaveAccessToken(ctx, "access-sandbox-456"))
	token, err = store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-sandbox-456", token)
}

func TestClearAccessToken_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveAccessToken(ctx, "access-sandbox-123"))
	require.NoError(t, store.ClearAccessToken(ctx))

	_, err := store.AccessToken(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	// Clearing with nothing stored is still fine.
	require.NoError(t, store.ClearAccessToken(ctx))
}

func TestSaveAccessToken_RejectsEmpty(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveAccessToken(context.Background(), "")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	require.Error(t, err)
}
