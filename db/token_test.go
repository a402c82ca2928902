package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) TokenRepository {
	t.Helper()
	gdb, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	return NewTokenRepository(gdb)
}

func TestTokenRepository_GetEmpty(t *testing.T) {
	repo := openTestDB(t)

	token, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, token, "no stored credentials should yield nil, not an error")
}

func TestTokenRepository_UpsertAndGet(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &Token{AccessToken: "A1", RefreshToken: "R1"}))

	token, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "A1", token.AccessToken)
	assert.Equal(t, "R1", token.RefreshToken)

	// Upsert replaces the single row rather than adding another.
	require.NoError(t, repo.Upsert(ctx, &Token{AccessToken: "A2", RefreshToken: "R2"}))
	token, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "A2", token.AccessToken)
	assert.Equal(t, "R2", token.RefreshToken)
}

func TestTokenRepository_Delete(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &Token{AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, repo.Delete(ctx))

	token, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, token)

	// Deleting an already empty table is not an error.
	require.NoError(t, repo.Delete(ctx))
}

func TestTokenRepository_NotInitialized(t *testing.T) {
	repo := NewTokenRepository(nil)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.Upsert(ctx, &Token{}))
	assert.Error(t, repo.Delete(ctx))
}
