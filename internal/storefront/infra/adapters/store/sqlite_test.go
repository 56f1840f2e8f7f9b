package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	kv, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = kv.Get(ctx, ports.KeyAuthToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, kv.Set(ctx, ports.KeyAuthToken, "tok-1"))
	value, err := kv.Get(ctx, ports.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", value)

	// Set on an existing key overwrites.
	require.NoError(t, kv.Set(ctx, ports.KeyAuthToken, "tok-2"))
	value, err = kv.Get(ctx, ports.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", value)

	require.NoError(t, kv.Delete(ctx, ports.KeyAuthToken))
	_, err = kv.Get(ctx, ports.KeyAuthToken)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	kv, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "k", "v"))

	reopened, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	value, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	kv := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, kv.Delete(ctx, "missing"))
	require.NoError(t, kv.Set(ctx, "k", "v"))
	require.NoError(t, kv.Delete(ctx, "k"))
	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
