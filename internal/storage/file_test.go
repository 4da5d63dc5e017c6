package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte(`[{"id":"1","title":"Les Misérables"}]`)
	require.NoError(t, store.Save(ctx, KeyBooks, payload))

	got, err := store.Load(ctx, KeyBooks)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStoreMissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Load(context.Background(), KeyLoans)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFileStoreOverwrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyAuthors, []byte(`["first"]`)))
	require.NoError(t, store.Save(ctx, KeyAuthors, []byte(`["second"]`)))

	got, err := store.Load(ctx, KeyAuthors)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["second"]`), got)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KeyAuthors+".json", entries[0].Name())
}

func TestFileStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte(`{"k":"v"}`)
	require.NoError(t, store.Save(ctx, KeyUsers, payload))

	// mutating the caller's slice must not leak into the store
	payload[0] = 'X'
	got, err := store.Load(ctx, KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"k":"v"}`), got)
}
