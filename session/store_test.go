package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "token", "abc"))
	v, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, store.Set(ctx, "token", "def"))
	v, _ = store.Get(ctx, "token")
	assert.Equal(t, "def", v)

	require.NoError(t, store.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an absent key is not an error
	assert.NoError(t, store.Delete(ctx, "token"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	exerciseStore(t, NewFileStore(path))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "storage.json")

	require.NoError(t, NewFileStore(path).Set(ctx, "token", "persisted"))
	require.NoError(t, NewFileStore(path).Set(ctx, "theme", "dark"))

	v, err := NewFileStore(path).Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Get(context.Background(), "token")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "storage.json"))

	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, k, k))
		}(k)
	}
	wg.Wait()

	for _, k := range keys {
		v, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, k, v)
	}
}
