package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*LocalEvidenceStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocalEvidenceStore(dir, zap.NewNop())
	require.NoError(t, err)
	return store, dir
}

func TestLocalEvidenceStore_Store(t *testing.T) {
	ctx := context.Background()

	t.Run("writes content under the given name", func(t *testing.T) {
		store, dir := newTestStore(t)

		err := store.Store(ctx, "budi_20260718080000_selfie.jpg", strings.NewReader("jpeg-bytes"), 10)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "budi_20260718080000_selfie.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "jpeg-bytes", string(data))
	})

	t.Run("refuses to overwrite an existing photo", func(t *testing.T) {
		store, _ := newTestStore(t)

		require.NoError(t, store.Store(ctx, "photo.jpg", strings.NewReader("first"), 5))
		err := store.Store(ctx, "photo.jpg", strings.NewReader("second"), 6)
		assert.Error(t, err)
	})

	t.Run("rejects names with path separators", func(t *testing.T) {
		store, dir := newTestStore(t)

		err := store.Store(ctx, "../escape.jpg", strings.NewReader("x"), 1)
		assert.Error(t, err)

		_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "escape.jpg"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.Error(t, store.Store(ctx, "", strings.NewReader("x"), 1))
	})
}

func TestLocalEvidenceStore_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a stored photo", func(t *testing.T) {
		store, dir := newTestStore(t)

		require.NoError(t, store.Store(ctx, "photo.jpg", strings.NewReader("x"), 1))
		require.NoError(t, store.Remove(ctx, "photo.jpg"))

		_, err := os.Stat(filepath.Join(dir, "photo.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("removing a missing photo is not an error", func(t *testing.T) {
		store, _ := newTestStore(t)
		assert.NoError(t, store.Remove(ctx, "never-stored.jpg"))
	})
}

func TestNewLocalEvidenceStore(t *testing.T) {
	t.Run("creates the root directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "photos")
		_, err := NewLocalEvidenceStore(dir, nil)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("requires a directory", func(t *testing.T) {
		_, err := NewLocalEvidenceStore("", nil)
		assert.Error(t, err)
	})
}
