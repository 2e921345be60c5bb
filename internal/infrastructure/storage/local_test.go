package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLocalStore(t *testing.T) {
	newStore := func(t *testing.T) *LocalStore {
		store, err := NewLocalStore(t.TempDir(), zaptest.NewLogger(t))
		require.NoError(t, err)
		return store.(*LocalStore)
	}

	t.Run("SaveAndLoad_RoundTrips", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		key, err := store.Save(ctx, "fridge.jpg", []byte("image-bytes"), "image/jpeg")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, ".jpg"))

		data, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), data)
	})

	t.Run("Save_UsesContentTypeExtension", func(t *testing.T) {
		store := newStore(t)

		key, err := store.Save(context.Background(), "whatever.bin", []byte("x"), "image/webp")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, ".webp"))
	})

	t.Run("Delete_RemovesFile", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		key, err := store.Save(ctx, "pantry.png", []byte("x"), "image/png")
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, key))

		_, err = store.Load(ctx, key)
		assert.Error(t, err)
	})

	t.Run("Load_RejectsPathTraversal", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Load(context.Background(), "../etc/passwd")
		assert.Error(t, err)
	})

	t.Run("Delete_RejectsPathSeparators", func(t *testing.T) {
		store := newStore(t)

		err := store.Delete(context.Background(), "nested/key.jpg")
		assert.Error(t, err)
	})
}
