package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store := NewDiskStore(dir, "/uploads/")
	ctx := context.Background()

	url, err := store.Save(ctx, "media-1-abc.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/media-1-abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "media-1-abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "media-1-abc.png"))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Remove(ctx, url))
}

func TestDiskStoreRejectsPaths(t *testing.T) {
	store := NewDiskStore(t.TempDir(), DefaultURLPrefix)
	ctx := context.Background()

	_, err := store.Save(ctx, "../escape.png", "image/png", strings.NewReader("x"), 1)
	assert.Error(t, err)

	assert.Error(t, store.Remove(ctx, "/elsewhere/file.png"))
	assert.Error(t, store.Remove(ctx, "/uploads/../db.sqlite"))
}

func TestDiskStoreNeverOverwrites(t *testing.T) {
	store := NewDiskStore(t.TempDir(), DefaultURLPrefix)
	ctx := context.Background()

	_, err := store.Save(ctx, "same.gif", "image/gif", strings.NewReader("first"), 5)
	require.NoError(t, err)
	_, err = store.Save(ctx, "same.gif", "image/gif", strings.NewReader("second"), 6)
	assert.Error(t, err)
}
