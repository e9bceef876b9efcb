package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Potism/studiomain/internal/storage"
)

func newStore(t *testing.T) *storage.FSBlobStore {
	t.Helper()
	store, err := storage.NewFSBlobStore(filepath.Join(t.TempDir(), "media"), "/media/")
	require.NoError(t, err)
	return store
}

func TestPutAndList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	blob, err := store.Put(ctx, "portfolio/studio-photography/a.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "portfolio/studio-photography/a.jpg", blob.Pathname)
	assert.Equal(t, "/media/portfolio/studio-photography/a.jpg", blob.URL)
	assert.Equal(t, int64(len("jpeg-bytes")), blob.Size)

	data, err := os.ReadFile(filepath.Join(store.Root(), "portfolio", "studio-photography", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	_, err = store.Put(ctx, "portfolio/studio-photography/b.jpg", strings.NewReader("more"))
	require.NoError(t, err)

	blobs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	assert.Equal(t, "portfolio/studio-photography/a.jpg", blobs[0].Pathname)
}

func TestPutOverwrites(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "x.txt", strings.NewReader("old"))
	require.NoError(t, err)
	blob, err := store.Put(ctx, "x.txt", strings.NewReader("newer"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), blob.Size)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "gone.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "gone.jpg"))
	assert.NoError(t, store.Delete(ctx, "gone.jpg"))

	blobs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, blobs)
}

func TestRejectsEscapingPathnames(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, pathname := range []string{"../outside.txt", "a/../../outside.txt", "/etc/passwd", "."} {
		_, err := store.Put(ctx, pathname, strings.NewReader("x"))
		assert.Error(t, err, "pathname %q must be rejected", pathname)
		assert.Error(t, store.Delete(ctx, pathname), "pathname %q must be rejected", pathname)
	}
}

func TestURLForTrimsBaseSlash(t *testing.T) {
	store := newStore(t)
	assert.Equal(t, "/media/a/b.jpg", store.URLFor("a/b.jpg"))
}
