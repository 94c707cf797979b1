package s3

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/lfgbwt/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test-lfgbwt-%d/", time.Now().UnixNano())
	store, err := New(ctx, bucket, WithPrefix(prefix))
	require.NoError(t, err)

	data := make([]byte, 1024*1024)
	_, _ = rand.Read(data)

	w, err := store.Create(ctx, "index.lfgbwt")
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "index.lfgbwt")

	b, err := store.Open(ctx, "index.lfgbwt")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), b.Size())

	r, err := blobstore.NewReader(ctx, b)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "index.lfgbwt"))
	_, err = store.Open(ctx, "index.lfgbwt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
