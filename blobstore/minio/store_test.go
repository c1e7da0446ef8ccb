package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/vocabtree/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ blobstore.BlobStore = (*Store)(nil)

func TestNew(t *testing.T) {
	store, err := New("localhost:9000", "bucket", WithCredentials("a", "b"), WithPrefix("orb/"))
	require.NoError(t, err)
	assert.Equal(t, "orb/voc.txt", store.key("voc.txt"))
}

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("VOCABTREE_MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-vocabtree"

	store, err := New(endpoint, bucket, WithCredentials("minioadmin", "minioadmin"), WithPrefix("test-prefix/"))
	require.NoError(t, err)

	ctx := context.Background()

	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("1 2 0 0\n0 1 1 0.5\n")
	require.NoError(t, store.Put(ctx, "voc.txt", data))

	b, err := store.Open(ctx, "voc.txt")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), b.Size())

	buf := make([]byte, len(data))
	n, err := b.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)

	rc := blobstore.NewReader(ctx, b)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, got)
	require.NoError(t, b.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "voc.txt")

	require.NoError(t, store.Delete(ctx, "voc.txt"))
	_, err = store.Open(ctx, "voc.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	wb, err := store.Create(ctx, "aborted.txt")
	require.NoError(t, err)
	_, err = wb.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, blobstore.Abort(wb))
	_, err = store.Open(ctx, "aborted.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	wb, err = store.Create(ctx, "stream.txt")
	require.NoError(t, err)
	_, err = wb.Write(data)
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	b, err = store.Open(ctx, "stream.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), b.Size())
	require.NoError(t, b.Close())

	_ = store.Delete(ctx, "stream.txt")
}
