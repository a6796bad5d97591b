package s3

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dataref/blobstore"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg)

	// Create a unique prefix for this test run
	prefix := fmt.Sprintf("test-dataref-%d/", time.Now().UnixNano())
	store := NewStore(client, bucket, prefix)

	t.Run("Put and Get", func(t *testing.T) {
		data := make([]byte, 1024*1024) // 1MB, exercises the transfer manager
		_, err := rand.Read(data)
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "test.blob", data))

		got, err := store.Get(ctx, "test.blob")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		keys, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, keys, "test.blob")
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "does-not-exist.blob")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "victim.blob", []byte("bye")))
		require.NoError(t, store.Delete(ctx, "victim.blob"))

		_, err := store.Get(ctx, "victim.blob")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
