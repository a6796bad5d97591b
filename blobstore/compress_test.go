package blobstore

import (
	"bytes"
	"context"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedStore_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, algo := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(algoName(algo), func(t *testing.T) {
			inner := NewMemoryStore()
			store := NewCompressedStore(inner, algo)

			data := []byte(strings.Repeat("compress me please ", 200))
			require.NoError(t, store.Put(ctx, "k", data))

			got, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCompressedStore_ShrinksCompressibleData(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := NewCompressedStore(inner, CompressionZSTD)

	data := bytes.Repeat([]byte("aaaa"), 4096)
	require.NoError(t, store.Put(ctx, "k", data))

	stored, err := inner.Get(ctx, "k")
	require.NoError(t, err)
	assert.Less(t, len(stored), len(data))
}

func TestCompressedStore_IncompressibleDataStoredRaw(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := NewCompressedStore(inner, CompressionLZ4)

	data := make([]byte, 1024)
	_, err := rand.Read(data)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "k", data))

	stored, err := inner.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, Compression(stored[0]))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCompressedStore_EmptyPayload(t *testing.T) {
	ctx := context.Background()
	store := NewCompressedStore(NewMemoryStore(), CompressionZSTD)

	require.NoError(t, store.Put(ctx, "empty", nil))
	got, err := store.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompressedStore_RejectsTruncatedBlob(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := NewCompressedStore(inner, CompressionZSTD)

	require.NoError(t, inner.Put(ctx, "bad", []byte{0x02}))
	_, err := store.Get(ctx, "bad")
	assert.Error(t, err)
}

func algoName(algo Compression) string {
	switch algo {
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}
