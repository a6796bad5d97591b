package blobstore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the compression algorithm used by a CompressedStore.
type Compression uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone Compression = 0
	// CompressionLZ4 indicates LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZSTD indicates ZSTD block compression (better ratio, good for cold data).
	CompressionZSTD Compression = 2
)

// Blob framing: [Algo uint8][UncompressedSize uint32 BE][Payload...].
// If Algo == CompressionNone the payload is stored raw, which also happens
// when compression does not shrink the data.
const compressHeaderSize = 5

// ZSTD encoder/decoder are safe for concurrent EncodeAll/DecodeAll use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// lz4 block compressors are stateful, pool them.
var lz4CompressorPool = sync.Pool{
	New: func() any { return new(lz4.Compressor) },
}

// CompressedStore wraps a BlobStore and transparently compresses payloads on
// Put and decompresses them on Get. Keys, Delete and List pass through.
type CompressedStore struct {
	inner BlobStore
	algo  Compression
}

// NewCompressedStore creates a CompressedStore using the given algorithm.
func NewCompressedStore(inner BlobStore, algo Compression) *CompressedStore {
	return &CompressedStore{inner: inner, algo: algo}
}

// Put compresses data and writes it to the inner store. If compression does
// not shrink the payload, it is stored raw.
func (s *CompressedStore) Put(ctx context.Context, key string, data []byte) error {
	framed, err := compressBlob(data, s.algo)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, key, framed)
}

// Get reads a blob from the inner store and decompresses it.
func (s *CompressedStore) Get(ctx context.Context, key string) ([]byte, error) {
	framed, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decompressBlob(framed)
}

// Delete removes a blob.
func (s *CompressedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// List returns all blob keys with the given prefix, sorted.
func (s *CompressedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func frame(algo Compression, uncompressedSize int, payload []byte) []byte {
	framed := make([]byte, compressHeaderSize+len(payload))
	framed[0] = byte(algo)
	binary.BigEndian.PutUint32(framed[1:compressHeaderSize], uint32(uncompressedSize))
	copy(framed[compressHeaderSize:], payload)
	return framed
}

func compressBlob(data []byte, algo Compression) ([]byte, error) {
	if algo == CompressionNone || len(data) == 0 {
		return frame(CompressionNone, len(data), data), nil
	}

	var compressed []byte
	switch algo {
	case CompressionLZ4:
		c := lz4CompressorPool.Get().(*lz4.Compressor)
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := c.CompressBlock(data, buf)
		lz4CompressorPool.Put(c)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		compressed = zstdEncoder.EncodeAll(data, nil)
	default:
		return nil, fmt.Errorf("unknown compression type: %d", algo)
	}

	// Incompressible data is stored raw.
	if len(compressed) == 0 || len(compressed) >= len(data) {
		return frame(CompressionNone, len(data), data), nil
	}
	return frame(algo, len(data), compressed), nil
}

func decompressBlob(framed []byte) ([]byte, error) {
	if len(framed) < compressHeaderSize {
		return nil, errors.New("compressed blob too short")
	}
	algo := Compression(framed[0])
	size := binary.BigEndian.Uint32(framed[1:compressHeaderSize])
	payload := framed[compressHeaderSize:]

	switch algo {
	case CompressionNone:
		if uint32(len(payload)) != size {
			return nil, errors.New("compressed blob size mismatch")
		}
		return payload, nil
	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != size {
			return nil, errors.New("compressed blob size mismatch")
		}
		return out, nil
	case CompressionZSTD:
		out, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != size {
			return nil, errors.New("compressed blob size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown compression type: %d", algo)
	}
}
