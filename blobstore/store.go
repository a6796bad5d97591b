package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing and retrieving offloaded payloads.
// Payloads are immutable once written and are read back whole.
type BlobStore interface {
	// Put writes a blob atomically.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the full content of a blob.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all blob keys with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
