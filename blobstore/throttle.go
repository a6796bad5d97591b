package blobstore

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottleConfig holds upload limits.
type ThrottleConfig struct {
	// MaxConcurrentPuts caps concurrent Put calls. If 0, unlimited.
	MaxConcurrentPuts int64

	// PutBytesPerSec is the maximum Put throughput. If 0, unlimited.
	PutBytesPerSec int64
}

// Throttle wraps a BlobStore and limits Put concurrency and throughput. The
// offload policy fans uploads out concurrently with no internal cap, so
// callers pushing large batches to a bandwidth-constrained store can impose
// one here. Reads pass through unthrottled.
type Throttle struct {
	inner   BlobStore
	sem     *semaphore.Weighted // nil if unlimited
	limiter *rate.Limiter       // nil if unlimited
}

// NewThrottle creates a throttled view of the given store.
func NewThrottle(inner BlobStore, cfg ThrottleConfig) *Throttle {
	t := &Throttle{inner: inner}
	if cfg.MaxConcurrentPuts > 0 {
		t.sem = semaphore.NewWeighted(cfg.MaxConcurrentPuts)
	}
	if cfg.PutBytesPerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(cfg.PutBytesPerSec), int(cfg.PutBytesPerSec))
	}
	return t
}

// Put writes a blob once the concurrency and rate limits admit it.
func (t *Throttle) Put(ctx context.Context, key string, data []byte) error {
	if t.sem != nil {
		if err := t.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		defer t.sem.Release(1)
	}
	if t.limiter != nil {
		if err := t.waitBytes(ctx, len(data)); err != nil {
			return err
		}
	}
	return t.inner.Put(ctx, key, data)
}

// waitBytes reserves n bytes of throughput, in burst-sized chunks so a single
// payload larger than the burst still admits.
func (t *Throttle) waitBytes(ctx context.Context, n int) error {
	burst := t.limiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := t.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Get returns the full content of a blob.
func (t *Throttle) Get(ctx context.Context, key string) ([]byte, error) {
	return t.inner.Get(ctx, key)
}

// Delete removes a blob.
func (t *Throttle) Delete(ctx context.Context, key string) error {
	return t.inner.Delete(ctx, key)
}

// List returns all blob keys with the given prefix, sorted.
func (t *Throttle) List(ctx context.Context, prefix string) ([]string, error) {
	return t.inner.List(ctx, prefix)
}
