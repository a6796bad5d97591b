package blobstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"

	"github.com/hupe1980/dataref"
	"github.com/hupe1980/dataref/digest"
)

// DedupIndex maps content digests to blob keys so identical payloads are
// stored once. Implementations must be safe for concurrent use.
type DedupIndex interface {
	// Lookup returns the key a digest was previously stored under.
	Lookup(ctx context.Context, digest string) (key string, ok bool, err error)

	// Record associates a digest with the key it was stored under.
	Record(ctx context.Context, digest, key string) error
}

// UploaderOptions configures an Uploader.
type UploaderOptions struct {
	// Prefix is prepended to all blob keys (e.g. "payloads/").
	Prefix string

	// BaseURL, when set, makes the uploader return url-typed references
	// (BaseURL + "/" + key) instead of hash-typed handles. The store content
	// must then be reachable at those URLs.
	BaseURL string

	// Index, when set, skips storing payloads whose digest it already knows.
	Index DedupIndex
}

// WithPrefix sets the key prefix for stored payloads.
func WithPrefix(prefix string) func(*UploaderOptions) {
	return func(o *UploaderOptions) {
		o.Prefix = prefix
	}
}

// WithBaseURL makes the uploader hand out url-typed references.
func WithBaseURL(baseURL string) func(*UploaderOptions) {
	return func(o *UploaderOptions) {
		o.BaseURL = baseURL
	}
}

// WithDedupIndex enables digest-based deduplication of uploads.
func WithDedupIndex(index DedupIndex) func(*UploaderOptions) {
	return func(o *UploaderOptions) {
		o.Index = index
	}
}

// Uploader bridges a BlobStore to the upload capability the offload policy
// expects. Payloads are stored content-addressed: the blob key is the
// content digest of the bytes, so identical payloads share one blob.
type Uploader struct {
	store BlobStore
	opts  UploaderOptions
}

// NewUploader creates an Uploader on top of the given store.
func NewUploader(store BlobStore, optFns ...func(*UploaderOptions)) *Uploader {
	var opts UploaderOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Uploader{store: store, opts: opts}
}

// Upload stores data under its content digest and returns a reference to it.
// It satisfies dataref.UploadFunc. The entry name is not part of the key;
// identical content uploaded under different names dedups to one blob.
func (u *Uploader) Upload(ctx context.Context, data []byte, _ string) (*dataref.DataRef, error) {
	sum := digest.Sum(data)
	key := path.Join(u.opts.Prefix, sum)

	if u.opts.Index != nil {
		existing, ok, err := u.opts.Index.Lookup(ctx, sum)
		if err != nil {
			return nil, fmt.Errorf("dedup lookup: %w", err)
		}
		if ok {
			return u.ref(existing, sum), nil
		}
	}

	if err := u.store.Put(ctx, key, data); err != nil {
		return nil, err
	}

	if u.opts.Index != nil {
		if err := u.opts.Index.Record(ctx, sum, key); err != nil {
			return nil, fmt.Errorf("dedup record: %w", err)
		}
	}

	return u.ref(key, sum), nil
}

// UploadString is the single-value upload variant used by
// dataref.Base64ToDataRef. The base64 string is decoded and the raw bytes
// are stored.
func (u *Uploader) UploadString(ctx context.Context, value string) (*dataref.DataRef, error) {
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode upload value: %w", err)
	}
	return u.Upload(ctx, data, "")
}

func (u *Uploader) ref(key, sum string) *dataref.DataRef {
	if u.opts.BaseURL != "" {
		ref := dataref.NewURLRef(u.opts.BaseURL + "/" + key)
		ref.Hash = sum
		return ref
	}
	return dataref.NewHashRef(key, sum)
}

// Resolve materializes any reference, including the hash-typed handles an
// Uploader hands out, which dataref.DataRefToBlob refuses to resolve
// locally. For hash-typed refs the value is the blob key in the given store.
// The Hash field is trusted as-is and not re-verified against the content;
// callers needing an integrity check can run digest.Verify on the result.
func Resolve(ctx context.Context, store BlobStore, ref *dataref.DataRef, optFns ...func(*dataref.Options)) (*dataref.Blob, error) {
	if ref.EffectiveType() != dataref.TypeHash {
		return dataref.DataRefToBlob(ctx, ref, optFns...)
	}

	key, ok := ref.Value.(string)
	if !ok {
		return nil, fmt.Errorf("hash reference value is not a string: %v", ref.Value)
	}
	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return dataref.NewBlob(data), nil
}
