package dataref

import (
	"context"
	"encoding/base64"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/dataref/digest"
)

// UploadFunc stores data in a remote blob store and returns a reference
// describing how the blob can later be retrieved. name is the entry name of
// the payload within its mapping and may be empty; implementations are free
// to ignore it. Must succeed or fail as a unit.
type UploadFunc func(ctx context.Context, data []byte, name string) (*DataRef, error)

// UploadStringFunc is the single-value upload variant used by
// Base64ToDataRef. value is the base64-encoded payload.
type UploadStringFunc func(ctx context.Context, value string) (*DataRef, error)

// CopyLargeBlobsToRemote walks a mapping of named references and replaces
// every entry whose inline payload exceeds the size threshold with the
// reference returned from uploading its decoded bytes. Entries at or below
// the threshold, nil entries and hash-typed entries pass through unchanged.
//
// The per-entry decision follows the effective type:
//
//   - hash: never offloaded, it is already an opaque remote handle.
//   - json: the value is serialized by the configured codec; oversized
//     serialized text is offloaded as its UTF-8 bytes.
//   - utf8: an oversized string is offloaded as its UTF-8 bytes.
//   - base64 and any unrecognized tag: an oversized string is base64-decoded
//     and the decoded bytes are offloaded.
//
// Each offloaded entry's replacement carries the content digest of the
// decoded bytes in its Hash field, computed locally. Whatever digest the
// upload call put there is discarded in favor of the local one.
//
// A nil mapping yields a nil mapping. The output always has the same key set
// as the input. Oversized entries are uploaded concurrently; the first
// failing upload fails the whole call and no partial result is returned.
func CopyLargeBlobsToRemote(ctx context.Context, refs Refs, upload UploadFunc, optFns ...func(*Options)) (Refs, error) {
	if refs == nil {
		return nil, nil
	}
	o := applyOptions(optFns)

	out := make(Refs, len(refs))

	type job struct {
		name string
		data []byte
	}
	var jobs []job

	for name, ref := range refs {
		if ref == nil {
			out[name] = nil
			continue
		}
		data, offload, err := oversizedPayload(ref, o)
		if err != nil {
			return nil, err
		}
		if !offload {
			out[name] = ref
			continue
		}
		jobs = append(jobs, job{name: name, data: data})
	}

	if len(jobs) == 0 {
		return out, nil
	}

	// Unordered fan-out with a structured join. Each goroutine owns exactly
	// one result slot, so assembly below needs no locking.
	results := make([]*DataRef, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			sum := digest.Sum(j.data)

			ref, err := upload(gctx, j.data, j.name)
			o.Logger.LogOffload(gctx, j.name, len(j.data), err)
			if err != nil {
				return &TransportError{Op: "upload", cause: err}
			}

			replaced := *ref
			replaced.Hash = sum
			results[i] = &replaced
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, j := range jobs {
		out[j.name] = results[i]
	}
	return out, nil
}

// oversizedPayload decides whether ref must be offloaded and, if so, returns
// its decoded bytes.
func oversizedPayload(ref *DataRef, o Options) (data []byte, offload bool, err error) {
	switch ref.EffectiveType() {
	case TypeHash:
		// Already a stored blob; nothing to copy.
		return nil, false, nil

	case TypeJSON:
		text, err := o.Codec.Marshal(ref.Value)
		if err != nil {
			return nil, false, &DecodeError{Encoding: TypeJSON, cause: err}
		}
		if len(text) > o.MaxInlineLength {
			return text, true, nil
		}

	case TypeUTF8:
		s, err := stringValue(ref, TypeUTF8)
		if err != nil {
			return nil, false, err
		}
		if len(s) > o.MaxInlineLength {
			return []byte(s), true, nil
		}

	default: // TypeBase64 and anything unrecognized
		s, err := stringValue(ref, TypeBase64)
		if err != nil {
			return nil, false, err
		}
		if len(s) > o.MaxInlineLength {
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, false, &DecodeError{Encoding: TypeBase64, cause: err}
			}
			return decoded, true, nil
		}
	}

	return nil, false, nil
}

// Base64ToDataRef turns a base64-encoded string into a reference, offloading
// it only when its length exceeds the threshold.
//
// Below the threshold the string is kept inline and no upload happens; the
// returned ref carries the content digest of the string unless
// WithIgnoreHash is set. Above the threshold the string is uploaded as-is
// and, unless WithIgnoreHash is set, the returned reference's Hash is
// overwritten with the locally computed digest of the original string.
//
// Inlining small values avoids external round-trips and keeps aggregate
// state small when many references accumulate across a long-running job.
func Base64ToDataRef(ctx context.Context, value string, upload UploadStringFunc, optFns ...func(*Options)) (*DataRef, error) {
	o := applyOptions(optFns)

	if len(value) <= o.MaxInlineLength {
		ref := NewBase64Ref(value)
		if !o.IgnoreHash {
			ref.Hash = digest.Sum([]byte(value))
		}
		return ref, nil
	}

	ref, err := upload(ctx, value)
	o.Logger.LogOffload(ctx, "", len(value), err)
	if err != nil {
		return nil, &TransportError{Op: "upload", cause: err}
	}
	if o.IgnoreHash {
		return ref, nil
	}

	replaced := *ref
	replaced.Hash = digest.Sum([]byte(value))
	return &replaced, nil
}
