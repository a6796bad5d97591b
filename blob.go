package dataref

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
)

// Blob holds the fully decoded bytes of a resolved reference.
type Blob struct {
	data []byte
}

// NewBlob wraps data in a Blob. The slice is not copied; callers must not
// mutate it afterwards.
func NewBlob(data []byte) *Blob {
	return &Blob{data: data}
}

// Bytes returns the underlying byte slice.
func (b *Blob) Bytes() []byte { return b.data }

// Size returns the size of the blob in bytes.
func (b *Blob) Size() int64 { return int64(len(b.data)) }

// Reader returns a new reader over the blob's bytes.
func (b *Blob) Reader() io.Reader { return bytes.NewReader(b.data) }

// DataRefToBlob materializes the bytes a reference stands for, dispatching
// on its effective type:
//
//   - hash: fails with ErrUnresolvableRef. Resolution of hash handles must
//     go through the remote store, outside this package.
//   - json: the value serialized by the configured codec, as UTF-8 bytes.
//   - utf8: the value string as UTF-8 bytes.
//   - url: the body of a GET request against the value.
//   - base64 and any unrecognized tag: the value decoded from base64.
func DataRefToBlob(ctx context.Context, ref *DataRef, optFns ...func(*Options)) (*Blob, error) {
	o := applyOptions(optFns)

	switch ref.EffectiveType() {
	case TypeHash:
		return nil, fmt.Errorf("%w: %v", ErrUnresolvableRef, ref.Value)

	case TypeJSON:
		data, err := o.Codec.Marshal(ref.Value)
		if err != nil {
			return nil, &DecodeError{Encoding: TypeJSON, cause: err}
		}
		return NewBlob(data), nil

	case TypeUTF8:
		s, err := stringValue(ref, TypeUTF8)
		if err != nil {
			return nil, err
		}
		return NewBlob([]byte(s)), nil

	case TypeURL:
		s, err := stringValue(ref, TypeURL)
		if err != nil {
			return nil, err
		}
		return fetchBlobFromURL(ctx, s, o)

	default: // TypeBase64 and anything unrecognized
		s, err := stringValue(ref, TypeBase64)
		if err != nil {
			return nil, err
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, &DecodeError{Encoding: TypeBase64, cause: err}
		}
		return NewBlob(data), nil
	}
}
