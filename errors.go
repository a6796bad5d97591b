package dataref

import (
	"errors"
	"fmt"
)

// ErrUnresolvableRef is returned when a hash-typed reference is converted to
// a blob locally. Hash handles can only be resolved through the remote store
// that issued them.
var ErrUnresolvableRef = errors.New("hash reference cannot be resolved locally")

var errNonStringValue = errors.New("value is not a string")

// DecodeError indicates malformed inline content: invalid base64, a
// non-string value under a string encoding, or a value the codec cannot
// serialize.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type DecodeError struct {
	Encoding Type
	cause    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s value: %v", e.Encoding, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// TransportError indicates a failed upload or URL fetch. Transport failures
// are never retried by this package; they propagate to the caller and fail
// the entire enclosing batch for the offload policy.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type TransportError struct {
	Op         string // "upload" or "fetch"
	URL        string
	StatusCode int
	cause      error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	case e.URL != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.cause)
	}
}

func (e *TransportError) Unwrap() error { return e.cause }
