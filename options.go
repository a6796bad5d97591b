package dataref

import (
	"net/http"

	"github.com/hupe1980/dataref/codec"
)

// DefaultMaxInlineLength is the size threshold, in characters of the
// inline-encoded representation, above which a payload is offloaded to
// remote storage instead of being kept inline.
const DefaultMaxInlineLength = 200

// Options configures the conversion and offload calls.
//
// All functions in this package accept options variadically as
// `optFns ...func(*Options)`; zero options means the defaults below.
type Options struct {
	// MaxInlineLength is the largest inline-encoded payload that is kept
	// inline. Anything longer is offloaded.
	MaxInlineLength int

	// IgnoreHash skips computing (and overwriting) content digests on the
	// refs produced by Base64ToDataRef.
	IgnoreHash bool

	// Codec serializes json-typed values. Defaults to codec.Default.
	Codec codec.Codec

	// HTTPClient performs GET requests for url-typed references. Defaults to
	// http.DefaultClient, which follows redirects. Any timeout must come
	// from the client or the context; this package imposes none.
	HTTPClient *http.Client

	// Logger receives offload and fetch events. Defaults to a no-op logger.
	Logger *Logger
}

func defaultOptions() Options {
	return Options{
		MaxInlineLength: DefaultMaxInlineLength,
		Codec:           codec.Default,
		HTTPClient:      http.DefaultClient,
		Logger:          NoopLogger(),
	}
}

func applyOptions(optFns []func(*Options)) Options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithMaxInlineLength overrides the offload size threshold.
func WithMaxInlineLength(n int) func(*Options) {
	return func(o *Options) {
		o.MaxInlineLength = n
	}
}

// WithIgnoreHash disables content digests on refs produced by
// Base64ToDataRef.
func WithIgnoreHash(ignore bool) func(*Options) {
	return func(o *Options) {
		o.IgnoreHash = ignore
	}
}

// WithCodec configures the codec used to serialize json-typed values.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) func(*Options) {
	return func(o *Options) {
		if c == nil {
			c = codec.Default
		}
		o.Codec = c
	}
}

// WithHTTPClient configures the client used to resolve url-typed references.
func WithHTTPClient(client *http.Client) func(*Options) {
	return func(o *Options) {
		if client == nil {
			client = http.DefaultClient
		}
		o.HTTPClient = client
	}
}

// WithLogger configures structured logging for offload and fetch events.
// Pass nil to disable logging.
func WithLogger(l *Logger) func(*Options) {
	return func(o *Options) {
		if l == nil {
			l = NoopLogger()
		}
		o.Logger = l
	}
}
