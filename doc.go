// Package dataref provides a tagged content-reference model for passing
// possibly-large binary payloads through a pipeline without materializing
// every payload inline.
//
// A DataRef represents a value under one of five encodings: inline base64
// bytes, inline UTF-8 text, an inline JSON structure, a fetchable URL, or an
// opaque content-hash handle that only the remote store can resolve. The
// package supplies the policy that decides when an inline payload is too
// large and must be offloaded to external storage, and the bidirectional
// conversion between a reference and its decoded bytes.
//
// # Offloading
//
// CopyLargeBlobsToRemote scans a named mapping of references and replaces
// every oversized inline entry with the reference returned by an injected
// upload function, branded with a locally computed content digest:
//
//	uploader := blobstore.NewUploader(blobstore.NewMemoryStore())
//
//	out, err := dataref.CopyLargeBlobsToRemote(ctx, refs, uploader.Upload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Oversized entries upload concurrently; one failing upload fails the whole
// batch. Entries at or below the threshold pass through untouched.
//
// # Resolving
//
// DataRefToBlob decodes a reference back into bytes, fetching url-typed
// references over HTTP and serializing json-typed values on demand:
//
//	blob, err := dataref.DataRefToBlob(ctx, ref)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	process(blob.Bytes())
//
// Hash-typed references always fail local conversion with ErrUnresolvableRef;
// resolve them through the store that issued them (see blobstore.Resolve).
//
// # Capability injection
//
// The upload function and the HTTP client are capability parameters passed
// into each call, not package-level state. The blobstore subpackage provides
// ready-made upload functions backed by memory, the local filesystem, MinIO,
// and Amazon S3.
package dataref
