// Package blobstore provides storage backends for offloaded payloads.
//
// BlobStore is the interface for writing and reading whole payloads keyed by
// name. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests and ephemeral pipelines
//   - LocalStore: local filesystem with atomic writes
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 with managed multipart uploads
//
// Wrappers compose on top of any store:
//
//   - CompressedStore: transparent zstd or LZ4 compression
//   - Throttle: upload concurrency and throughput limits
//
// # Bridging to dataref
//
// An Uploader turns a BlobStore into the upload capability the core policy
// expects, keying payloads by their content digest:
//
//	uploader := blobstore.NewUploader(store)
//	out, err := dataref.CopyLargeBlobsToRemote(ctx, refs, uploader.Upload)
//
// Resolve is the counterpart for reading: it materializes any reference,
// including the hash-typed handles an Uploader hands out, which the core
// cannot resolve on its own.
package blobstore
