// Package s3 provides a BlobStore implementation for Amazon S3, plus a
// DynamoDB-backed deduplication index.
//
// # Basic Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := s3blob.NewStore(s3.NewFromConfig(cfg), "my-bucket", "payloads/")
//	uploader := blobstore.NewUploader(store)
//	out, err := dataref.CopyLargeBlobsToRemote(ctx, refs, uploader.Upload)
//
// Large payloads upload via the AWS transfer manager, which splits them into
// parallel multipart uploads automatically.
//
// # Deduplication
//
// DDBDedupIndex implements blobstore.DedupIndex on a DynamoDB table, so
// repeated uploads of identical content skip the S3 write entirely:
//
//	index := s3blob.NewDDBDedupIndex(dynamodb.NewFromConfig(cfg), "dataref-dedup")
//	uploader := blobstore.NewUploader(store, blobstore.WithDedupIndex(index))
package s3
