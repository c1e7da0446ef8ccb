// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("vocabularies/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	voc, err := vocabtree.Load(ctx, store, "orb_k10_L6.txt.zst", descriptor.ORB())
//
// # Features
//
//   - Range reads for streaming decode
//   - Multipart uploads for large vocabularies, aborted on failure
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
