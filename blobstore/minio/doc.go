// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible object stores (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "vocabularies",
//	    minio.WithCredentials("minioadmin", "minioadmin"),
//	    minio.WithPrefix("orb/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	voc, err := vocabtree.Load(ctx, store, "ORBvoc.txt.gz", descriptor.ORB())
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
