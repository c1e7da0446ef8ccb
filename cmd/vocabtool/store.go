package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hupe1980/vocabtree/blobstore"
	miniostore "github.com/hupe1980/vocabtree/blobstore/minio"
	s3store "github.com/hupe1980/vocabtree/blobstore/s3"
)

const s3Scheme = "s3://"

// resolve maps a path to a blob store and the blob name inside it.
func resolve(ctx context.Context, c *cli.Context, path string) (blobstore.BlobStore, string, error) {
	rest, ok := strings.CutPrefix(path, s3Scheme)
	if !ok {
		return blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path), nil
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return nil, "", fmt.Errorf("bad object path %q: want s3://bucket/key", path)
	}

	if endpoint := c.String("minio-endpoint"); endpoint != "" {
		store, err := miniostore.New(endpoint, bucket,
			miniostore.WithCredentials(c.String("minio-access-key"), c.String("minio-secret-key")),
			miniostore.WithSecure(c.Bool("minio-secure")),
		)
		if err != nil {
			return nil, "", err
		}
		return store, key, nil
	}

	var opts []s3store.Option
	if region := c.String("s3-region"); region != "" {
		opts = append(opts, s3store.WithRegion(region))
	}
	if endpoint := c.String("s3-endpoint"); endpoint != "" {
		opts = append(opts, s3store.WithEndpoint(endpoint))
	}
	store, err := s3store.New(ctx, bucket, opts...)
	if err != nil {
		return nil, "", err
	}
	return store, key, nil
}
