// Command vocabtool inspects, validates and converts vocabulary tree files.
//
// Usage:
//
//	vocabtool info ORBvoc.txt
//	vocabtool validate --descriptor float:64 s3://bucket/surf.txt.zst
//	vocabtool convert ORBvoc.txt ORBvoc.txt.zst
//	vocabtool convert ORBvoc.txt.lz4 - | head
//
// Paths of the form s3://bucket/key are read from Amazon S3, or from MinIO
// when --minio-endpoint is set. All other paths are local files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
