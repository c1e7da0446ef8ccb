package blobstore

import (
	"context"
	"io"
)

// NewReader returns a sequential reader over the whole blob.
// The range request is issued on the first Read.
func NewReader(ctx context.Context, b Blob) io.ReadCloser {
	return &blobReader{ctx: ctx, blob: b}
}

type blobReader struct {
	ctx  context.Context
	blob Blob
	rc   io.ReadCloser
}

func (r *blobReader) Read(p []byte) (int, error) {
	if r.rc == nil {
		if r.blob.Size() == 0 {
			return 0, io.EOF
		}
		rc, err := r.blob.ReadRange(r.ctx, 0, r.blob.Size())
		if err != nil {
			return 0, err
		}
		r.rc = rc
	}
	return r.rc.Read(p)
}

// Close closes the range reader, if any. It does not close the blob.
func (r *blobReader) Close() error {
	if r.rc == nil {
		return nil
	}
	return r.rc.Close()
}
