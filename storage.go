package vocabtree

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hupe1980/vocabtree/blobstore"
	"github.com/hupe1980/vocabtree/compression"
	"github.com/hupe1980/vocabtree/descriptor"
	"github.com/hupe1980/vocabtree/internal/resource"
)

// Load reads the vocabulary stored under name and returns it.
func Load[D any](ctx context.Context, store blobstore.BlobStore, name string, codec descriptor.Codec[D], optFns ...Option) (*Vocabulary[D], error) {
	v := New(codec, optFns...)
	if err := v.Load(ctx, store, name); err != nil {
		return nil, err
	}
	return v, nil
}

// Load replaces the tree with the vocabulary stored under name.
//
// The compression format is chosen by the suffix of name (see
// compression.Detect). Reads are throttled by WithIOLimit.
func (v *Vocabulary[D]) Load(ctx context.Context, store blobstore.BlobStore, name string) error {
	size, err := v.load(ctx, store, name)
	v.opts.logger.LogLoad(ctx, name, size, err)
	return err
}

func (v *Vocabulary[D]) load(ctx context.Context, store blobstore.BlobStore, name string) (int64, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", name, err)
	}
	defer blob.Close()

	raw := blobstore.NewReader(ctx, blob)
	defer raw.Close()

	zr, err := compression.NewReader(resource.NewRateLimitedReader(ctx, raw, v.opts.resource), compression.Detect(name))
	if err != nil {
		return blob.Size(), fmt.Errorf("open %s: %w", name, err)
	}
	defer zr.Close()

	return blob.Size(), v.Decode(ctx, zr)
}

// Save writes the vocabulary under name, compressed according to the suffix
// of name. The blob only becomes visible if the whole vocabulary was written.
func (v *Vocabulary[D]) Save(ctx context.Context, store blobstore.BlobStore, name string) error {
	err := v.save(ctx, store, name)
	v.opts.logger.LogSave(ctx, name, err)
	return err
}

func (v *Vocabulary[D]) save(ctx context.Context, store blobstore.BlobStore, name string) error {
	if v.Empty() {
		return ErrEmptyVocabulary
	}

	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	zw, err := compression.NewWriter(w, compression.Detect(name))
	if err != nil {
		return errors.Join(err, blobstore.Abort(w))
	}

	if err := v.Encode(ctx, zw); err != nil {
		_ = zw.Close()
		return errors.Join(err, blobstore.Abort(w))
	}
	if err := zw.Close(); err != nil {
		return errors.Join(err, blobstore.Abort(w))
	}
	return w.Close()
}

// LoadFile reads a vocabulary from a local file.
func LoadFile[D any](ctx context.Context, path string, codec descriptor.Codec[D], optFns ...Option) (*Vocabulary[D], error) {
	return Load(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path), codec, optFns...)
}

// SaveFile writes the vocabulary to a local file, replacing it atomically.
func (v *Vocabulary[D]) SaveFile(ctx context.Context, path string) error {
	return v.Save(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path))
}
