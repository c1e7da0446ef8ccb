package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/vocabtree"
	"github.com/hupe1980/vocabtree/blobstore"
	"github.com/hupe1980/vocabtree/descriptor"
)

// loader loads a vocabulary without exposing its descriptor type.
type loader interface {
	load(ctx context.Context, store blobstore.BlobStore, name string, opts []vocabtree.Option) (vocabulary, error)
}

// vocabulary is the descriptor-independent view the commands work with.
type vocabulary interface {
	Header() vocabtree.Header
	Stats() vocabtree.Stats
	Validate() error
	Save(ctx context.Context, store blobstore.BlobStore, name string) error
	Encode(ctx context.Context, w io.Writer) error
}

type codecLoader[D any] struct {
	codec descriptor.Codec[D]
}

func (l codecLoader[D]) load(ctx context.Context, store blobstore.BlobStore, name string, opts []vocabtree.Option) (vocabulary, error) {
	voc, err := vocabtree.Load(ctx, store, name, l.codec, opts...)
	if err != nil {
		return nil, err
	}
	return voc, nil
}

// parseDescriptor resolves orb, surf, binary:<bytes> and float:<dim>.
func parseDescriptor(s string) (loader, error) {
	kind, arg, hasArg := strings.Cut(strings.ToLower(s), ":")

	size := 0
	if hasArg {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad descriptor size %q", arg)
		}
		size = n
	}

	switch {
	case kind == "orb" && !hasArg:
		return codecLoader[[]byte]{codec: descriptor.ORB()}, nil
	case kind == "surf" && !hasArg:
		return codecLoader[[]float32]{codec: descriptor.SURF()}, nil
	case kind == "binary" && hasArg:
		return codecLoader[[]byte]{codec: descriptor.Binary{Bytes: size}}, nil
	case kind == "float" && hasArg:
		return codecLoader[[]float32]{codec: descriptor.Float32{Dim: size}}, nil
	default:
		return nil, fmt.Errorf("unknown descriptor %q: want orb, surf, binary:<bytes> or float:<dim>", s)
	}
}
