// Package compression wraps vocabulary text streams in a compression format
// chosen by file suffix.
//
// Vocabulary text files are large (an ORB vocabulary with k=10, L=6 has about
// one million lines), so they are usually shipped compressed:
//
//	ORBvoc.txt      plain text
//	ORBvoc.txt.gz   gzip
//	ORBvoc.txt.zst  zstd
//	ORBvoc.txt.lz4  lz4 frame
package compression

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used for a stream.
type Type uint8

const (
	// None passes the stream through unchanged.
	None Type = iota
	// Gzip is RFC 1952 gzip (widest tool support).
	Gzip
	// Zstd is Zstandard (best ratio).
	Zstd
	// LZ4 is the LZ4 frame format (fastest decode).
	LZ4
)

var suffixes = []struct {
	suffix string
	typ    Type
}{
	{".gz", Gzip},
	{".zst", Zstd},
	{".lz4", LZ4},
}

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Suffix returns the file suffix for t, or "" for None.
func (t Type) Suffix() string {
	for _, s := range suffixes {
		if s.typ == t {
			return s.suffix
		}
	}
	return ""
}

// ContentType returns the MIME type object stores should record for a
// vocabulary file compressed with t.
func (t Type) ContentType() string {
	switch t {
	case Gzip:
		return "application/gzip"
	case Zstd:
		return "application/zstd"
	case LZ4:
		return "application/x-lz4"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ParseType parses a compression name as returned by Type.String.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("compression: unknown type %q", name)
	}
}

// Detect returns the compression type implied by the suffix of name.
func Detect(name string) Type {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.typ
		}
	}
	return None
}

// Trim returns name without its compression suffix.
func Trim(name string) string {
	return strings.TrimSuffix(name, Detect(name).Suffix())
}

// NewReader returns a reader that decompresses r.
// Closing the returned reader does not close r.
func NewReader(r io.Reader, t Type) (io.ReadCloser, error) {
	switch t {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr, nil
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("compression: unknown type %d", uint8(t))
	}
}

// NewWriter returns a writer that compresses into w.
// Close must be called to flush the trailer; it does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("compression: unknown type %d", uint8(t))
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
