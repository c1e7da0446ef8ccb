package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
)

var (
	// ErrClosed is returned when a region is used after Close.
	ErrClosed = errors.New("mmap: region is closed")
	// ErrOffset is returned for negative offsets and lengths.
	ErrOffset = errors.New("mmap: negative offset or length")
	// ErrTooLarge is returned when a file does not fit into the address space.
	ErrTooLarge = errors.New("mmap: file too large to map")
)

// Hint tells the kernel how a region will be read.
type Hint uint8

const (
	// HintNone leaves the kernel's default read-ahead in place.
	HintNone Hint = iota
	// HintSequential expects one front-to-back pass, as a text decoder does.
	HintSequential
	// HintWillNeed asks the kernel to start paging the region in now.
	HintWillNeed
)

// Region is a read-only view of a whole file mapped into memory.
type Region struct {
	data    []byte
	release func([]byte) error
	closed  atomic.Bool
}

// Map maps the file at path and applies hint. An empty file yields an
// empty region that owns no mapping. A rejected hint is not an error.
func Map(path string, hint Hint) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Region{}, nil
	}
	if int64(int(size)) != size {
		return nil, ErrTooLarge
	}

	data, release, err := mapFile(f, int(size))
	if err != nil {
		return nil, err
	}

	_ = advise(data, hint)

	return &Region{data: data, release: release}, nil
}

// Len returns the mapped size in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Slice returns up to n bytes starting at off, aliasing the mapping.
// It returns io.EOF when off lies past the end. The slice must not be
// used after Close.
func (r *Region) Slice(off, n int64) ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || n < 0 {
		return nil, ErrOffset
	}
	size := int64(len(r.data))
	if off > size {
		return nil, io.EOF
	}
	return r.data[off:min(off+n, size)], nil
}

// ReadAt implements io.ReaderAt.
func (r *Region) ReadAt(p []byte, off int64) (int, error) {
	b, err := r.Slice(off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	n := copy(p, b)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the region. Subsequent calls return nil.
func (r *Region) Close() error {
	if r.closed.Swap(true) || r.release == nil {
		return nil
	}
	return r.release(r.data)
}
