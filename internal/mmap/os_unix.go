//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

func advise(data []byte, hint Hint) error {
	switch hint {
	case HintSequential:
		return unix.Madvise(data, unix.MADV_SEQUENTIAL)
	case HintWillNeed:
		return unix.Madvise(data, unix.MADV_WILLNEED)
	default:
		return nil
	}
}
