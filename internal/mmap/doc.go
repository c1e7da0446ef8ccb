// Package mmap maps vocabulary files read-only into memory.
//
// The local blob store opens every blob through Map so that decoding scans
// the page cache directly instead of copying through read(2):
//
//	r, err := mmap.Map("ORBvoc.txt", mmap.HintSequential)
//	if err != nil { ... }
//	defer r.Close()
//	head, _ := r.Slice(0, 64)
//
// Slices returned by Slice alias the mapping and must not outlive Close.
package mmap
