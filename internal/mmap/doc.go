// Package mmap provides read-only memory-mapped file access.
//
//	m, err := mmap.Open("index.lfgbwt")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes() // valid until Close
//
// Unix uses mmap(2) with an madvise(2) sequential hint; Windows uses
// CreateFileMapping/MapViewOfFile. Empty files map to a nil slice.
package mmap
