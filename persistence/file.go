package persistence

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/lfgbwt/internal/mmap"
)

// SaveToFile writes a file atomically: temp file in the same directory,
// fsync, rename, directory fsync.
func SaveToFile(filename string, writeFunc func(io.Writer) error) (int64, error) {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0o644)

	counter := &countingWriter{w: tmp}
	buf := bufio.NewWriterSize(counter, 256*1024)
	if err := writeFunc(buf); err != nil {
		return 0, err
	}
	if err := buf.Flush(); err != nil {
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return 0, err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return counter.n, nil
}

// LoadFromFile memory-maps filename and passes its contents to readFunc. The
// mapping is released when readFunc returns, so readFunc must copy what it
// keeps.
func LoadFromFile(filename string, readFunc func(io.Reader) error) (int64, error) {
	m, err := mmap.Open(filename)
	if err != nil {
		return 0, err
	}
	defer m.Close()

	data := m.Bytes()
	return int64(len(data)), readFunc(bytes.NewReader(data))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
