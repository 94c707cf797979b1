package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// MagicNumber identifies index files (ASCII: "LFGB").
	MagicNumber = 0x4C464742
	// Version is the current file format version (v1.0.0).
	Version = 0x00010000

	headerSize = 16
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("unsupported compression")
	// ErrCorrupt is returned when decoded structures are inconsistent.
	ErrCorrupt = errors.New("corrupt index data")
)

// Compression selects the codec applied to the file body.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 frames (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd (better ratio, good for cold data).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCompression, s)
	}
}

// FileHeader is the 16-byte header at the start of every index file.
type FileHeader struct {
	Magic       uint32 // 0x4C464742 ("LFGB")
	Version     uint32 // File format version
	Compression Compression
	Padding     [3]byte
	Reserved    [4]byte
}

// WriteHeader writes a header for the given compression.
func WriteHeader(w io.Writer, c Compression) error {
	h := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: c,
	}
	return binary.Write(w, binary.LittleEndian, &h)
}

// ReadHeader reads and validates the file header.
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var h FileHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if h.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, h.Version)
	}
	if h.Compression > CompressionZSTD {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, h.Compression)
	}
	return &h, nil
}
