package sdvector

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ErrCorrupt is returned when a serialized vector is inconsistent.
var ErrCorrupt = errors.New("sdvector: corrupt vector")

// Vector is an immutable sparse bit-vector of a fixed length.
// The zero value is an empty vector of length 0.
type Vector struct {
	rb    *roaring64.Bitmap
	size  uint64
	count uint64
}

// Builder collects set positions for a Vector. Positions must be added in
// strictly increasing order and must be smaller than the vector length.
type Builder struct {
	size      uint64
	positions []uint64
}

// NewBuilder creates a builder for a vector of the given length. capacity is
// the expected number of set bits.
func NewBuilder(size uint64, capacity int) *Builder {
	return &Builder{
		size:      size,
		positions: make([]uint64, 0, capacity),
	}
}

// Set marks position i. Panics if i is out of range or not increasing.
func (b *Builder) Set(i uint64) {
	if i >= b.size {
		panic(fmt.Sprintf("sdvector: position %d out of range [0, %d)", i, b.size))
	}
	if n := len(b.positions); n > 0 && b.positions[n-1] >= i {
		panic(fmt.Sprintf("sdvector: position %d not greater than %d", i, b.positions[n-1]))
	}
	b.positions = append(b.positions, i)
}

// Build freezes the collected positions into a Vector.
func (b *Builder) Build() Vector {
	rb := roaring64.New()
	rb.AddMany(b.positions)
	rb.RunOptimize()
	return Vector{
		rb:    rb,
		size:  b.size,
		count: uint64(len(b.positions)),
	}
}

// New builds a vector of length size from strictly increasing positions.
func New(size uint64, positions ...uint64) Vector {
	b := NewBuilder(size, len(positions))
	for _, p := range positions {
		b.Set(p)
	}
	return b.Build()
}

// Size returns the length of the vector in bits.
func (v Vector) Size() uint64 { return v.size }

// Count returns the number of set bits.
func (v Vector) Count() uint64 { return v.count }

// Empty reports whether the vector has length 0.
func (v Vector) Empty() bool { return v.size == 0 }

// Contains reports whether bit i is set.
func (v Vector) Contains(i uint64) bool {
	if v.rb == nil || i >= v.size {
		return false
	}
	return v.rb.Contains(i)
}

// Select returns the position of the set bit with the given 0-based rank.
// A rank equal to Count yields Size, the end sentinel.
func (v Vector) Select(rank uint64) uint64 {
	if rank >= v.count {
		return v.size
	}
	pos, err := v.rb.Select(rank)
	if err != nil {
		return v.size
	}
	return pos
}

// Predecessor returns the rank and position of the last set bit at or before
// i. ok is false when no such bit exists.
func (v Vector) Predecessor(i uint64) (rank, pos uint64, ok bool) {
	if v.count == 0 {
		return 0, 0, false
	}
	if i >= v.size {
		i = v.size - 1
	}
	r := v.rb.Rank(i)
	if r == 0 {
		return 0, 0, false
	}
	return r - 1, v.Select(r - 1), true
}

// Successor returns the rank and position of the first set bit at or after i.
// When there is none it returns (Count, Size).
func (v Vector) Successor(i uint64) (rank, pos uint64) {
	if i >= v.size || v.count == 0 {
		return v.count, v.size
	}
	var r uint64
	if i > 0 {
		r = v.rb.Rank(i - 1)
	}
	return r, v.Select(r)
}

// Rank returns the number of set bits strictly before position i.
func (v Vector) Rank(i uint64) uint64 {
	if v.count == 0 || i == 0 {
		return 0
	}
	if i > v.size {
		i = v.size
	}
	return v.rb.Rank(i - 1)
}

// Positions returns all set positions in increasing order.
func (v Vector) Positions() []uint64 {
	if v.count == 0 {
		return nil
	}
	return v.rb.ToArray()
}

// Equal reports whether two vectors have the same length and set bits.
func (v Vector) Equal(o Vector) bool {
	if v.size != o.size || v.count != o.count {
		return false
	}
	if v.count == 0 {
		return true
	}
	return v.rb.Equals(o.rb)
}

// WriteTo writes the vector as: uvarint size, uvarint byte length, roaring64
// payload.
func (v Vector) WriteTo(w io.Writer) (int64, error) {
	var payload bytes.Buffer
	if v.count > 0 {
		if _, err := v.rb.WriteTo(&payload); err != nil {
			return 0, err
		}
	}

	var hdr [2 * binary.MaxVarintLen64]byte
	n := binary.PutUvarint(hdr[:], v.size)
	n += binary.PutUvarint(hdr[n:], uint64(payload.Len()))

	written, err := w.Write(hdr[:n])
	if err != nil {
		return int64(written), err
	}
	m, err := w.Write(payload.Bytes())
	return int64(written + m), err
}

// ReadFrom reads a vector previously written with WriteTo.
func ReadFrom(r io.ByteReader) (v Vector, err error) {
	size, err := binary.ReadUvarint(r)
	if err != nil {
		return Vector{}, unexpected(err)
	}
	byteLen, err := binary.ReadUvarint(r)
	if err != nil {
		return Vector{}, unexpected(err)
	}
	if byteLen == 0 {
		return Vector{size: size}, nil
	}

	reader, ok := r.(io.Reader)
	if !ok {
		return Vector{}, fmt.Errorf("sdvector: reader does not implement io.Reader")
	}
	if byteLen > math.MaxInt32 {
		return Vector{}, fmt.Errorf("%w: payload of %d bytes", ErrCorrupt, byteLen)
	}
	// The buffer grows with the input, so a corrupt length fails at EOF
	// instead of allocating up front.
	var payload bytes.Buffer
	if _, err := io.CopyN(&payload, reader, int64(byteLen)); err != nil {
		return Vector{}, unexpected(err)
	}

	defer func() {
		if r := recover(); r != nil {
			v, err = Vector{}, fmt.Errorf("%w: %v", ErrCorrupt, r)
		}
	}()
	rb := roaring64.New()
	if _, err := rb.ReadFrom(bytes.NewReader(payload.Bytes())); err != nil {
		return Vector{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	count := rb.GetCardinality()
	if count > 0 && rb.Maximum() >= size {
		return Vector{}, fmt.Errorf("%w: set bit %d beyond length %d", ErrCorrupt, rb.Maximum(), size)
	}
	return Vector{rb: rb, size: size, count: count}, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
