package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ByteReader is the input consumed by a Decoder.
type ByteReader interface {
	io.Reader
	io.ByteReader
}

// Encoder writes unsigned varints, strings and nested structures.
// The first write error is latched; later writes are no-ops.
type Encoder struct {
	w       io.Writer
	buf     [binary.MaxVarintLen64]byte
	written int64
	err     error
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	n, err := e.w.Write(p)
	e.written += int64(n)
	e.err = err
}

// Uvarint writes v.
func (e *Encoder) Uvarint(v uint64) {
	n := binary.PutUvarint(e.buf[:], v)
	e.write(e.buf[:n])
}

// Uvarints writes the length of vs followed by its elements.
func (e *Encoder) Uvarints(vs []uint64) {
	e.Uvarint(uint64(len(vs)))
	for _, v := range vs {
		e.Uvarint(v)
	}
}

// String writes a length-prefixed string.
func (e *Encoder) String(s string) {
	e.Uvarint(uint64(len(s)))
	e.write([]byte(s))
}

// Strings writes a length-prefixed list of strings.
func (e *Encoder) Strings(ss []string) {
	e.Uvarint(uint64(len(ss)))
	for _, s := range ss {
		e.String(s)
	}
}

// Value writes a nested structure through its WriteTo method.
func (e *Encoder) Value(v io.WriterTo) {
	if e.err != nil {
		return
	}
	n, err := v.WriteTo(e.w)
	e.written += n
	e.err = err
}

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int64 { return e.written }

// Err returns the first error encountered.
func (e *Encoder) Err() error { return e.err }

// Decoder is the counterpart of Encoder. Length prefixes are bounded by the
// decoder's limit so that corrupt input cannot trigger huge allocations.
type Decoder struct {
	r     ByteReader
	limit uint64
	err   error
}

// DefaultLimit bounds decoded slice and string lengths.
const DefaultLimit = 1 << 40

// NewDecoder creates a decoder reading from r.
func NewDecoder(r ByteReader) *Decoder {
	return &Decoder{r: r, limit: DefaultLimit}
}

// Reader exposes the underlying reader for nested structures.
func (d *Decoder) Reader() ByteReader { return d.r }

// Uvarint reads a value.
func (d *Decoder) Uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := binary.ReadUvarint(d.r)
	if err != nil {
		d.Fail(err)
		return 0
	}
	return v
}

// Len reads a length prefix and checks it against max.
func (d *Decoder) Len(max uint64) uint64 {
	n := d.Uvarint()
	if d.err == nil && (n > max || n > d.limit) {
		d.Fail(fmt.Errorf("%w: length %d exceeds %d", ErrCorrupt, n, min(max, d.limit)))
		return 0
	}
	return n
}

// Uvarints reads a slice written by Encoder.Uvarints with at most max
// elements.
func (d *Decoder) Uvarints(max uint64) []uint64 {
	n := d.Len(max)
	if d.err != nil || n == 0 {
		return nil
	}
	out := make([]uint64, 0, min(n, 1<<16))
	for range n {
		v := d.Uvarint()
		if d.err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// String reads a length-prefixed string.
func (d *Decoder) String() string {
	n := d.Len(d.limit)
	if d.err != nil || n == 0 {
		return ""
	}
	var sb strings.Builder
	if _, err := io.CopyN(&sb, d.r, int64(n)); err != nil {
		d.Fail(err)
		return ""
	}
	return sb.String()
}

// Strings reads a list written by Encoder.Strings.
func (d *Decoder) Strings() []string {
	n := d.Len(d.limit)
	if d.err != nil || n == 0 {
		return nil
	}
	out := make([]string, 0, min(n, 1<<16))
	for range n {
		s := d.String()
		if d.err != nil {
			return nil
		}
		out = append(out, s)
	}
	return out
}

// Fail latches err. EOF inside a structure becomes io.ErrUnexpectedEOF.
func (d *Decoder) Fail(err error) {
	if d.err != nil || err == nil {
		return
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	d.err = err
}

// Err returns the first error encountered.
func (d *Decoder) Err() error { return d.err }
