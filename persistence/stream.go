package persistence

import (
	"errors"
	"io"
)

// Writer frames an index body: header, optional compression, CRC32 trailer.
type Writer struct {
	comp io.WriteCloser
	sum  *ChecksumWriter
	enc  *Encoder
}

// NewWriter writes the file header to w and returns a Writer for the body.
func NewWriter(w io.Writer, c Compression) (*Writer, error) {
	if err := WriteHeader(w, c); err != nil {
		return nil, err
	}
	comp, err := compressWriter(w, c)
	if err != nil {
		return nil, err
	}
	sum := NewChecksumWriter(comp)
	return &Writer{
		comp: comp,
		sum:  sum,
		enc:  NewEncoder(sum),
	}, nil
}

// Encoder returns the body encoder.
func (w *Writer) Encoder() *Encoder { return w.enc }

// Close appends the checksum trailer and flushes the compressor. It does not
// close the destination writer.
func (w *Writer) Close() error {
	if err := w.enc.Err(); err != nil {
		_ = w.comp.Close()
		return err
	}
	if err := w.sum.WriteTrailer(); err != nil {
		_ = w.comp.Close()
		return err
	}
	return w.comp.Close()
}

// Reader is the counterpart of Writer.
type Reader struct {
	Header FileHeader

	decomp io.ReadCloser
	sum    *ChecksumReader
	dec    *Decoder
}

// NewReader reads and validates the file header of r.
func NewReader(r io.Reader) (*Reader, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	decomp, err := decompressReader(r, h.Compression)
	if err != nil {
		return nil, err
	}
	sum := NewChecksumReader(decomp)
	return &Reader{
		Header: *h,
		decomp: decomp,
		sum:    sum,
		dec:    NewDecoder(sum),
	}, nil
}

// Decoder returns the body decoder.
func (r *Reader) Decoder() *Decoder { return r.dec }

// Close verifies the checksum trailer and releases the decompressor.
func (r *Reader) Close() error {
	err := r.dec.Err()
	if err == nil {
		err = r.sum.VerifyTrailer()
	}
	return errors.Join(err, r.decomp.Close())
}
