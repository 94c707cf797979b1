package lfgbwt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/lfgbwt/blobstore"
	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/persistence"
	"github.com/hupe1980/lfgbwt/record"
)

// WriteTo writes the index framed by the persistence format: header, tags,
// every row in ascending comp order and, if the metadata flag is set, the
// metadata. The body is compressed with the codec chosen by WithCompression.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	pw, err := persistence.NewWriter(cw, idx.opts.compression)
	if err != nil {
		return cw.n, err
	}

	enc := pw.Encoder()
	writeHeader(enc, idx.header)
	writeTags(enc, idx.tags)
	for _, rec := range idx.rows {
		enc.Value(rec)
	}
	if idx.HasMetadata() {
		writeMetadata(enc, idx.metadata)
	}

	if err := pw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func writeHeader(enc *persistence.Encoder, h gbwt.Header) {
	enc.Uvarint(h.Size)
	enc.Uvarint(h.Sequences)
	enc.Uvarint(h.AlphabetSize)
	enc.Uvarint(h.Offset)
	enc.Uvarint(h.Flags)
}

func writeTags(enc *persistence.Encoder, tags gbwt.Tags) {
	keys := tags.Keys()
	enc.Uvarint(uint64(len(keys)))
	for _, k := range keys {
		enc.String(k)
		enc.String(tags[k])
	}
}

func writeMetadata(enc *persistence.Encoder, md gbwt.Metadata) {
	enc.Strings(md.Samples)
	enc.Strings(md.Contigs)
	enc.Uvarint(md.Haplotypes)
	enc.Uvarint(uint64(len(md.Paths)))
	for _, p := range md.Paths {
		enc.Uvarint(p.Sample)
		enc.Uvarint(p.Contig)
		enc.Uvarint(p.Phase)
		enc.Uvarint(p.Count)
	}
}

// ReadFrom reads an index written by WriteTo. Any truncated, inconsistent or
// checksum-failing input is an error and no index is returned.
func ReadFrom(r io.Reader, opts ...Option) (*Index, error) {
	return readIndex(r, applyOptions(opts))
}

func readIndex(r io.Reader, o options) (*Index, error) {
	pr, err := persistence.NewReader(r)
	if err != nil {
		return nil, err
	}

	idx, err := decodeIndex(pr.Decoder(), o)
	if err != nil {
		_ = pr.Close()
		return nil, err
	}
	if err := pr.Close(); err != nil {
		return nil, err
	}
	return idx, nil
}

func decodeIndex(dec *persistence.Decoder, o options) (*Index, error) {
	idx := &Index{opts: o}
	idx.header = readHeader(dec)
	idx.tags = readTags(dec)
	if err := dec.Err(); err != nil {
		return nil, err
	}

	effective := idx.header.Effective()
	if effective == 0 {
		return nil, fmt.Errorf("%w: alphabet size %d with offset %d",
			persistence.ErrCorrupt, idx.header.AlphabetSize, idx.header.Offset)
	}

	// Rows are appended one by one so a corrupt header cannot force a huge
	// allocation.
	idx.rows = make([]*record.Record, 0, min(effective, 1<<16))
	var total uint64
	for comp := range effective {
		rec, err := record.Decode(dec, effective)
		if err != nil {
			return nil, &NodeError{Node: idx.ToNode(comp), cause: err}
		}
		total += rec.Size()
		idx.rows = append(idx.rows, rec)
	}
	if total != idx.header.Size {
		return nil, fmt.Errorf("%w: rows hold %d visits, header says %d",
			persistence.ErrCorrupt, total, idx.header.Size)
	}
	if n := idx.rows[0].Size(); n != idx.header.Sequences {
		return nil, fmt.Errorf("%w: endmarker row holds %d visits for %d sequences",
			persistence.ErrCorrupt, n, idx.header.Sequences)
	}

	if idx.HasMetadata() {
		idx.metadata = readMetadata(dec)
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

func readHeader(dec *persistence.Decoder) gbwt.Header {
	return gbwt.Header{
		Size:         dec.Uvarint(),
		Sequences:    dec.Uvarint(),
		AlphabetSize: dec.Uvarint(),
		Offset:       dec.Uvarint(),
		Flags:        dec.Uvarint(),
	}
}

func readTags(dec *persistence.Decoder) gbwt.Tags {
	n := dec.Len(persistence.DefaultLimit)
	tags := make(gbwt.Tags, min(n, 1<<10))
	for range n {
		k := dec.String()
		v := dec.String()
		if dec.Err() != nil {
			return nil
		}
		tags[k] = v
	}
	return tags
}

func readMetadata(dec *persistence.Decoder) gbwt.Metadata {
	md := gbwt.Metadata{
		Samples:    dec.Strings(),
		Contigs:    dec.Strings(),
		Haplotypes: dec.Uvarint(),
	}
	n := dec.Len(persistence.DefaultLimit)
	if n > 0 {
		md.Paths = make([]gbwt.PathName, 0, min(n, 1<<16))
	}
	for range n {
		p := gbwt.PathName{
			Sample: dec.Uvarint(),
			Contig: dec.Uvarint(),
			Phase:  dec.Uvarint(),
			Count:  dec.Uvarint(),
		}
		if dec.Err() != nil {
			return gbwt.Metadata{}
		}
		md.Paths = append(md.Paths, p)
	}
	return md
}

// Save writes the index to filename atomically.
func (idx *Index) Save(ctx context.Context, filename string) error {
	start := time.Now()
	n, err := persistence.SaveToFile(filename, func(w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := idx.WriteTo(w)
		return err
	})
	idx.opts.logger.LogSave(ctx, filename, n, err)
	idx.opts.metricsCollector.RecordSave(n, time.Since(start), err)
	return err
}

// Load memory-maps filename and decodes the index stored in it.
func Load(ctx context.Context, filename string, opts ...Option) (*Index, error) {
	o := applyOptions(opts)
	start := time.Now()

	var idx *Index
	n, err := persistence.LoadFromFile(filename, func(r io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		idx, err = readIndex(r, o)
		return err
	})
	o.logger.LogLoad(ctx, filename, n, err)
	o.metricsCollector.RecordLoad(n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// SaveToStore streams the index into the blob name of store. The blob only
// becomes visible when the write succeeds.
func (idx *Index) SaveToStore(ctx context.Context, store blobstore.BlobStore, name string) error {
	start := time.Now()
	n, err := idx.saveToStore(ctx, store, name)
	idx.opts.logger.LogSave(ctx, name, n, err)
	idx.opts.metricsCollector.RecordSave(n, time.Since(start), err)
	return err
}

func (idx *Index) saveToStore(ctx context.Context, store blobstore.BlobStore, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	wb, err := store.Create(ctx, name)
	if err != nil {
		return 0, err
	}
	n, err := idx.WriteTo(wb)
	if err == nil {
		err = wb.Sync()
	}
	if err != nil {
		if a, ok := wb.(blobstore.Abortable); ok {
			return n, errors.Join(err, a.Abort())
		}
		return n, errors.Join(err, wb.Close())
	}
	return n, wb.Close()
}

// LoadFromStore reads the index stored in blob name of store.
func LoadFromStore(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*Index, error) {
	o := applyOptions(opts)
	start := time.Now()

	idx, n, err := loadFromStore(ctx, store, name, o)
	o.logger.LogLoad(ctx, name, n, err)
	o.metricsCollector.RecordLoad(n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func loadFromStore(ctx context.Context, store blobstore.BlobStore, name string, o options) (*Index, int64, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, 0, err
	}
	defer b.Close()

	rc, err := blobstore.NewReader(ctx, b)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	idx, err := readIndex(rc, o)
	if err != nil {
		return nil, b.Size(), err
	}
	return idx, b.Size(), nil
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
