package lfgbwt

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/record"
)

// Index is a compressed path index navigable by LF and, when
// bidirectional, by inverse LF. All queries are safe for concurrent use.
// AddMetadata and ClearMetadata must not run concurrently with other calls.
type Index struct {
	header   gbwt.Header
	tags     gbwt.Tags
	metadata gbwt.Metadata
	rows     []*record.Record

	opts options
}

// Header returns the index header.
func (idx *Index) Header() gbwt.Header { return idx.header }

// Tags returns a copy of the index tags.
func (idx *Index) Tags() gbwt.Tags { return idx.tags.Clone() }

// Metadata returns a copy of the metadata. It is empty unless HasMetadata.
func (idx *Index) Metadata() gbwt.Metadata { return idx.metadata.Clone() }

// Size returns the total length of all rows.
func (idx *Index) Size() uint64 { return idx.header.Size }

// Empty reports whether the index stores no visits.
func (idx *Index) Empty() bool { return idx.header.Size == 0 }

// Sequences returns the number of stored sequences.
func (idx *Index) Sequences() uint64 { return idx.header.Sequences }

// AlphabetSize returns one past the largest node identifier.
func (idx *Index) AlphabetSize() uint64 { return idx.header.AlphabetSize }

// Effective returns the number of rows.
func (idx *Index) Effective() uint64 { return uint64(len(idx.rows)) }

// Bidirectional reports whether reverse complements are stored.
func (idx *Index) Bidirectional() bool { return idx.header.Get(gbwt.FlagBidirectional) }

// HasMetadata reports whether metadata is attached.
func (idx *Index) HasMetadata() bool { return idx.header.Get(gbwt.FlagMetadata) }

// AddMetadata attaches md and sets the metadata flag.
func (idx *Index) AddMetadata(md gbwt.Metadata) {
	idx.metadata = md.Clone()
	idx.header.Set(gbwt.FlagMetadata)
}

// ClearMetadata drops the metadata and clears the flag.
func (idx *Index) ClearMetadata() {
	idx.metadata = gbwt.Metadata{}
	idx.header.Unset(gbwt.FlagMetadata)
}

// Contains reports whether node has a row.
func (idx *Index) Contains(node uint64) bool {
	return node == gbwt.Endmarker || (node > idx.header.Offset && node < idx.header.AlphabetSize)
}

// FirstNode returns the smallest non-endmarker node identifier.
func (idx *Index) FirstNode() uint64 { return idx.header.Offset + 1 }

// ToComp maps a node to its row index. The endmarker maps to itself.
func (idx *Index) ToComp(node uint64) uint64 {
	if node == gbwt.Endmarker {
		return node
	}
	return node - idx.header.Offset
}

// ToNode maps a row index to its node. It is the inverse of ToComp.
func (idx *Index) ToNode(comp uint64) uint64 {
	if comp == 0 {
		return gbwt.Endmarker
	}
	return comp + idx.header.Offset
}

// Record returns the row of node. It panics if the index does not contain
// node.
func (idx *Index) Record(node uint64) *record.Record {
	if !idx.Contains(node) {
		panic(fmt.Sprintf("lfgbwt: node %d not in index", node))
	}
	return idx.rows[idx.ToComp(node)]
}

// NodeSize returns the length of node's row, or 0 for unknown nodes.
func (idx *Index) NodeSize(node uint64) uint64 {
	if !idx.Contains(node) {
		return 0
	}
	return idx.Record(node).Size()
}

// Outdegree returns the number of distinct successors of node.
func (idx *Index) Outdegree(node uint64) uint64 {
	if !idx.Contains(node) {
		return 0
	}
	return idx.Record(node).Outdegree()
}

// Successors returns the distinct successors of node in ascending order.
func (idx *Index) Successors(node uint64) []uint64 {
	if !idx.Contains(node) {
		return nil
	}
	rec := idx.Record(node)
	out := make([]uint64, rec.Outdegree())
	for i := range out {
		out[i] = idx.ToNode(rec.Successor(uint64(i)))
	}
	return out
}

// Value returns the successor at position i of node's row.
func (idx *Index) Value(node, i uint64) (uint64, bool) {
	if !idx.Contains(node) || i >= idx.NodeSize(node) {
		return 0, false
	}
	return idx.ToNode(idx.Record(node).Value(i)), true
}

// LF maps position i of node's row to the position of the same visit in
// the successor's row.
func (idx *Index) LF(node, i uint64) (gbwt.Position, bool) {
	if !idx.Contains(node) {
		return gbwt.Position{}, false
	}
	pos, ok := idx.Record(node).LF(i)
	if !ok {
		return gbwt.Position{}, false
	}
	pos.Node = idx.ToNode(pos.Node)
	return pos, true
}

// LFTo returns the offset in to's row reached from position i of node's
// row. i may equal the row length.
func (idx *Index) LFTo(node, i, to uint64) (uint64, bool) {
	if !idx.Contains(node) || !idx.Contains(to) {
		return 0, false
	}
	return idx.Record(node).LFTo(i, idx.ToComp(to))
}

// LFRange maps a closed range of node's row to the range of to's row
// reached from it.
func (idx *Index) LFRange(node uint64, rng gbwt.Range, to uint64) gbwt.Range {
	if !idx.Contains(node) || !idx.Contains(to) {
		return gbwt.EmptyRange()
	}
	return idx.Record(node).LFRange(rng, idx.ToComp(to))
}

// LFRun is LF that also reports the closed bounds and the identifier of the
// logical run containing i.
func (idx *Index) LFRun(node, i uint64) (next gbwt.Position, run gbwt.Range, runID uint64, ok bool) {
	if !idx.Contains(node) {
		return gbwt.Position{}, gbwt.EmptyRange(), 0, false
	}
	next, run, runID, ok = idx.Record(node).LFRun(i)
	if ok {
		next.Node = idx.ToNode(next.Node)
	}
	return next, run, runID, ok
}

// RunLF is LF that also reports the last offset of the logical run
// containing i.
func (idx *Index) RunLF(node, i uint64) (next gbwt.Position, runEnd uint64, ok bool) {
	if !idx.Contains(node) {
		return gbwt.Position{}, 0, false
	}
	next, runEnd, ok = idx.Record(node).RunLF(i)
	if ok {
		next.Node = idx.ToNode(next.Node)
	}
	return next, runEnd, ok
}

// Runs returns the total number of concrete and logical runs.
func (idx *Index) Runs() (concrete, logical uint64) {
	for _, rec := range idx.rows {
		c, l := rec.Runs()
		concrete += c
		logical += l
	}
	return concrete, logical
}

// Extract returns the nodes of sequence seq in path order, following LF from
// the endmarker until it is reached again.
func (idx *Index) Extract(seq uint64) ([]uint64, error) {
	start := time.Now()
	path, err := idx.extract(seq)
	idx.opts.metricsCollector.RecordExtract(len(path), time.Since(start), err)
	return path, err
}

func (idx *Index) extract(seq uint64) ([]uint64, error) {
	if seq >= idx.Sequences() {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidSequence, seq, idx.Sequences())
	}
	var path []uint64
	pos, ok := idx.LF(gbwt.Endmarker, seq)
	for ok && pos.Node != gbwt.Endmarker {
		if uint64(len(path)) > idx.Size() {
			return nil, fmt.Errorf("%w: sequence %d does not terminate", ErrMalformedIndex, seq)
		}
		path = append(path, pos.Node)
		pos, ok = idx.LF(pos.Node, pos.Offset)
	}
	if !ok {
		return nil, fmt.Errorf("%w: LF failed after %d steps of sequence %d", ErrMalformedIndex, len(path), seq)
	}
	return path, nil
}

// ExtractAll calls fn with every stored sequence in order. It stops at the
// first error, including one returned by fn, and checks ctx between
// sequences.
func (idx *Index) ExtractAll(ctx context.Context, fn func(seq uint64, path []uint64) error) error {
	for seq := range idx.Sequences() {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := idx.Extract(seq)
		if err != nil {
			return err
		}
		if err := fn(seq, path); err != nil {
			return err
		}
	}
	return nil
}
