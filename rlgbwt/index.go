package rlgbwt

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/record"
)

var (
	// ErrEmptyPath is returned when a path has no nodes.
	ErrEmptyPath = errors.New("rlgbwt: empty path")

	// ErrInvalidNode is returned when a path contains the endmarker or,
	// in a bidirectional index, a node whose reverse is the endmarker.
	ErrInvalidNode = errors.New("rlgbwt: invalid node")
)

// SourceTag is the tag key naming the producer of an index.
const SourceTag = "source"

// Index is a run-length encoded path index. It is immutable and safe for
// concurrent use.
type Index struct {
	header   gbwt.Header
	tags     gbwt.Tags
	metadata gbwt.Metadata
	rows     []*Record
}

// visit is the occurrence of the node at paths[seq][pos].
type visit struct {
	seq int
	pos int
}

// FromPaths builds an index storing the given node-id paths.
func FromPaths(paths [][]uint64, opts ...Option) (*Index, error) {
	o := options{tags: gbwt.Tags{SourceTag: "lfgbwt/rlgbwt"}}
	for _, opt := range opts {
		opt(&o)
	}

	minNode := uint64(1)
	if o.bidirectional {
		minNode = 2
	}

	seqs := make([][]uint64, 0, len(paths))
	for s, path := range paths {
		if len(path) == 0 {
			return nil, fmt.Errorf("%w: path %d", ErrEmptyPath, s)
		}
		for j, node := range path {
			if node < minNode {
				return nil, fmt.Errorf("%w: node %d at path %d position %d", ErrInvalidNode, node, s, j)
			}
		}
		seqs = append(seqs, path)
		if o.bidirectional {
			seqs = append(seqs, gbwt.ReversePath(path))
		}
	}

	idx := &Index{tags: o.tags}
	idx.header.Sequences = uint64(len(seqs))
	if o.bidirectional {
		idx.header.Set(gbwt.FlagBidirectional)
	}
	if o.metadata != nil {
		idx.metadata = *o.metadata
		idx.header.Set(gbwt.FlagMetadata)
	}

	if len(seqs) == 0 {
		// Only the empty endmarker row.
		idx.header.AlphabetSize = 1
		idx.rows = []*Record{{}}
		return idx, nil
	}

	lo, hi := seqs[0][0], seqs[0][0]
	for _, path := range seqs {
		lo = min(lo, slices.Min(path))
		hi = max(hi, slices.Max(path))
	}
	idx.header.Offset = lo - 1
	idx.header.AlphabetSize = hi + 1
	effective := idx.header.Effective()

	visits := make([][]visit, effective)
	for s, path := range seqs {
		for j, node := range path {
			c := idx.ToComp(node)
			visits[c] = append(visits[c], visit{seq: s, pos: j})
		}
	}

	nodeAt := func(v visit, back int) uint64 {
		if p := v.pos - back; p >= 0 {
			return seqs[v.seq][p]
		}
		return gbwt.Endmarker
	}
	// Visits of a node are ordered by their reversed prefixes, ties broken
	// by sequence identifier.
	byReversePrefix := func(a, b visit) int {
		for back := 1; ; back++ {
			x, y := nodeAt(a, back), nodeAt(b, back)
			if x != y {
				return cmp.Compare(x, y)
			}
			if x == gbwt.Endmarker {
				return cmp.Compare(a.seq, b.seq)
			}
		}
	}

	successors := make([][]uint64, effective)
	successors[0] = make([]uint64, len(seqs))
	for s, path := range seqs {
		successors[0][s] = path[0]
	}
	for c := uint64(1); c < effective; c++ {
		slices.SortFunc(visits[c], byReversePrefix)
		successors[c] = make([]uint64, len(visits[c]))
		for k, v := range visits[c] {
			if v.pos+1 < len(seqs[v.seq]) {
				successors[c][k] = seqs[v.seq][v.pos+1]
			}
		}
	}

	// Base offsets count the occurrences of the destination in rows of
	// smaller nodes.
	occurrences := make(map[uint64]uint64)
	idx.rows = make([]*Record, effective)
	for c, values := range successors {
		row := newRecord(values)
		for i := range row.outgoing {
			to := row.outgoing[i].To
			row.outgoing[i].Offset = occurrences[to]
			occurrences[to] += row.count(uint64(i))
		}
		idx.rows[c] = row
		idx.header.Size += row.Size()
	}
	return idx, nil
}

func newRecord(values []uint64) *Record {
	dests := slices.Clone(values)
	slices.Sort(dests)
	dests = slices.Compact(dests)

	row := &Record{outgoing: make([]record.Edge, len(dests))}
	for i, to := range dests {
		row.outgoing[i].To = to
	}
	for _, v := range values {
		outrank, _ := slices.BinarySearch(dests, v)
		row.appendValue(uint64(outrank))
	}
	return row
}

// Header returns the index header.
func (idx *Index) Header() gbwt.Header { return idx.header }

// Tags returns a copy of the index tags.
func (idx *Index) Tags() gbwt.Tags { return idx.tags.Clone() }

// Metadata returns a copy of the metadata.
func (idx *Index) Metadata() gbwt.Metadata { return idx.metadata.Clone() }

// Record returns the row of the given comp value.
func (idx *Index) Record(comp uint64) record.Source { return idx.rows[comp] }

// NodeRecord returns the row of node.
func (idx *Index) NodeRecord(node uint64) (*Record, bool) {
	if !idx.Contains(node) {
		return nil, false
	}
	return idx.rows[idx.ToComp(node)], true
}

// Size returns the total length of all rows.
func (idx *Index) Size() uint64 { return idx.header.Size }

// Sequences returns the number of stored sequences.
func (idx *Index) Sequences() uint64 { return idx.header.Sequences }

// Effective returns the number of rows.
func (idx *Index) Effective() uint64 { return idx.header.Effective() }

// Bidirectional reports whether reverse complements are stored.
func (idx *Index) Bidirectional() bool { return idx.header.Get(gbwt.FlagBidirectional) }

// Contains reports whether node has a row.
func (idx *Index) Contains(node uint64) bool {
	return node == gbwt.Endmarker || (node > idx.header.Offset && node < idx.header.AlphabetSize)
}

// ToComp maps a node to its row index.
func (idx *Index) ToComp(node uint64) uint64 {
	if node == gbwt.Endmarker {
		return node
	}
	return node - idx.header.Offset
}

// ToNode maps a row index to its node.
func (idx *Index) ToNode(comp uint64) uint64 {
	if comp == 0 {
		return gbwt.Endmarker
	}
	return comp + idx.header.Offset
}

// NodeSize returns the length of node's row, or 0 for unknown nodes.
func (idx *Index) NodeSize(node uint64) uint64 {
	row, ok := idx.NodeRecord(node)
	if !ok {
		return 0
	}
	return row.Size()
}

// Value returns the successor at position i of node's row.
func (idx *Index) Value(node, i uint64) (uint64, bool) {
	row, ok := idx.NodeRecord(node)
	if !ok {
		return 0, false
	}
	return row.Value(i)
}

// LF maps (node, i) to the same visit in the successor's row.
func (idx *Index) LF(node, i uint64) (gbwt.Position, bool) {
	row, ok := idx.NodeRecord(node)
	if !ok {
		return gbwt.Position{}, false
	}
	return row.LF(i)
}

// InverseLF returns the position whose LF is (node, i). It scans the rows
// of all nodes and works for unidirectional indexes as well.
func (idx *Index) InverseLF(node, i uint64) (gbwt.Position, bool) {
	if node == gbwt.Endmarker || idx.NodeSize(node) <= i {
		return gbwt.Position{}, false
	}
	for c, row := range idx.rows {
		outrank, ok := row.EdgeTo(node)
		if !ok {
			continue
		}
		base := row.outgoing[outrank].Offset
		if i < base || i >= base+row.count(outrank) {
			continue
		}
		p, ok := row.occurrence(outrank, i-base)
		if !ok {
			return gbwt.Position{}, false
		}
		return gbwt.Position{Node: idx.ToNode(uint64(c)), Offset: p}, true
	}
	return gbwt.Position{}, false
}

// Extract returns the nodes of sequence seq.
func (idx *Index) Extract(seq uint64) ([]uint64, bool) {
	if seq >= idx.Sequences() {
		return nil, false
	}
	var path []uint64
	pos, ok := idx.LF(gbwt.Endmarker, seq)
	for steps := uint64(0); ok && pos.Node != gbwt.Endmarker; steps++ {
		if steps > idx.Size() {
			return nil, false
		}
		path = append(path, pos.Node)
		pos, ok = idx.LF(pos.Node, pos.Offset)
	}
	if !ok {
		return nil, false
	}
	return path, true
}

// Runs returns the total number of concrete and logical runs.
func (idx *Index) Runs() (concrete, logical uint64) {
	for _, row := range idx.rows {
		c, l := row.Runs()
		concrete += c
		logical += l
	}
	return concrete, logical
}
