package lfgbwt

import (
	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/record"
)

// In a bidirectional index the visits in the row of v are ordered by their
// predecessor u, and the number of visits u→v equals the number of visits
// reverse(v)→reverse(u). The row of reverse(v) therefore lists the
// predecessors of v as reversed destinations, block by block in destination
// order. Reversal only swaps the two orientations of a graph node, so the
// blocks of reverse(v) appear in the same order as the predecessor blocks of
// v except that a pair of twins 2k, 2k+1 trades places.

// predecessorCase classifies how a destination block of the reverse row
// relates to its neighbours.
type predecessorCase int

const (
	// predecessorSelf: the block's twin is not a destination, so the block
	// maps to the reverse of its own destination.
	predecessorSelf predecessorCase = iota
	// predecessorPrecedingTwin: the destination is 2k+1 and 2k is the
	// destination with the preceding outrank.
	predecessorPrecedingTwin
	// predecessorFollowingTwin: the destination is 2k and 2k+1 is the
	// destination with the following outrank.
	predecessorFollowingTwin
)

func (c predecessorCase) String() string {
	switch c {
	case predecessorSelf:
		return "self"
	case predecessorPrecedingTwin:
		return "preceding-twin"
	case predecessorFollowingTwin:
		return "following-twin"
	}
	return "unknown"
}

// reverseNode maps a comp value to the node of the opposite orientation.
// The endmarker maps to itself.
func (idx *Index) reverseNode(comp uint64) uint64 {
	if comp == gbwt.Endmarker {
		return gbwt.Endmarker
	}
	return gbwt.Reverse(idx.ToNode(comp))
}

// classify determines the twin relation of the destination with the given
// outrank in rev.
func (idx *Index) classify(rev *record.Record, outrank uint64) predecessorCase {
	dest := rev.Successor(outrank)
	if dest == gbwt.Endmarker {
		return predecessorSelf
	}
	twin := gbwt.Reverse(idx.ToNode(dest))
	if outrank > 0 {
		if prev := rev.Successor(outrank - 1); prev != gbwt.Endmarker && idx.ToNode(prev) == twin {
			return predecessorPrecedingTwin
		}
	}
	if outrank+1 < rev.Outdegree() {
		if next := rev.Successor(outrank + 1); next != gbwt.Endmarker && idx.ToNode(next) == twin {
			return predecessorFollowingTwin
		}
	}
	return predecessorSelf
}

// resolveTwins picks the predecessor for offset i when the destinations
// with outranks lower and lower+1 are twins. In the forward row the block
// of reverse(lower+1) comes first.
func (idx *Index) resolveTwins(rev *record.Record, lower, i uint64) uint64 {
	start := rev.Cumulative(lower)
	upperCount := rev.Cumulative(lower+2) - rev.Cumulative(lower+1)
	if i < start+upperCount {
		return idx.reverseNode(rev.Successor(lower + 1))
	}
	return idx.reverseNode(rev.Successor(lower))
}

// PredecessorAt returns the node preceding the visit at offset i of the row
// of reverse(revFrom). It requires a bidirectional index.
func (idx *Index) PredecessorAt(revFrom, i uint64) (uint64, bool) {
	if !idx.Bidirectional() || !idx.Contains(revFrom) {
		return 0, false
	}
	rev := idx.Record(revFrom)
	outrank, ok := rev.OutrankAt(i)
	if !ok {
		return 0, false
	}
	switch idx.classify(rev, outrank) {
	case predecessorPrecedingTwin:
		return idx.resolveTwins(rev, outrank-1, i), true
	case predecessorFollowingTwin:
		return idx.resolveTwins(rev, outrank, i), true
	default:
		return idx.reverseNode(rev.Successor(outrank)), true
	}
}

// InverseLF returns the position whose LF is (from, i). It requires a
// bidirectional index and a non-endmarker from.
func (idx *Index) InverseLF(from, i uint64) (gbwt.Position, bool) {
	if !idx.Bidirectional() || from == gbwt.Endmarker || !idx.Contains(from) {
		return gbwt.Position{}, false
	}
	pred, ok := idx.PredecessorAt(gbwt.Reverse(from), i)
	if !ok || !idx.Contains(pred) {
		return gbwt.Position{}, false
	}
	offset, ok := idx.Record(pred).OffsetTo(idx.ToComp(from), i)
	if !ok {
		return gbwt.Position{}, false
	}
	return gbwt.Position{Node: pred, Offset: offset}, true
}
