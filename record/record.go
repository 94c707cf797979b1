package record

import (
	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/internal/sdvector"
)

// Record is an immutable compressed row. All methods are safe for
// concurrent use.
type Record struct {
	// outgoing[outrank] is the offset of this row's first occurrence of the
	// destination within the destination's row.
	outgoing []uint64

	first           sdvector.Vector
	firstByAlphabet sdvector.Vector
	firstByAlphComp sdvector.Vector
	alphabet        sdvector.Vector
	alphabetByRun   []uint64
}

// Size returns the row length.
func (r *Record) Size() uint64 { return r.first.Size() }

// Empty reports whether the row has no visits.
func (r *Record) Empty() bool { return r.Size() == 0 }

// Outdegree returns the number of outgoing edges.
func (r *Record) Outdegree() uint64 { return uint64(len(r.outgoing)) }

// EdgeTo maps a destination to its outrank.
func (r *Record) EdgeTo(to uint64) (uint64, bool) {
	rank, pos, ok := r.alphabet.Predecessor(to)
	if !ok || pos != to {
		return 0, false
	}
	return rank, true
}

// HasEdge reports whether to is a destination of this row.
func (r *Record) HasEdge(to uint64) bool {
	_, ok := r.EdgeTo(to)
	return ok
}

// Successor returns the destination with the given outrank. The outrank
// must be below Outdegree.
func (r *Record) Successor(outrank uint64) uint64 {
	return r.alphabet.Select(outrank)
}

// Offset returns the base offset of the edge with the given outrank. The
// outrank must be below Outdegree.
func (r *Record) Offset(outrank uint64) uint64 {
	return r.outgoing[outrank]
}

// Edges returns the outgoing edges in destination order.
func (r *Record) Edges() []Edge {
	edges := make([]Edge, len(r.outgoing))
	for i, off := range r.outgoing {
		edges[i] = Edge{To: r.Successor(uint64(i)), Offset: off}
	}
	return edges
}

// CompAlphabetAt returns the outrank of the value at i. Requires i < Size.
func (r *Record) CompAlphabetAt(i uint64) uint64 {
	run, _, _ := r.first.Predecessor(i)
	return r.alphabetByRun[run]
}

// Value returns the destination at i. Requires i < Size.
func (r *Record) Value(i uint64) uint64 {
	return r.alphabet.Select(r.CompAlphabetAt(i))
}

// Cumulative returns the number of occurrences of destinations with an
// outrank below outrank. Cumulative(Outdegree()) == Size().
func (r *Record) Cumulative(outrank uint64) uint64 {
	run, _ := r.firstByAlphabet.Successor(outrank * r.Size())
	return r.firstByAlphComp.Select(run)
}

// OutrankAt returns the outrank whose block of occurrences, in destination
// order, contains the cumulative count c. ok is false when c >= Size.
func (r *Record) OutrankAt(c uint64) (uint64, bool) {
	if c >= r.Size() {
		return 0, false
	}
	run, _, _ := r.firstByAlphComp.Predecessor(c)
	return r.firstByAlphabet.Select(run) / r.Size(), true
}

// countBefore returns the number of occurrences of outrank at positions
// before i. Allows i == Size.
func (r *Record) countBefore(outrank, i uint64) uint64 {
	n := r.Size()
	next, _ := r.firstByAlphabet.Successor(outrank*n + i)
	first, _ := r.firstByAlphabet.Successor(outrank * n)
	count := r.firstByAlphComp.Select(next) - r.firstByAlphComp.Select(first)
	if i < n && r.CompAlphabetAt(i) == outrank {
		// The run covering i was counted in full; drop its tail from i on.
		_, end := r.first.Successor(i)
		count -= end - i
	}
	return count
}

// LF maps position i to the position of the same visit in the successor's
// row.
func (r *Record) LF(i uint64) (gbwt.Position, bool) {
	if i >= r.Size() {
		return gbwt.Position{}, false
	}
	to := r.Value(i)
	offset, ok := r.LFTo(i, to)
	if !ok {
		return gbwt.Position{}, false
	}
	return gbwt.Position{Node: to, Offset: offset}, true
}

// LFTo returns the offset in to's row of the first occurrence of to at or
// after position i. i may equal Size.
func (r *Record) LFTo(i, to uint64) (uint64, bool) {
	if i > r.Size() {
		return 0, false
	}
	outrank, ok := r.EdgeTo(to)
	if !ok {
		return 0, false
	}
	return r.outgoing[outrank] + r.countBefore(outrank, i), true
}

// LFRange maps a closed range of positions to the range of their
// occurrences of to in to's row.
func (r *Record) LFRange(rng gbwt.Range, to uint64) gbwt.Range {
	if rng.Empty() || rng.End >= r.Size() {
		return gbwt.EmptyRange()
	}
	outrank, ok := r.EdgeTo(to)
	if !ok {
		return gbwt.EmptyRange()
	}
	start := r.outgoing[outrank] + r.countBefore(outrank, rng.Start)
	end := r.outgoing[outrank] + r.countBefore(outrank, rng.End+1)
	if end == start {
		return gbwt.EmptyRange()
	}
	return gbwt.Range{Start: start, End: end - 1}
}

// run returns the closed bounds of the logical run containing i.
// Requires i < Size.
func (r *Record) run(i uint64) gbwt.Range {
	concrete, start, _ := r.first.Predecessor(i)
	if r.alphabetByRun[concrete] == 0 && r.hasEndmarker() {
		return gbwt.Range{Start: i, End: i}
	}
	return gbwt.Range{Start: start, End: r.first.Select(concrete+1) - 1}
}

// LFRun is LF that also reports the closed bounds and the identifier of the
// logical run containing i.
func (r *Record) LFRun(i uint64) (next gbwt.Position, run gbwt.Range, runID uint64, ok bool) {
	if i >= r.Size() {
		return gbwt.Position{}, gbwt.EmptyRange(), 0, false
	}
	next, ok = r.LF(i)
	if !ok {
		return gbwt.Position{}, gbwt.EmptyRange(), 0, false
	}
	runID, _ = r.LogicalRunID(i)
	return next, r.run(i), runID, true
}

// RunLF is LF that also reports the last position of the logical run
// containing i.
func (r *Record) RunLF(i uint64) (next gbwt.Position, runEnd uint64, ok bool) {
	if i >= r.Size() {
		return gbwt.Position{}, 0, false
	}
	next, ok = r.LF(i)
	if !ok {
		return gbwt.Position{}, 0, false
	}
	return next, r.run(i).End, true
}

// OffsetTo inverts LFTo: it returns the position p of this row such that
// LF(p) == (to, i). ok is false when no position of this row maps there.
func (r *Record) OffsetTo(to, i uint64) (uint64, bool) {
	outrank, ok := r.EdgeTo(to)
	if !ok || i < r.outgoing[outrank] {
		return 0, false
	}
	n := r.Size()
	k := i - r.outgoing[outrank]

	firstRun, _ := r.firstByAlphabet.Successor(outrank * n)
	base := r.firstByAlphComp.Select(firstRun)
	if base+k >= n {
		return 0, false
	}
	run, runBase, _ := r.firstByAlphComp.Predecessor(base + k)
	pos := r.firstByAlphabet.Select(run)
	if pos/n != outrank {
		return 0, false
	}
	within := base + k - runBase
	if within >= r.firstByAlphComp.Select(run+1)-runBase {
		return 0, false
	}
	return pos - outrank*n + within, true
}

// hasEndmarker reports whether outrank 0 is the endmarker.
func (r *Record) hasEndmarker() bool {
	return r.alphabet.Contains(gbwt.Endmarker)
}

// LogicalRunID returns the logical run identifier of position i. Concrete
// endmarker runs count as one logical run per occurrence.
func (r *Record) LogicalRunID(i uint64) (uint64, bool) {
	if i >= r.Size() {
		return 0, false
	}
	concrete, start, _ := r.first.Predecessor(i)
	if !r.hasEndmarker() {
		return concrete, true
	}
	// Endmarker runs occupy the first block of firstByAlphabet.
	endRuns := r.firstByAlphabet.Rank(start)
	endOccurrences := r.firstByAlphComp.Select(endRuns)
	id := concrete - endRuns + endOccurrences
	if r.alphabetByRun[concrete] == 0 {
		id += i - start
	}
	return id, true
}

// Runs returns the number of concrete and logical runs.
func (r *Record) Runs() (concrete, logical uint64) {
	concrete = r.first.Count()
	if !r.hasEndmarker() {
		return concrete, concrete
	}
	endRuns := r.firstByAlphabet.Rank(r.Size())
	endOccurrences := r.firstByAlphComp.Select(endRuns)
	return concrete, concrete - endRuns + endOccurrences
}

// RunStarts returns the start positions of all concrete runs.
func (r *Record) RunStarts() []uint64 {
	return r.first.Positions()
}
