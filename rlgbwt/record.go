package rlgbwt

import (
	"iter"
	"slices"

	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/record"
)

// Record is a row stored as maximal runs over its outgoing edges.
type Record struct {
	outgoing []record.Edge
	body     []record.Run
	size     uint64
}

// Size returns the row length.
func (r *Record) Size() uint64 { return r.size }

// Empty reports whether the row has no visits.
func (r *Record) Empty() bool { return r.size == 0 }

// Outdegree returns the number of outgoing edges.
func (r *Record) Outdegree() uint64 { return uint64(len(r.outgoing)) }

// Outgoing returns the edges in ascending destination order.
func (r *Record) Outgoing() []record.Edge { return r.outgoing }

// Traverse yields the runs in row order.
func (r *Record) Traverse() iter.Seq[record.Run] { return slices.Values(r.body) }

// EdgeTo maps a destination to its outrank.
func (r *Record) EdgeTo(to uint64) (uint64, bool) {
	i, ok := slices.BinarySearchFunc(r.outgoing, to, func(e record.Edge, to uint64) int {
		switch {
		case e.To < to:
			return -1
		case e.To > to:
			return 1
		}
		return 0
	})
	return uint64(i), ok
}

// Runs returns the number of concrete and logical runs. Every endmarker
// occurrence is a logical run of its own.
func (r *Record) Runs() (concrete, logical uint64) {
	for _, run := range r.body {
		concrete++
		if r.outgoing[run.Outrank].To == gbwt.Endmarker {
			logical += run.Length
		} else {
			logical++
		}
	}
	return concrete, logical
}

// Value returns the successor at position i.
func (r *Record) Value(i uint64) (uint64, bool) {
	var start uint64
	for _, run := range r.body {
		if i < start+run.Length {
			return r.outgoing[run.Outrank].To, true
		}
		start += run.Length
	}
	return 0, false
}

// LF maps position i to the same visit in the successor's row.
func (r *Record) LF(i uint64) (gbwt.Position, bool) {
	to, ok := r.Value(i)
	if !ok {
		return gbwt.Position{}, false
	}
	offset, _ := r.LFTo(i, to)
	return gbwt.Position{Node: to, Offset: offset}, true
}

// LFTo returns the offset in to's row of the first occurrence of to at or
// after position i. i may equal Size.
func (r *Record) LFTo(i, to uint64) (uint64, bool) {
	if i > r.size {
		return 0, false
	}
	outrank, ok := r.EdgeTo(to)
	if !ok {
		return 0, false
	}
	offset := r.outgoing[outrank].Offset
	var start uint64
	for _, run := range r.body {
		if start >= i {
			break
		}
		if run.Outrank == outrank {
			offset += min(run.Length, i-start)
		}
		start += run.Length
	}
	return offset, true
}

// occurrence returns the position of the k-th occurrence of outrank.
func (r *Record) occurrence(outrank, k uint64) (uint64, bool) {
	var start uint64
	for _, run := range r.body {
		if run.Outrank == outrank {
			if k < run.Length {
				return start + k, true
			}
			k -= run.Length
		}
		start += run.Length
	}
	return 0, false
}

// count returns the number of occurrences of outrank in the row.
func (r *Record) count(outrank uint64) uint64 {
	var total uint64
	for _, run := range r.body {
		if run.Outrank == outrank {
			total += run.Length
		}
	}
	return total
}

// appendValue extends the row by one occurrence of the edge with the given
// outrank.
func (r *Record) appendValue(outrank uint64) {
	r.size++
	if k := len(r.body); k > 0 && r.body[k-1].Outrank == outrank {
		r.body[k-1].Length++
		return
	}
	r.body = append(r.body, record.Run{Outrank: outrank, Length: 1})
}
