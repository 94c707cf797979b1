package record

import (
	"fmt"
	"iter"

	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/internal/sdvector"
)

// Edge is an outgoing edge of a source row: the destination node and the
// number of occurrences of the destination in rows of smaller nodes.
type Edge struct {
	To     uint64
	Offset uint64
}

// Run is a span of Length successive occurrences of the destination with the
// given outrank.
type Run struct {
	Outrank uint64
	Length  uint64
}

// Source is a row of the run-length encoded representation.
type Source interface {
	// Size returns the row length.
	Size() uint64
	// Outgoing returns the edges in ascending destination order.
	Outgoing() []Edge
	// Traverse yields the runs of the row in row order.
	Traverse() iter.Seq[Run]
}

// Context maps source node identifiers into comp values.
type Context struct {
	// Offset is subtracted from non-endmarker node identifiers.
	Offset uint64
	// Effective is the size of the comp alphabet.
	Effective uint64
}

// ToComp maps a node identifier to its comp value.
func (c Context) ToComp(node uint64) uint64 {
	if node == gbwt.Endmarker {
		return node
	}
	return node - c.Offset
}

type span struct {
	start  uint64 // outrank*n + run start
	length uint64
}

// Build encodes a source row. It is a pure function of its inputs and may
// run concurrently for different rows.
//
// The source must be well formed: edges strictly ascending, run outranks
// below the outdegree, run lengths positive and summing to Size. Violations
// panic.
func Build(src Source, ctx Context) *Record {
	n := src.Size()
	if n == 0 {
		return &Record{}
	}

	edges := src.Outgoing()
	sigma := uint64(len(edges))
	if sigma == 0 {
		panic(fmt.Sprintf("record: row of length %d has no outgoing edges", n))
	}

	rec := &Record{
		outgoing: make([]uint64, sigma),
	}

	alphabet := sdvector.NewBuilder(ctx.Effective, len(edges))
	for i, e := range edges {
		rec.outgoing[i] = e.Offset
		alphabet.Set(ctx.ToComp(e.To))
	}
	rec.alphabet = alphabet.Build()

	runs := mergeRuns(src.Traverse(), sigma)

	first := sdvector.NewBuilder(n, len(runs))
	byAlphabet := sdvector.NewBuilder(n*sigma, len(runs))
	byAlphComp := sdvector.NewBuilder(n, len(runs))
	rec.alphabetByRun = make([]uint64, len(runs))

	spans := make([][]span, sigma)
	var start uint64
	for i, run := range runs {
		if start+run.Length > n {
			panic(fmt.Sprintf("record: runs exceed row length %d", n))
		}
		first.Set(start)
		spans[run.Outrank] = append(spans[run.Outrank], span{
			start:  run.Outrank*n + start,
			length: run.Length,
		})
		rec.alphabetByRun[i] = run.Outrank
		start += run.Length
	}
	if start != n {
		panic(fmt.Sprintf("record: runs cover %d of %d positions", start, n))
	}
	rec.first = first.Build()

	var cumulative uint64
	for _, list := range spans {
		for _, s := range list {
			byAlphabet.Set(s.start)
			byAlphComp.Set(cumulative)
			cumulative += s.length
		}
	}
	rec.firstByAlphabet = byAlphabet.Build()
	rec.firstByAlphComp = byAlphComp.Build()

	return rec
}

// mergeRuns collects runs, joining neighbours with the same outrank so that
// every concrete run is maximal.
func mergeRuns(seq iter.Seq[Run], sigma uint64) []Run {
	var runs []Run
	for run := range seq {
		if run.Outrank >= sigma {
			panic(fmt.Sprintf("record: outrank %d out of range [0, %d)", run.Outrank, sigma))
		}
		if run.Length == 0 {
			panic("record: empty run")
		}
		if k := len(runs); k > 0 && runs[k-1].Outrank == run.Outrank {
			runs[k-1].Length += run.Length
			continue
		}
		runs = append(runs, run)
	}
	return runs
}
