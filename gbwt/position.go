package gbwt

import "fmt"

// Position is a (node, offset) pair: offset is a position in the node's row.
type Position struct {
	Node   uint64
	Offset uint64
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Node, p.Offset)
}

// Range is a closed interval of row offsets. A range with Start > End is
// empty.
type Range struct {
	Start uint64
	End   uint64
}

// EmptyRange returns the canonical empty range.
func EmptyRange() Range {
	return Range{Start: 1, End: 0}
}

// Empty reports whether the range contains no offsets.
func (r Range) Empty() bool { return r.Start > r.End }

// Length returns the number of offsets in the range.
func (r Range) Length() uint64 {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

func (r Range) String() string {
	if r.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}
