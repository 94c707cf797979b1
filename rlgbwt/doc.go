// Package rlgbwt is a run-length encoded row-per-node path index.
//
// Every graph node owns a row listing, for each visit of the node by a
// stored path, the node visited next. Rows store maximal runs of equal
// successors together with one base offset per outgoing edge, so that
//
//	LF(v, i) = (w, offset(v→w) + occurrences of w in row v before i)
//
// where w is the successor at position i of v's row. Row 0 belongs to the
// endmarker and holds the first node of every sequence in sequence order.
//
// An Index is built from node-id paths with FromPaths:
//
//	idx, err := rlgbwt.FromPaths(paths, rlgbwt.WithBidirectional())
//
// The package is the construction input of the compressed index and the
// reference implementation its answers are checked against.
package rlgbwt
