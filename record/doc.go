// Package record implements compressed records: the per-node rows of a path
// index re-encoded as sparse bit-vectors.
//
// A record of length n stores the successor of every visit to its node. The
// encoding splits the row into concrete runs (maximal spans with the same
// successor) and keeps five structures:
//
//	first            length n          bit per run start
//	firstByAlphabet  length n*outdeg   bit at outrank*n + run start
//	firstByAlphComp  length n          cumulative run lengths, destination order
//	alphabet         length effective  destinations of the record
//	alphabetByRun    one outrank per concrete run, row order
//
// With these, Value and LF need one predecessor query on first and a
// constant number of successor/select queries; no run lengths are scanned.
//
// All identifiers in this package are comp values: dense node identifiers
// where 0 is the endmarker.
package record
