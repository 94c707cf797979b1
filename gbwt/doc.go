// Package gbwt defines the shared vocabulary of path indexes over
// bidirected sequence graphs: oriented node identifiers, positions, offset
// ranges, and the opaque header, tags and metadata values carried by an
// index.
//
// # Node identifiers
//
// A node identifier encodes a graph node id and an orientation:
//
//	node := gbwt.Encode(id, reverse)  // 2*id + orientation
//	gbwt.Reverse(node)                // flips the orientation
//
// Node 0 is the Endmarker that starts and ends every stored path.
package gbwt
