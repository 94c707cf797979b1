// Package sdvector provides an immutable sparse bit-vector with
// predecessor, successor and select support.
//
// Set positions are stored in a roaring64 bitmap; the vector additionally
// carries its logical length so that queries past the last set bit resolve
// to the (Count, Size) end sentinel, mirroring the one-past-the-end iterator
// of classic sparse vectors.
//
// Used internally for:
//   - run starts of compressed records
//   - per-destination run starts and cumulative run lengths
//   - the destination alphabet of every record
package sdvector
