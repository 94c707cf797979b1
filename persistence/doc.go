// Package persistence provides the on-disk framing for path indexes.
//
// File layout:
//
//	┌──────────────────────────────┐
//	│ FileHeader (16 bytes)        │  magic "LFGB", version, compression
//	├──────────────────────────────┤
//	│ body (optionally compressed) │  varint-encoded structures
//	│   ...                        │
//	│   CRC32 of the body (LE)     │
//	└──────────────────────────────┘
//
// The body is written through an Encoder and read back through a Decoder.
// Both latch the first error, so callers encode whole structures and check
// Err once. The CRC32 trailer lives inside the compressed stream so that
// decompressors reading ahead never swallow it.
package persistence
