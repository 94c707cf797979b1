// Package lfgbwt provides a compressed, LF-navigable path index for genome
// graphs.
//
// An index stores a collection of paths over integer node identifiers. For
// every node it keeps one row listing, visit by visit, the node each path
// continues to. The rows are re-encoded from a run-length source (package
// rlgbwt) into a handful of sparse bit-vectors per row, which answers the
// LF mapping, the step from one visit to the same visit in the next row, in
// a few rank and select operations.
//
// # Quick Start
//
//	ctx := context.Background()
//	src, _ := rlgbwt.FromPaths(paths, rlgbwt.WithBidirectional())
//	idx, _ := lfgbwt.Build(ctx, src)
//
//	path, _ := idx.Extract(0)        // nodes of the first sequence
//	next, ok := idx.LF(node, offset) // forward step
//	prev, ok := idx.InverseLF(node, offset) // backward step (bidirectional only)
//
// # Node Identifiers
//
// Node 0 is the endmarker that terminates every path; its row lists the
// first node of every sequence. Other identifiers are mapped into a dense
// range by subtracting the header offset (ToComp and ToNode). In a
// bidirectional index node 2k is the forward and node 2k+1 the reverse
// orientation of graph node k, and every path is stored in both
// orientations.
//
// # Persistence
//
// Indexes are written with WriteTo and read with ReadFrom. Save writes a
// file atomically and Load memory-maps it. SaveToStore and LoadFromStore
// use any blobstore.BlobStore (local disk, memory, S3, MinIO):
//
//	_ = idx.Save(ctx, "graph.lfgbwt")
//	idx, _ = lfgbwt.Load(ctx, "graph.lfgbwt")
//
// The body is compressed with zstd by default (see WithCompression) and
// protected by a CRC32 trailer.
//
// # Observability
//
// WithLogger installs a structured slog logger and WithMetricsCollector a
// MetricsCollector such as BasicMetricsCollector or the Prometheus adapter
// in package metrics/prometheus.
package lfgbwt
