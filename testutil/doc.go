// Package testutil provides testing utilities for lfgbwt.
//
// This package is intended for use in tests and benchmarks only.
// It generates random path collections over small graphs so that stored
// paths share prefixes and successors, which is where run-length encoding
// and LF navigation get interesting.
//
// # Random Walks
//
//	rng := testutil.NewRNG(seed)
//	g := rng.Graph(32, 3)         // 32 nodes, up to 3 successors each
//	paths := rng.Walks(g, 20, 12) // 20 walks of at most 12 nodes
//
// # Oriented Walks
//
//	paths := rng.OrientedWalks(g, 20, 12) // node ids encoded with gbwt.Encode
package testutil
