package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/lfgbwt/gbwt"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Zipf returns a Zipfian-distributed value in [0, n).
// P(k) ∝ 1/k^s where s is the skew parameter.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// Graph is a directed graph over graph node ids 1..len(Successors).
// Successors[id-1] lists the successors of id.
type Graph struct {
	Successors [][]uint64
}

// Nodes returns the number of graph nodes.
func (g Graph) Nodes() int { return len(g.Successors) }

// Graph generates a random graph with the given number of nodes, each with
// between 1 and maxDegree successors. Node ids start at 1.
func (r *RNG) Graph(nodes, maxDegree int) Graph {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := Graph{Successors: make([][]uint64, nodes)}
	for i := range g.Successors {
		degree := 1 + r.rand.Intn(maxDegree)
		for range degree {
			g.Successors[i] = append(g.Successors[i], uint64(1+r.rand.Intn(nodes)))
		}
	}
	return g
}

// Walks generates count random walks of 1 to maxLen graph node ids. Start
// nodes follow a Zipf distribution so that walks share prefixes.
func (r *RNG) Walks(g Graph, count, maxLen int) [][]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	walks := make([][]uint64, count)
	for i := range walks {
		length := 1 + r.rand.Intn(maxLen)
		node := uint64(1 + r.zipfLocked(g.Nodes(), 1.2))
		walk := make([]uint64, 0, length)
		for range length {
			walk = append(walk, node)
			succ := g.Successors[node-1]
			node = succ[r.rand.Intn(len(succ))]
		}
		walks[i] = walk
	}
	return walks
}

// OrientedWalks is Walks with every node encoded as an oriented node
// identifier. Each walk is traversed forward or as its reverse complement.
func (r *RNG) OrientedWalks(g Graph, count, maxLen int) [][]uint64 {
	walks := r.Walks(g, count, maxLen)
	for i, walk := range walks {
		for j, id := range walk {
			walk[j] = gbwt.Encode(id, false)
		}
		if r.Intn(2) == 1 {
			walks[i] = gbwt.ReversePath(walk)
		}
	}
	return walks
}
