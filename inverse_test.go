package lfgbwt_test

import (
	"testing"

	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverseLF_MatchesSource(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4} {
		paths := randomPaths(seed, true)
		src, idx := build(t, paths, true)
		require.True(t, idx.Bidirectional())

		for comp := uint64(1); comp < idx.Effective(); comp++ {
			node := idx.ToNode(comp)
			for i := range idx.NodeSize(node) {
				want, wantOK := src.InverseLF(node, i)
				got, gotOK := idx.InverseLF(node, i)
				require.Equal(t, wantOK, gotOK, "seed %d: InverseLF(%d, %d)", seed, node, i)
				require.Equal(t, want, got, "seed %d: InverseLF(%d, %d)", seed, node, i)

				pred, ok := idx.PredecessorAt(gbwt.Reverse(node), i)
				require.True(t, ok)
				require.Equal(t, want.Node, pred, "seed %d: PredecessorAt(%d, %d)", seed, gbwt.Reverse(node), i)
			}
		}
	}
}

func TestInverseLF_Bijection(t *testing.T) {
	_, idx := build(t, randomPaths(11, true), true)

	for comp := range idx.Effective() {
		node := idx.ToNode(comp)
		for i := range idx.NodeSize(node) {
			p := gbwt.Position{Node: node, Offset: i}

			next, ok := idx.LF(node, i)
			require.True(t, ok)
			if next.Node != gbwt.Endmarker {
				back, ok := idx.InverseLF(next.Node, next.Offset)
				require.True(t, ok)
				require.Equal(t, p, back)
			}

			if node != gbwt.Endmarker {
				prev, ok := idx.InverseLF(node, i)
				require.True(t, ok)
				forward, ok := idx.LF(prev.Node, prev.Offset)
				require.True(t, ok)
				require.Equal(t, p, forward)
			}
		}
	}
}

func TestInverseLF_Twins(t *testing.T) {
	// Node 4 is reached from both orientations of graph node 1, so the row
	// of its reverse 5 continues to the twins 2 and 3.
	paths := [][]uint64{{2, 4}, {3, 4}, {2, 4, 6}, {3, 4, 7}}
	src, idx := build(t, paths, true)
	assert.Equal(t, []uint64{2, 3}, idx.Successors(5))

	for _, node := range []uint64{4, 6, 7, 2, 3} {
		for i := range idx.NodeSize(node) {
			want, wantOK := src.InverseLF(node, i)
			got, gotOK := idx.InverseLF(node, i)
			require.Equal(t, wantOK, gotOK)
			assert.Equal(t, want, got, "InverseLF(%d, %d)", node, i)
		}
	}
}

func TestInverseLF_Invalid(t *testing.T) {
	_, uni := build(t, [][]uint64{{1, 2}}, false)
	_, ok := uni.InverseLF(2, 0)
	assert.False(t, ok)
	_, ok = uni.PredecessorAt(2, 0)
	assert.False(t, ok)

	_, idx := build(t, [][]uint64{{2, 4}}, true)
	_, ok = idx.InverseLF(gbwt.Endmarker, 0)
	assert.False(t, ok)
	_, ok = idx.InverseLF(4, 1)
	assert.False(t, ok)
	_, ok = idx.InverseLF(100, 0)
	assert.False(t, ok)
	_, ok = idx.PredecessorAt(100, 0)
	assert.False(t, ok)

	prev, ok := idx.InverseLF(4, 0)
	require.True(t, ok)
	assert.Equal(t, gbwt.Position{Node: 2, Offset: 0}, prev)
}
