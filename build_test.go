package lfgbwt_test

import (
	"context"
	"iter"
	"testing"

	"github.com/hupe1980/lfgbwt"
	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/record"
	"github.com/hupe1980/lfgbwt/rlgbwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenRow claims visits but has no outgoing edges.
type brokenRow struct{}

func (brokenRow) Size() uint64            { return 3 }
func (brokenRow) Outgoing() []record.Edge { return nil }
func (brokenRow) Traverse() iter.Seq[record.Run] {
	return func(func(record.Run) bool) {}
}

// faultySource replaces the row of one comp value and optionally the header.
type faultySource struct {
	*rlgbwt.Index
	comp   uint64
	header *gbwt.Header
}

func (s faultySource) Header() gbwt.Header {
	if s.header != nil {
		return *s.header
	}
	return s.Index.Header()
}

func (s faultySource) Record(comp uint64) record.Source {
	if comp == s.comp {
		return brokenRow{}
	}
	return s.Index.Record(comp)
}

func TestBuild_MalformedSource(t *testing.T) {
	src, err := rlgbwt.FromPaths([][]uint64{{1, 2, 3}})
	require.NoError(t, err)

	_, err = lfgbwt.Build(context.Background(), faultySource{Index: src, comp: 2})
	require.ErrorIs(t, err, lfgbwt.ErrMalformedSource)

	var nodeErr *lfgbwt.NodeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, uint64(2), nodeErr.Node)
}

func TestBuild_HeaderMismatch(t *testing.T) {
	src, err := rlgbwt.FromPaths([][]uint64{{1, 2, 3}})
	require.NoError(t, err)

	h := src.Header()
	h.Size++
	_, err = lfgbwt.Build(context.Background(), faultySource{Index: src, comp: 99, header: &h})
	assert.ErrorIs(t, err, lfgbwt.ErrMalformedSource)

	_, err = lfgbwt.Build(context.Background(), faultySource{Index: src, comp: 99, header: &gbwt.Header{}})
	assert.ErrorIs(t, err, lfgbwt.ErrMalformedSource)
}

func TestBuild_Cancelled(t *testing.T) {
	src, err := rlgbwt.FromPaths(randomPaths(1, false))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lfgbwt.Build(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Parallelism(t *testing.T) {
	paths := randomPaths(9, true)
	_, sequential := build(t, paths, true, lfgbwt.WithParallelism(1))
	_, parallel := build(t, paths, true, lfgbwt.WithParallelism(8))

	for comp := range sequential.Effective() {
		node := sequential.ToNode(comp)
		assert.True(t, sequential.Record(node).Equal(parallel.Record(node)), "node %d", node)
	}
}

func TestBuild_Observability(t *testing.T) {
	metrics := &lfgbwt.BasicMetricsCollector{}
	paths := randomPaths(2, false)
	_, idx := build(t, paths, false, lfgbwt.WithMetricsCollector(metrics), lfgbwt.WithLogger(nil))

	_, err := idx.Extract(0)
	require.NoError(t, err)
	_, err = idx.Extract(idx.Sequences())
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Zero(t, stats.BuildErrors)
	assert.Equal(t, int64(idx.Effective()), stats.BuildNodes)
	assert.Equal(t, int64(2), stats.ExtractCount)
	assert.Equal(t, int64(1), stats.ExtractErrors)
	assert.Equal(t, int64(len(paths[0])), stats.ExtractNodes)

	src, err := rlgbwt.FromPaths(paths)
	require.NoError(t, err)
	_, err = lfgbwt.Build(context.Background(), faultySource{Index: src, comp: 1}, lfgbwt.WithMetricsCollector(metrics))
	require.Error(t, err)
	assert.Equal(t, int64(1), metrics.GetStats().BuildErrors)
}
