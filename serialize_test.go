package lfgbwt_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/lfgbwt"
	"github.com/hupe1980/lfgbwt/blobstore"
	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/persistence"
	"github.com/hupe1980/lfgbwt/rlgbwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSameIndex compares two indexes row by row.
func assertSameIndex(t *testing.T, want, got *lfgbwt.Index) {
	t.Helper()

	assert.Equal(t, want.Header(), got.Header())
	assert.Equal(t, want.Tags(), got.Tags())
	assert.Equal(t, want.Metadata(), got.Metadata())
	require.Equal(t, want.Effective(), got.Effective())
	for comp := range want.Effective() {
		node := want.ToNode(comp)
		assert.True(t, want.Record(node).Equal(got.Record(node)), "node %d", node)
	}
}

func encode(t *testing.T, idx *lfgbwt.Index) []byte {
	t.Helper()

	var buf bytes.Buffer
	n, err := idx.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestSerialization_RoundTrip(t *testing.T) {
	md := gbwt.Metadata{
		Samples:    []string{"A", "B"},
		Contigs:    []string{"chr1"},
		Haplotypes: 3,
		Paths:      []gbwt.PathName{{Sample: 1, Contig: 0, Phase: 2, Count: 5}},
	}

	for _, c := range []persistence.Compression{
		persistence.CompressionNone,
		persistence.CompressionLZ4,
		persistence.CompressionZSTD,
	} {
		t.Run(c.String(), func(t *testing.T) {
			paths := randomPaths(21, true)
			src, err := rlgbwt.FromPaths(paths, rlgbwt.WithBidirectional(), rlgbwt.WithMetadata(md))
			require.NoError(t, err)
			idx, err := lfgbwt.Build(context.Background(), src, lfgbwt.WithCompression(c))
			require.NoError(t, err)

			loaded, err := lfgbwt.ReadFrom(bytes.NewReader(encode(t, idx)))
			require.NoError(t, err)
			assertSameIndex(t, idx, loaded)
			require.NoError(t, loaded.Verify(context.Background(), src))

			for k, path := range paths {
				got, err := loaded.Extract(2 * uint64(k))
				require.NoError(t, err)
				assert.Equal(t, path, got)
			}
		})
	}
}

func TestSerialization_WithoutMetadata(t *testing.T) {
	_, idx := build(t, [][]uint64{{1, 2, 3}, {1, 3}}, false)
	idx.AddMetadata(gbwt.Metadata{Samples: []string{"x"}})
	idx.ClearMetadata()

	loaded, err := lfgbwt.ReadFrom(bytes.NewReader(encode(t, idx)))
	require.NoError(t, err)
	assert.False(t, loaded.HasMetadata())
	assertSameIndex(t, idx, loaded)
}

func TestSerialization_Empty(t *testing.T) {
	_, idx := build(t, nil, false)

	loaded, err := lfgbwt.ReadFrom(bytes.NewReader(encode(t, idx)))
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
	assert.Equal(t, uint64(1), loaded.Effective())
}

func TestSerialization_Corruption(t *testing.T) {
	_, idx := build(t, randomPaths(4, false), false, lfgbwt.WithCompression(persistence.CompressionNone))
	data := encode(t, idx)

	t.Run("magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] ^= 0xff
		_, err := lfgbwt.ReadFrom(bytes.NewReader(bad))
		assert.ErrorIs(t, err, persistence.ErrInvalidMagic)
	})

	t.Run("version", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[5] ^= 0xff
		_, err := lfgbwt.ReadFrom(bytes.NewReader(bad))
		assert.ErrorIs(t, err, persistence.ErrInvalidVersion)
	})

	t.Run("trailer", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)-1] ^= 0xff
		_, err := lfgbwt.ReadFrom(bytes.NewReader(bad))
		assert.True(t, persistence.IsChecksumMismatch(err), "got %v", err)
	})

	t.Run("body", func(t *testing.T) {
		for _, off := range []int{16, 17, len(data) - 5} {
			bad := bytes.Clone(data)
			bad[off] ^= 0x5a
			_, err := lfgbwt.ReadFrom(bytes.NewReader(bad))
			assert.Error(t, err, "offset %d", off)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 10, 16, len(data) / 2, len(data) - 1} {
			_, err := lfgbwt.ReadFrom(bytes.NewReader(data[:n]))
			assert.Error(t, err, "length %d", n)
		}
		_, err := lfgbwt.ReadFrom(bytes.NewReader(data[:len(data)-1]))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	metrics := &lfgbwt.BasicMetricsCollector{}
	src, idx := build(t, randomPaths(8, true), true, lfgbwt.WithMetricsCollector(metrics))

	filename := filepath.Join(t.TempDir(), "graph.lfgbwt")
	require.NoError(t, idx.Save(ctx, filename))

	info, err := os.Stat(filename)
	require.NoError(t, err)

	loaded, err := lfgbwt.Load(ctx, filename, lfgbwt.WithMetricsCollector(metrics))
	require.NoError(t, err)
	assertSameIndex(t, idx, loaded)
	require.NoError(t, loaded.Verify(ctx, src))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, info.Size(), stats.SaveBytes)
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, info.Size(), stats.LoadBytes)

	_, err = lfgbwt.Load(ctx, filepath.Join(t.TempDir(), "missing"), lfgbwt.WithMetricsCollector(metrics))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, int64(1), metrics.GetStats().LoadErrors)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, idx.Save(cancelled, filename), context.Canceled)
	_, err = lfgbwt.Load(cancelled, filename)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	stores := map[string]blobstore.BlobStore{
		"memory": blobstore.NewMemoryStore(),
		"local":  blobstore.NewLocalStore(t.TempDir()),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			src, idx := build(t, randomPaths(13, false), false)
			require.NoError(t, idx.SaveToStore(ctx, store, "indexes/graph.lfgbwt"))

			names, err := store.List(ctx, "indexes/")
			require.NoError(t, err)
			assert.Equal(t, []string{"indexes/graph.lfgbwt"}, names)

			loaded, err := lfgbwt.LoadFromStore(ctx, store, "indexes/graph.lfgbwt")
			require.NoError(t, err)
			assertSameIndex(t, idx, loaded)
			require.NoError(t, loaded.Verify(ctx, src))

			_, err = lfgbwt.LoadFromStore(ctx, store, "indexes/missing")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}
}

func TestStore_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad", []byte("not an index at all")))

	_, err := lfgbwt.LoadFromStore(ctx, store, "bad")
	assert.ErrorIs(t, err, persistence.ErrInvalidMagic)
}
