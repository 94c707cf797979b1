package lfgbwt_test

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/hupe1980/lfgbwt"
	"github.com/hupe1980/lfgbwt/blobstore"
	"github.com/hupe1980/lfgbwt/persistence"
	"github.com/hupe1980/lfgbwt/rlgbwt"
	"github.com/stretchr/testify/require"
)

// TestNoGoroutineLeaks verifies that the worker pools of Build and Verify
// and the codecs used by save and load are shut down when they return.
func TestNoGoroutineLeaks(t *testing.T) {
	paths := randomPaths(31, true)

	tests := []struct {
		name     string
		run      func(t *testing.T, ctx context.Context)
		maxLeaks int // Allow small variance (runtime background goroutines)
	}{
		{
			name: "build and verify",
			run: func(t *testing.T, ctx context.Context) {
				src, err := rlgbwt.FromPaths(paths, rlgbwt.WithBidirectional())
				require.NoError(t, err)
				idx, err := lfgbwt.Build(ctx, src, lfgbwt.WithParallelism(8))
				require.NoError(t, err)
				require.NoError(t, idx.Verify(ctx, src))
			},
			maxLeaks: 2,
		},
		{
			name: "failed build",
			run: func(t *testing.T, ctx context.Context) {
				src, err := rlgbwt.FromPaths(paths, rlgbwt.WithBidirectional())
				require.NoError(t, err)
				_, err = lfgbwt.Build(ctx, faultySource{Index: src, comp: 3}, lfgbwt.WithParallelism(8))
				require.Error(t, err)
			},
			maxLeaks: 2,
		},
		{
			name: "zstd round trip through a store",
			run: func(t *testing.T, ctx context.Context) {
				src, err := rlgbwt.FromPaths(paths, rlgbwt.WithBidirectional())
				require.NoError(t, err)
				idx, err := lfgbwt.Build(ctx, src, lfgbwt.WithCompression(persistence.CompressionZSTD))
				require.NoError(t, err)

				store := blobstore.NewMemoryStore()
				require.NoError(t, idx.SaveToStore(ctx, store, "graph"))
				_, err = lfgbwt.LoadFromStore(ctx, store, "graph")
				require.NoError(t, err)

				// A failing load must release the decoder as well.
				var buf bytes.Buffer
				_, err = idx.WriteTo(&buf)
				require.NoError(t, err)
				_, err = lfgbwt.ReadFrom(bytes.NewReader(buf.Bytes()[:buf.Len()/2]))
				require.Error(t, err)
			},
			maxLeaks: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime.GC()
			time.Sleep(50 * time.Millisecond)

			initial := runtime.NumGoroutine()
			t.Logf("Initial goroutines: %d", initial)

			tt.run(t, context.Background())

			deadline := time.Now().Add(2 * time.Second)
			var final, leaked int
			for {
				runtime.GC()
				time.Sleep(50 * time.Millisecond)

				final = runtime.NumGoroutine()
				leaked = final - initial
				if leaked <= tt.maxLeaks || time.Now().After(deadline) {
					break
				}
			}

			t.Logf("Final goroutines: %d (leaked: %d)", final, leaked)

			if leaked > tt.maxLeaks {
				t.Errorf("Goroutine leak detected: started with %d, ended with %d (leaked: %d, max allowed: %d)",
					initial, final, leaked, tt.maxLeaks)

				buf := make([]byte, 1<<20)
				stackSize := runtime.Stack(buf, true)
				t.Logf("Goroutine stacks:\n%s", buf[:stackSize])
			}
		})
	}
}
