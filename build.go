package lfgbwt

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/record"
	"golang.org/x/sync/errgroup"
)

// Source is the run-length encoded index an Index is built from.
// rlgbwt.Index implements it.
type Source interface {
	Header() gbwt.Header
	Tags() gbwt.Tags
	Metadata() gbwt.Metadata
	// Record returns the row of the given comp value in [0, effective).
	Record(comp uint64) record.Source
}

// Build re-encodes every row of src. Rows are built concurrently, bounded by
// WithParallelism. A row that violates the source contract fails the build
// with ErrMalformedSource; cancelling ctx stops it between rows.
func Build(ctx context.Context, src Source, opts ...Option) (*Index, error) {
	o := applyOptions(opts)
	start := time.Now()

	h := src.Header()
	effective := h.Effective()
	o.logger.LogBuildStart(ctx, effective, h.Size)

	idx, err := build(ctx, src, h, o)

	duration := time.Since(start)
	o.logger.LogBuild(ctx, effective, h.Size, duration, err)
	o.metricsCollector.RecordBuild(int(effective), duration, err)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func build(ctx context.Context, src Source, h gbwt.Header, o options) (*Index, error) {
	effective := h.Effective()
	if effective == 0 {
		return nil, fmt.Errorf("%w: alphabet size %d with offset %d leaves no endmarker row",
			ErrMalformedSource, h.AlphabetSize, h.Offset)
	}

	idx := &Index{
		header: h,
		tags:   src.Tags(),
		rows:   make([]*record.Record, effective),
		opts:   o,
	}
	if h.Get(gbwt.FlagMetadata) {
		idx.metadata = src.Metadata()
	}

	rctx := record.Context{Offset: h.Offset, Effective: effective}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)
	for comp := range effective {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &NodeError{
						Node:  idx.ToNode(comp),
						cause: fmt.Errorf("%w: %v", ErrMalformedSource, r),
					}
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			idx.rows[comp] = record.Build(src.Record(comp), rctx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var total uint64
	for _, rec := range idx.rows {
		total += rec.Size()
	}
	if total != h.Size {
		return nil, fmt.Errorf("%w: rows hold %d visits, header says %d", ErrMalformedSource, total, h.Size)
	}
	return idx, nil
}
