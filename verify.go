package lfgbwt

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/lfgbwt/gbwt"
	"golang.org/x/sync/errgroup"
)

// Reference is an index the compressed form can be checked against.
// rlgbwt.Index implements it.
type Reference interface {
	Header() gbwt.Header
	NodeSize(node uint64) uint64
	Value(node, i uint64) (uint64, bool)
	LF(node, i uint64) (gbwt.Position, bool)
	InverseLF(node, i uint64) (gbwt.Position, bool)
	Runs() (concrete, logical uint64)
}

// Verify compares the index with ref: header statistics, run counts and,
// for every node and offset, the value, the LF result and, when the index
// is bidirectional, the inverse LF result. Rows are checked concurrently.
// The returned *VerifyError names the lowest failing node.
func (idx *Index) Verify(ctx context.Context, ref Reference) error {
	start := time.Now()
	err := idx.verify(ctx, ref)
	idx.opts.logger.LogVerify(ctx, idx.Effective(), err)
	idx.opts.metricsCollector.RecordVerify(int(idx.Effective()), time.Since(start), err)
	return err
}

func (idx *Index) verify(ctx context.Context, ref Reference) error {
	if err := idx.verifyHeader(ref.Header()); err != nil {
		return err
	}

	c, l := idx.Runs()
	rc, rl := ref.Runs()
	if c != rc || l != rl {
		return &VerifyError{
			Check: "runs",
			Want:  fmt.Sprintf("(%d, %d)", rc, rl),
			Got:   fmt.Sprintf("(%d, %d)", c, l),
		}
	}

	failures := make([]error, idx.Effective())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.opts.parallelism)
	for comp := range idx.Effective() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			failures[comp] = idx.verifyNode(idx.ToNode(comp), ref)
			return failures[comp]
		})
	}
	_ = g.Wait()

	for _, err := range failures {
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (idx *Index) verifyHeader(want gbwt.Header) error {
	got := idx.header
	type stat struct {
		name      string
		want, got uint64
	}
	for _, s := range []stat{
		{"size", want.Size, got.Size},
		{"sequences", want.Sequences, got.Sequences},
		{"alphabet size", want.AlphabetSize, got.AlphabetSize},
		{"offset", want.Offset, got.Offset},
	} {
		if s.want != s.got {
			return &VerifyError{
				Check: "header",
				Want:  fmt.Sprintf("%s %d", s.name, s.want),
				Got:   fmt.Sprintf("%s %d", s.name, s.got),
			}
		}
	}
	if want.Get(gbwt.FlagBidirectional) != got.Get(gbwt.FlagBidirectional) {
		return &VerifyError{
			Check: "header",
			Want:  fmt.Sprintf("bidirectional %t", want.Get(gbwt.FlagBidirectional)),
			Got:   fmt.Sprintf("bidirectional %t", got.Get(gbwt.FlagBidirectional)),
		}
	}
	return nil
}

func (idx *Index) verifyNode(node uint64, ref Reference) error {
	n := idx.NodeSize(node)
	if want := ref.NodeSize(node); n != want {
		return &VerifyError{
			Check: "size",
			Node:  node,
			Want:  fmt.Sprint(want),
			Got:   fmt.Sprint(n),
		}
	}

	inverse := idx.Bidirectional() && node != gbwt.Endmarker
	for i := range n {
		want, wantOK := ref.Value(node, i)
		got, gotOK := idx.Value(node, i)
		if want != got || wantOK != gotOK {
			return mismatch("value", node, i, want, wantOK, got, gotOK)
		}

		wantPos, wantOK := ref.LF(node, i)
		gotPos, gotOK := idx.LF(node, i)
		if wantPos != gotPos || wantOK != gotOK {
			return mismatch("lf", node, i, wantPos, wantOK, gotPos, gotOK)
		}

		if inverse {
			wantPos, wantOK = ref.InverseLF(node, i)
			gotPos, gotOK = idx.InverseLF(node, i)
			if wantPos != gotPos || wantOK != gotOK {
				return mismatch("inverse-lf", node, i, wantPos, wantOK, gotPos, gotOK)
			}
		}
	}
	return nil
}

func mismatch(check string, node, i uint64, want any, wantOK bool, got any, gotOK bool) *VerifyError {
	describe := func(v any, ok bool) string {
		if !ok {
			return "invalid"
		}
		return fmt.Sprint(v)
	}
	return &VerifyError{
		Check:  check,
		Node:   node,
		Offset: i,
		Want:   describe(want, wantOK),
		Got:    describe(got, gotOK),
	}
}
