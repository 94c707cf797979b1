package cli

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/lfgbwt"
	"github.com/hupe1980/lfgbwt/gbwt"
	"github.com/hupe1980/lfgbwt/rlgbwt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *CLI) readSource(name string, bidirectional bool) (*rlgbwt.Index, error) {
	in, err := openInput(name)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	paths, err := rlgbwt.ReadPaths(in)
	if err != nil {
		return nil, err
	}
	if bidirectional {
		for i, path := range paths {
			for j, id := range path {
				paths[i][j] = gbwt.Encode(id, false)
			}
		}
	}

	var opts []rlgbwt.Option
	if bidirectional {
		opts = append(opts, rlgbwt.WithBidirectional())
	}
	return rlgbwt.FromPaths(paths, opts...)
}

func (c *CLI) buildCommand() *cobra.Command {
	var (
		output        string
		bidirectional bool
		verify        bool
	)
	cmd := &cobra.Command{
		Use:   "build <paths>",
		Short: "Build an index from a path file",
		Long: `Build reads one path per line (whitespace-separated node ids, '#' starts a comment;
"-" reads stdin), builds the index and saves it to --output.

With --bidirectional the ids are graph node ids: every path is stored forward
and as its reverse complement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			prog := newProgress(logger)
			src, err := c.readSource(args[0], bidirectional)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Read %d sequences", src.Sequences()))

			prog = newProgress(logger)
			idx, err := lfgbwt.Build(ctx, src, c.indexOptions()...)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Built index over %d nodes", idx.Effective()))

			if verify {
				if err := idx.Verify(ctx, src); err != nil {
					return err
				}
			}

			prog = newProgress(logger)
			if err := saveIndex(ctx, c.Config, idx, output); err != nil {
				return err
			}
			prog.done("Saved " + output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "graph.lfgbwt", "index location (file, s3:// or minio://)")
	cmd.Flags().BoolVarP(&bidirectional, "bidirectional", "b", false, "store reverse complements")
	cmd.Flags().BoolVar(&verify, "verify", false, "verify the index against the paths before saving")
	return cmd
}

func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <index> <paths>",
		Short: "Check a saved index against the paths it was built from",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			idx, err := loadIndex(ctx, c.Config, args[0], c.indexOptions()...)
			if err != nil {
				return err
			}
			src, err := c.readSource(args[1], idx.Bidirectional())
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			if err := idx.Verify(ctx, src); err != nil {
				return err
			}
			prog.done("Index matches " + args[1])
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func (c *CLI) extractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <index> [sequence...]",
		Short: "Print stored sequences, one per line",
		Long:  `Extract prints the given sequences, or all of them, in the path file format.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			idx, err := loadIndex(ctx, c.Config, args[0], c.indexOptions()...)
			if err != nil {
				return err
			}

			var paths [][]uint64
			if len(args) == 1 {
				err = idx.ExtractAll(ctx, func(_ uint64, path []uint64) error {
					paths = append(paths, path)
					return nil
				})
				if err != nil {
					return err
				}
			}
			for _, arg := range args[1:] {
				seq, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("sequence %q: %w", arg, err)
				}
				path, err := idx.Extract(seq)
				if err != nil {
					return err
				}
				paths = append(paths, path)
			}
			return rlgbwt.WritePaths(cmd.OutOrStdout(), paths)
		},
	}
}

// Stats is the report printed by the stats command.
type Stats struct {
	Size          uint64            `yaml:"size"`
	Sequences     uint64            `yaml:"sequences"`
	AlphabetSize  uint64            `yaml:"alphabet_size"`
	Offset        uint64            `yaml:"offset"`
	Nodes         uint64            `yaml:"nodes"`
	Bidirectional bool              `yaml:"bidirectional"`
	ConcreteRuns  uint64            `yaml:"concrete_runs"`
	LogicalRuns   uint64            `yaml:"logical_runs"`
	Tags          map[string]string `yaml:"tags,omitempty"`
	Samples       int               `yaml:"samples,omitempty"`
	Contigs       int               `yaml:"contigs,omitempty"`
	Haplotypes    uint64            `yaml:"haplotypes,omitempty"`
}

func statsOf(idx *lfgbwt.Index) Stats {
	concrete, logical := idx.Runs()
	md := idx.Metadata()
	return Stats{
		Size:          idx.Size(),
		Sequences:     idx.Sequences(),
		AlphabetSize:  idx.AlphabetSize(),
		Offset:        idx.Header().Offset,
		Nodes:         idx.Effective(),
		Bidirectional: idx.Bidirectional(),
		ConcreteRuns:  concrete,
		LogicalRuns:   logical,
		Tags:          idx.Tags(),
		Samples:       len(md.Samples),
		Contigs:       len(md.Contigs),
		Haplotypes:    md.Haplotypes,
	}
}

func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <index>",
		Short: "Print index statistics as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := loadIndex(cmd.Context(), c.Config, args[0], c.indexOptions()...)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(statsOf(idx)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func (c *CLI) inverseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inverse <index> <node> <offset>",
		Short: "Print the position whose LF is (node, offset)",
		Long: `Inverse steps one visit backwards with inverse LF and prints the
preceding position. The index must be bidirectional.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("node %q: %w", args[1], err)
			}
			offset, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("offset %q: %w", args[2], err)
			}

			idx, err := loadIndex(cmd.Context(), c.Config, args[0], c.indexOptions()...)
			if err != nil {
				return err
			}
			if !idx.Bidirectional() {
				return lfgbwt.ErrNotBidirectional
			}
			if !idx.Contains(node) {
				return fmt.Errorf("%w: %d", lfgbwt.ErrInvalidNode, node)
			}
			prev, ok := idx.InverseLF(node, offset)
			if !ok {
				return fmt.Errorf("no visit at (%d, %d)", node, offset)
			}
			fmt.Fprintln(cmd.OutOrStdout(), prev)
			return nil
		},
	}
}
