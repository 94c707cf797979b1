package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hupe1980/lfgbwt"
	"github.com/hupe1980/lfgbwt/persistence"
	"github.com/spf13/cobra"
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configFile  string
	verbose     bool
	compression string
	parallelism int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lfgbwt",
		Short:         "lfgbwt builds and queries compressed path indexes",
		Long:          `lfgbwt builds compressed, LF-navigable indexes over paths in a genome graph and checks, inspects and queries them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.configure(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "YAML config file")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.compression, "compression", "", "body compression of saved indexes: none, lz4 or zstd")
	flags.IntVarP(&c.parallelism, "parallelism", "p", 0, "rows built or verified concurrently (0 = GOMAXPROCS)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.inverseCommand())
	return root
}

// configure loads the config file and applies flag overrides.
func (c *CLI) configure(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("compression") {
		cfg.Compression = c.compression
	}
	if cmd.Flags().Changed("parallelism") {
		cfg.Parallelism = c.parallelism
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg

	level, _ := parseLevel(cfg.LogLevel)
	c.SetLogLevel(level)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// indexOptions translates the configuration into index options.
func (c *CLI) indexOptions() []lfgbwt.Option {
	compression, _ := persistence.ParseCompression(c.Config.Compression)
	return []lfgbwt.Option{
		lfgbwt.WithLogger(indexLogger(c.Logger)),
		lfgbwt.WithCompression(compression),
		lfgbwt.WithParallelism(c.Config.Parallelism),
	}
}

// openInput opens a path file, or stdin for "-".
func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open paths: %w", err)
	}
	return f, nil
}
