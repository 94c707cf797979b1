// Package cli implements the lfgbwt command-line interface.
//
// The commands build an index from a path file, inspect it and check it
// against its source:
//   - build: construct an index from paths and save it
//   - verify: compare a saved index with the paths it was built from
//   - extract: print stored sequences
//   - stats: print header statistics and run counts
//   - inverse: step backwards from a position of a bidirectional index
//
// Index locations are file paths, s3://bucket/key or minio://bucket/key.
// Remote stores read their connection settings from the YAML config file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hupe1980/lfgbwt"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// newLogger creates a new logger with timestamp formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// indexLogger adapts l as the slog handler of an lfgbwt.Logger.
func indexLogger(l *log.Logger) *lfgbwt.Logger {
	return lfgbwt.NewLogger(l)
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
