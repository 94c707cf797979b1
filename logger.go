package lfgbwt

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with lfgbwt-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithNode adds a node field to the logger.
func (l *Logger) WithNode(node uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("node", node),
	}
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogBuildStart logs the start of a construction.
func (l *Logger) LogBuildStart(ctx context.Context, nodes, size uint64) {
	l.InfoContext(ctx, "constructing index",
		"nodes", nodes,
		"total_length", size,
	)
}

// LogBuild logs a completed or failed construction.
func (l *Logger) LogBuild(ctx context.Context, nodes, size uint64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "construction failed",
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index constructed",
			"nodes", nodes,
			"total_length", size,
			"duration", duration,
		)
	}
}

// LogVerify logs a verification against a source index.
func (l *Logger) LogVerify(ctx context.Context, nodes uint64, err error) {
	if err != nil {
		l.WarnContext(ctx, "verification failed",
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "verification passed",
			"nodes", nodes,
		)
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, target string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"target", target,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index saved",
			"target", target,
			"bytes", bytes,
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, source string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "index loaded",
			"source", source,
			"bytes", bytes,
		)
	}
}
