package lfgbwt

import (
	"runtime"

	"github.com/hupe1980/lfgbwt/persistence"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	parallelism      int
	compression      persistence.Compression
}

// Option configures Build, Load and the save functions.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		parallelism:      runtime.GOMAXPROCS(0),
		compression:      persistence.CompressionZSTD,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithParallelism bounds the number of rows built or verified concurrently.
// Values below 1 select GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}

// WithCompression selects the body compression of saved indexes. The
// default is zstd.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}
