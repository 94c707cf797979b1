package lfgbwt

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus; see package metrics/prometheus for a ready-made adapter.
type MetricsCollector interface {
	// RecordBuild is called after each construction. nodes is the number of
	// rows, err is nil if successful.
	RecordBuild(nodes int, duration time.Duration, err error)

	// RecordLoad is called after each load with the number of bytes read.
	RecordLoad(bytes int64, duration time.Duration, err error)

	// RecordSave is called after each save with the number of bytes written.
	RecordSave(bytes int64, duration time.Duration, err error)

	// RecordExtract is called after each sequence extraction with the
	// number of nodes extracted.
	RecordExtract(length int, duration time.Duration, err error)

	// RecordVerify is called after each verification against a source.
	RecordVerify(nodes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordLoad(int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordSave(int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordExtract(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordVerify(int, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildNodes        atomic.Int64
	BuildTotalNanos   atomic.Int64
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	LoadBytes         atomic.Int64
	SaveCount         atomic.Int64
	SaveErrors        atomic.Int64
	SaveBytes         atomic.Int64
	ExtractCount      atomic.Int64
	ExtractErrors     atomic.Int64
	ExtractNodes      atomic.Int64
	ExtractTotalNanos atomic.Int64
	VerifyCount       atomic.Int64
	VerifyErrors      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(nodes int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildNodes.Add(int64(nodes))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int64, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadBytes.Add(bytes)
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(bytes int64, duration time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveBytes.Add(bytes)
}

// RecordExtract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtract(length int, duration time.Duration, err error) {
	b.ExtractCount.Add(1)
	b.ExtractTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExtractErrors.Add(1)
		return
	}
	b.ExtractNodes.Add(int64(length))
}

// RecordVerify implements MetricsCollector.
func (b *BasicMetricsCollector) RecordVerify(nodes int, duration time.Duration, err error) {
	b.VerifyCount.Add(1)
	if err != nil {
		b.VerifyErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:      b.BuildCount.Load(),
		BuildErrors:     b.BuildErrors.Load(),
		BuildNodes:      b.BuildNodes.Load(),
		BuildAvgNanos:   avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadBytes:       b.LoadBytes.Load(),
		SaveCount:       b.SaveCount.Load(),
		SaveErrors:      b.SaveErrors.Load(),
		SaveBytes:       b.SaveBytes.Load(),
		ExtractCount:    b.ExtractCount.Load(),
		ExtractErrors:   b.ExtractErrors.Load(),
		ExtractNodes:    b.ExtractNodes.Load(),
		ExtractAvgNanos: avg(b.ExtractTotalNanos.Load(), b.ExtractCount.Load()),
		VerifyCount:     b.VerifyCount.Load(),
		VerifyErrors:    b.VerifyErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount      int64
	BuildErrors     int64
	BuildNodes      int64
	BuildAvgNanos   int64
	LoadCount       int64
	LoadErrors      int64
	LoadBytes       int64
	SaveCount       int64
	SaveErrors      int64
	SaveBytes       int64
	ExtractCount    int64
	ExtractErrors   int64
	ExtractNodes    int64
	ExtractAvgNanos int64
	VerifyCount     int64
	VerifyErrors    int64
}
