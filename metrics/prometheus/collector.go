// Package prometheus exports lfgbwt operation metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	idx, err := lfgbwt.Build(ctx, src,
//	    lfgbwt.WithMetricsCollector(lfprom.NewCollector(reg)))
package prometheus

import (
	"time"

	"github.com/hupe1980/lfgbwt"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lfgbwt"

// Operation label values.
const (
	OpBuild   = "build"
	OpLoad    = "load"
	OpSave    = "save"
	OpExtract = "extract"
	OpVerify  = "verify"
)

// Collector implements lfgbwt.MetricsCollector with Prometheus vectors.
// Labels: operation, status (ok, error).
type Collector struct {
	operations *prom.CounterVec
	duration   *prom.HistogramVec
	bytes      *prom.CounterVec
	nodes      *prom.CounterVec
}

var _ lfgbwt.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg. A nil reg
// registers with the default registerer.
func NewCollector(reg prom.Registerer) *Collector {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Collector{
		operations: f.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total index operations by type and status",
		}, []string{"operation", "status"}),
		duration: f.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Index operation latency in seconds",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"operation", "status"}),
		bytes: f.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Bytes read by loads and written by saves",
		}, []string{"operation"}),
		nodes: f.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_total",
			Help:      "Rows built or verified and nodes extracted",
		}, []string{"operation"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *Collector) observe(op string, d time.Duration, err error) {
	s := status(err)
	c.operations.WithLabelValues(op, s).Inc()
	c.duration.WithLabelValues(op, s).Observe(d.Seconds())
}

// RecordBuild implements lfgbwt.MetricsCollector.
func (c *Collector) RecordBuild(nodes int, d time.Duration, err error) {
	c.observe(OpBuild, d, err)
	if err == nil {
		c.nodes.WithLabelValues(OpBuild).Add(float64(nodes))
	}
}

// RecordLoad implements lfgbwt.MetricsCollector.
func (c *Collector) RecordLoad(bytes int64, d time.Duration, err error) {
	c.observe(OpLoad, d, err)
	if err == nil {
		c.bytes.WithLabelValues(OpLoad).Add(float64(bytes))
	}
}

// RecordSave implements lfgbwt.MetricsCollector.
func (c *Collector) RecordSave(bytes int64, d time.Duration, err error) {
	c.observe(OpSave, d, err)
	if err == nil {
		c.bytes.WithLabelValues(OpSave).Add(float64(bytes))
	}
}

// RecordExtract implements lfgbwt.MetricsCollector.
func (c *Collector) RecordExtract(length int, d time.Duration, err error) {
	c.observe(OpExtract, d, err)
	if err == nil {
		c.nodes.WithLabelValues(OpExtract).Add(float64(length))
	}
}

// RecordVerify implements lfgbwt.MetricsCollector.
func (c *Collector) RecordVerify(nodes int, d time.Duration, err error) {
	c.observe(OpVerify, d, err)
	if err == nil {
		c.nodes.WithLabelValues(OpVerify).Add(float64(nodes))
	}
}
