package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/lfgbwt"
	"github.com/hupe1980/lfgbwt/rlgbwt"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Record(t *testing.T) {
	reg := prom.NewRegistry()
	c := NewCollector(reg)
	boom := errors.New("boom")

	c.RecordBuild(4, time.Millisecond, nil)
	c.RecordBuild(4, time.Millisecond, boom)
	c.RecordSave(100, time.Millisecond, nil)
	c.RecordLoad(100, time.Millisecond, nil)
	c.RecordLoad(7, time.Millisecond, boom)
	c.RecordExtract(3, time.Microsecond, nil)
	c.RecordVerify(4, time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues(OpBuild, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues(OpBuild, "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.nodes.WithLabelValues(OpBuild)))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.bytes.WithLabelValues(OpLoad)))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.bytes.WithLabelValues(OpSave)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.nodes.WithLabelValues(OpExtract)))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.nodes.WithLabelValues(OpVerify)))

	n, err := testutil.GatherAndCount(reg, "lfgbwt_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestCollector_WithIndex(t *testing.T) {
	reg := prom.NewRegistry()
	c := NewCollector(reg)

	src, err := rlgbwt.FromPaths([][]uint64{{1, 2, 3}, {1, 3}})
	require.NoError(t, err)
	idx, err := lfgbwt.Build(context.Background(), src, lfgbwt.WithMetricsCollector(c))
	require.NoError(t, err)
	_, err = idx.Extract(1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues(OpBuild, "ok")))
	assert.Equal(t, float64(idx.Effective()), testutil.ToFloat64(c.nodes.WithLabelValues(OpBuild)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.nodes.WithLabelValues(OpExtract)))
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prom.NewRegistry()
	NewCollector(reg)
	assert.Panics(t, func() { NewCollector(reg) })
}
