package lfgbwt

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	boom := errors.New("boom")

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordBuild(5, 2*time.Millisecond, nil)
			m.RecordExtract(3, time.Millisecond, nil)
		}()
	}
	wg.Wait()

	m.RecordBuild(5, time.Millisecond, boom)
	m.RecordLoad(100, time.Millisecond, nil)
	m.RecordLoad(0, time.Millisecond, boom)
	m.RecordSave(200, time.Millisecond, nil)
	m.RecordVerify(5, time.Millisecond, boom)

	s := m.GetStats()
	assert.Equal(t, int64(11), s.BuildCount)
	assert.Equal(t, int64(1), s.BuildErrors)
	assert.Equal(t, int64(50), s.BuildNodes)
	assert.Positive(t, s.BuildAvgNanos)
	assert.Equal(t, int64(10), s.ExtractCount)
	assert.Equal(t, int64(30), s.ExtractNodes)
	assert.Equal(t, time.Millisecond.Nanoseconds(), s.ExtractAvgNanos)
	assert.Equal(t, int64(2), s.LoadCount)
	assert.Equal(t, int64(1), s.LoadErrors)
	assert.Equal(t, int64(100), s.LoadBytes)
	assert.Equal(t, int64(200), s.SaveBytes)
	assert.Equal(t, int64(1), s.VerifyErrors)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	assert.NotPanics(t, func() {
		m.RecordBuild(1, time.Second, nil)
		m.RecordLoad(1, time.Second, nil)
		m.RecordSave(1, time.Second, nil)
		m.RecordExtract(1, time.Second, nil)
		m.RecordVerify(1, time.Second, nil)
	})
}
