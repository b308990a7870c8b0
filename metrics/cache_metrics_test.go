package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheMetrics_HitMissCounting(t *testing.T) {
	m := NewCacheMetrics("memory")

	m.RecordHit()
	m.RecordHit()
	m.RecordMiss()

	stats := m.GetStats()
	assert.Equal(t, "memory", stats.CacheType)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(3), stats.Total)
	assert.InDelta(t, 2.0/3.0, stats.HitRatio, 0.001)
}

func TestCacheMetrics_EmptyStats(t *testing.T) {
	m := NewCacheMetrics("redis")

	stats := m.GetStats()
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, 0.0, stats.HitRatio)
}

func TestCacheMetrics_SharedCollector(t *testing.T) {
	// Instances share one Prometheus collector registration.
	first := NewCacheMetrics("memory")
	second := NewCacheMetrics("redis")

	assert.Same(t, first.collector, second.collector)
}

func TestCacheMetrics_RecordLatency(t *testing.T) {
	m := NewCacheMetrics("memory")

	// Observing must not panic and must not affect hit/miss stats.
	m.RecordLatency("fetch", 0.25)

	stats := m.GetStats()
	assert.Equal(t, int64(0), stats.Total)
}
