// Package stats collects process-wide dispatch counters. Counters are
// monotonically non-decreasing for the life of the process; the only reset
// is a restart.
package stats

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus mirrors of the dispatch counters. These are process-global even
// when tests construct multiple Collectors; the Collector's own atomics are
// the per-instance source of truth for snapshots.
var (
	totalCallsMetric = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skilld_live_calls_total",
		Help: "Total number of successful live skill invocations.",
	})
	cacheHitsMetric = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skilld_cache_hits_total",
		Help: "Total number of dispatches served from the cache.",
	})
	fallbackMetric = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skilld_fallback_triggers_total",
		Help: "Total number of fallback chain entries attempted.",
	})
	errorsMetric = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "skilld_errors_total",
		Help: "Total number of failed or timed-out skill invocations.",
	})
)

func init() {
	prometheus.MustRegister(totalCallsMetric)
	prometheus.MustRegister(cacheHitsMetric)
	prometheus.MustRegister(fallbackMetric)
	prometheus.MustRegister(errorsMetric)
}

// Snapshot is a point-in-time read of the dispatch counters plus the sizes
// the scheduler reports alongside them.
type Snapshot struct {
	TotalCalls       int64 `json:"total_calls"`
	CacheHits        int64 `json:"cache_hits"`
	FallbackTriggers int64 `json:"fallback_triggers"`
	Errors           int64 `json:"errors"`
	CacheSize        int   `json:"cache_size"`
	RegisteredSkills int   `json:"registered_skills"`
}

// Collector accumulates dispatch counters. All methods are safe for
// concurrent use.
type Collector struct {
	totalCalls       atomic.Int64
	cacheHits        atomic.Int64
	fallbackTriggers atomic.Int64
	errors           atomic.Int64
}

// NewCollector creates a zeroed collector. Callers needing isolation (tests)
// construct their own instead of sharing the composition root's.
func NewCollector() *Collector {
	return &Collector{}
}

// LiveCall records one successful, non-cached skill invocation.
func (c *Collector) LiveCall() {
	c.totalCalls.Add(1)
	totalCallsMetric.Inc()
}

// CacheHit records one dispatch served from the cache.
func (c *Collector) CacheHit() {
	c.cacheHits.Add(1)
	cacheHitsMetric.Inc()
}

// FallbackTrigger records one fallback chain entry being attempted.
func (c *Collector) FallbackTrigger() {
	c.fallbackTriggers.Add(1)
	fallbackMetric.Inc()
}

// Error records one failed or timed-out invocation.
func (c *Collector) Error() {
	c.errors.Add(1)
	errorsMetric.Inc()
}

// Snapshot returns the current counter values. cacheSize and skillCount are
// supplied by the caller, which owns the cache and registry.
func (c *Collector) Snapshot(cacheSize, skillCount int) Snapshot {
	return Snapshot{
		TotalCalls:       c.totalCalls.Load(),
		CacheHits:        c.cacheHits.Load(),
		FallbackTriggers: c.fallbackTriggers.Load(),
		Errors:           c.errors.Load(),
		CacheSize:        cacheSize,
		RegisteredSkills: skillCount,
	}
}
