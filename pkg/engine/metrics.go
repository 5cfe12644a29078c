package engine

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the satisfaction engine.
type Metrics struct {
	// Check outcomes
	checksTotal *prometheus.CounterVec

	// Verdict cache behavior
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter

	// Check latency
	checkDuration prometheus.Histogram
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// sharedEngineMetrics returns the process-wide engine metrics. Collectors
// register with the default registry exactly once, so multiple engines
// share one set of series.
func sharedEngineMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			checksTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "strata_engine_checks_total",
					Help: "Total number of satisfaction checks performed",
				},
				[]string{"result"},
			),

			cacheHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "strata_engine_cache_hits_total",
					Help: "Total number of verdict cache hits",
				},
			),

			cacheMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "strata_engine_cache_misses_total",
					Help: "Total number of verdict cache misses",
				},
			),

			cacheEvictions: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "strata_engine_cache_evictions_total",
					Help: "Total number of verdict cache evictions",
				},
			),

			checkDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "strata_engine_check_duration_seconds",
					Help:    "Satisfaction check latency",
					Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
				},
			),
		}
	})
	return sharedMetrics
}

// observeCheck records the outcome and latency of one check.
func (m *Metrics) observeCheck(ok bool, seconds float64) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "violation"
	}
	m.checksTotal.WithLabelValues(result).Inc()
	m.checkDuration.Observe(seconds)
}

// observeCache records one cache lookup.
func (m *Metrics) observeCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		return
	}
	m.cacheMisses.Inc()
}
