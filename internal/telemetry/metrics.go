package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RetryWaits tracks backoff waits performed before retry attempts
	RetryWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steady_retry_waits_total",
			Help: "Total number of backoff waits before a retry attempt",
		},
	)

	// RetryOutcomes tracks how retry loops ended
	RetryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steady_retry_outcomes_total",
			Help: "Terminal outcomes of retry loops",
		},
		[]string{"outcome"}, // recovered, permanent, exhausted, canceled
	)

	// TimeoutsTotal tracks operations that lost the race against their deadline
	TimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steady_timeouts_total",
			Help: "Total number of operations cut off by the timeout racer",
		},
	)

	// CacheHits tracks cache lookups that found an entry
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steady_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// CacheMisses tracks cache lookups that found nothing
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steady_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// CacheEvictions tracks entries dropped under capacity pressure
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steady_cache_evictions_total",
			Help: "Total number of cache entries evicted",
		},
	)

	// ShaperSuppressed tracks calls swallowed by debounce/throttle windows
	ShaperSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steady_shaper_suppressed_total",
			Help: "Total number of calls suppressed by a rate shaper",
		},
		[]string{"kind"}, // debounce, throttle
	)

	// VisibleItems tracks the size of the last computed render window
	VisibleItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "steady_visible_items",
			Help: "Number of items in the most recent visible range",
		},
	)

	// SimFetches tracks simulated fetch outcomes per workload
	SimFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steady_sim_fetches_total",
			Help: "Total number of simulated fetches",
		},
		[]string{"outcome"}, // ok, cached, failed
	)
)
