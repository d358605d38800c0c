package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests by trigger (manual/auto)
	TrackerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_requests_total",
			Help: "Total number of freshest-data requests",
		},
		[]string{"trigger"},
	)

	// Freshness policy outcomes
	TrackerDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_decisions_total",
			Help: "Total number of freshness policy decisions",
		},
		[]string{"decision"},
	)

	// Requests that joined an in-flight fetch for the same player
	SharedFetches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_shared_fetches_total",
			Help: "Total number of requests served by another request's in-flight fetch",
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_cache_hits_total",
			Help: "Total number of snapshot cache hits",
		},
		[]string{"level"},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_cache_misses_total",
			Help: "Total number of snapshot cache misses",
		},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of cache errors",
		},
		[]string{"level", "kind"},
	)

	UpstreamFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_fetches_total",
			Help: "Total number of upstream profile fetches",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Duration of upstream calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SnapshotsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshots_persisted_total",
			Help: "Total number of persisted snapshot records",
		},
	)

	PersistErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshot_persist_errors_total",
			Help: "Total number of failed snapshot writes",
		},
	)

	PlayersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "players_registered_total",
			Help: "Total number of newly registered players",
		},
	)

	// L1 capacity metrics only (if L1 is in-memory)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries held by the cache level",
		},
		[]string{"level"},
	)
)

// RecordRequest records a freshest-data request
func RecordRequest(manual bool) {
	trigger := "auto"
	if manual {
		trigger = "manual"
	}
	TrackerRequests.WithLabelValues(trigger).Inc()
}

// RecordDecision records a policy decision
func RecordDecision(decision string) {
	TrackerDecisions.WithLabelValues(decision).Inc()
}

// RecordSharedFetch records a request that reused an in-flight fetch
func RecordSharedFetch() {
	SharedFetches.Inc()
}

// RecordCacheHit records a snapshot cache hit at the given level
func RecordCacheHit(level string) {
	CacheHits.WithLabelValues(level).Inc()
}

// RecordCacheMiss records a snapshot cache miss
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordCacheError records a cache error with level and kind
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// RecordUpstreamFetch records an upstream call outcome
func RecordUpstreamFetch(endpoint string, category ErrorCategory) {
	UpstreamFetches.WithLabelValues(endpoint, string(category)).Inc()
}

// TimeUpstreamCall returns a timer function for measuring upstream call duration
func TimeUpstreamCall(endpoint string) func() {
	timer := prometheus.NewTimer(UpstreamDuration.WithLabelValues(endpoint))
	return func() {
		timer.ObserveDuration()
	}
}

// RecordSnapshotPersisted records a committed snapshot
func RecordSnapshotPersisted() {
	SnapshotsPersisted.Inc()
}

// RecordPersistError records a failed snapshot write
func RecordPersistError() {
	PersistErrors.Inc()
}

// RecordPlayerRegistered records a newly created player
func RecordPlayerRegistered() {
	PlayersRegistered.Inc()
}

// UpdateCacheCapacity updates capacity metrics of an in-process cache level
func UpdateCacheCapacity(level string, capacity int64, entries int64) {
	CacheCapacity.WithLabelValues(level).Set(float64(capacity))
	CacheEntries.WithLabelValues(level).Set(float64(entries))
}
