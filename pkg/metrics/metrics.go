package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	RequestTransitionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_transition_count",
			Help: "Total number of negotiation request transitions",
		},
		[]string{"transition"}, // transition: created, edited, accepted, deleted, reconciled
	)

	StaleRequestCleanupCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_request_cleanup_count",
			Help: "Total number of stale requests removed during view reconciliation",
		},
	)
)

// RecordHTTPRequestDuration records the latency of one handled HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records the latency of one database query.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementRequestTransition counts a negotiation state transition.
func IncrementRequestTransition(transition string) {
	RequestTransitionCount.WithLabelValues(transition).Inc()
}
