// Package observability provides Prometheus metrics and OpenTelemetry
// tracing for the application.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kalem_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kalem_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LifecycleTransitions counts article lifecycle transitions by action and outcome.
	LifecycleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kalem_article_transitions_total",
		Help: "Total number of article lifecycle transitions by action and outcome",
	}, []string{"action", "outcome"})

	// LikeToggles counts like toggles by direction (liked/unliked).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kalem_like_toggles_total",
		Help: "Total number of like toggles by direction",
	}, []string{"direction"})

	// ListingStaleDrops counts listing results dropped because a newer
	// filter request superseded them.
	ListingStaleDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kalem_listing_stale_drops_total",
		Help: "Total number of listing results dropped as stale",
	})
)

// NewHTTPMetrics returns the Fiber Prometheus middleware used to expose
// per-route HTTP metrics under /metrics.
func NewHTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordTransition increments the lifecycle transition counter.
func RecordTransition(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	LifecycleTransitions.WithLabelValues(action, outcome).Inc()
}
