// Package observability contains tracing and metrics instrumentation.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// TagResolutions counts tag find-or-create outcomes.
	TagResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_tag_resolutions_total",
		Help: "Total tag name resolutions by outcome (created or existing)",
	}, []string{"outcome"})

	// FeedConnections is the gauge of active feed WebSocket connections.
	FeedConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inkwell_feed_connections",
		Help: "Number of active feed WebSocket connections",
	})

	// FeedEventsTotal counts feed events broadcast by type.
	FeedEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_feed_events_total",
		Help: "Total feed events broadcast by event type",
	}, []string{"event_type"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
