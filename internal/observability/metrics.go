package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedActions counts feed mutations by kind and whether they changed anything.
	FeedActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fachnmchi_feed_actions_total",
		Help: "Feed actions by kind and outcome",
	}, []string{"action", "outcome"})

	// FeedViews counts ranked feed reads by order and cache result.
	FeedViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fachnmchi_feed_views_total",
		Help: "Ranked feed reads by order and cache result",
	}, []string{"order", "cache"})

	// RoutePlans counts route plan requests by result.
	RoutePlans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fachnmchi_route_plans_total",
		Help: "Route plan requests by result",
	}, []string{"result"})

	// ShareOutcomes counts shares by delivery outcome.
	ShareOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fachnmchi_share_outcomes_total",
		Help: "Post shares by delivery outcome",
	}, []string{"outcome"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fachnmchi_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fachnmchi_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnectionsTotal is the gauge of open feed stream connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fachnmchi_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fachnmchi_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordFeedAction counts one feed mutation.
func RecordFeedAction(action string, changed bool) {
	outcome := "noop"
	if changed {
		outcome = "changed"
	}
	FeedActions.WithLabelValues(action, outcome).Inc()
}
