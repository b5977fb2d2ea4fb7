// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	PanicsRecovered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Handler panics turned into 500 responses",
		},
	)

	// Routing
	RoutingStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routing_status_transitions_total",
			Help: "Routing leg status changes by target status",
		},
		[]string{"status"},
	)

	TrackersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trackers_created_total",
			Help: "Total number of trackers created",
		},
	)

	// Notifications
	PushDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_deliveries_total",
			Help: "Web push delivery attempts by result (sent, gone, failed)",
		},
		[]string{"result"},
	)

	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connections",
			Help: "Currently open websocket connections",
		},
	)

	WSDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_messages_dropped_total",
			Help: "Websocket messages dropped because a client buffer was full",
		},
	)
)

// RecordHTTPRequest records one served request. route is the matched mux
// pattern, not the raw path, to bound label cardinality.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStatusTransition counts a leg moving to status.
func RecordStatusTransition(status string) {
	RoutingStatusTransitions.WithLabelValues(status).Inc()
}

// RecordPushDelivery counts a push attempt outcome.
func RecordPushDelivery(result string) {
	PushDeliveries.WithLabelValues(result).Inc()
}
