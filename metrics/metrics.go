package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadguard_http_requests_total",
		Help: "HTTP requests by method, route and status code",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roadguard_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// EventsPublished counts realtime events handed to the hub. scope is "all" or "room".
	EventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadguard_realtime_events_published_total",
		Help: "Realtime events published by event and scope",
	}, []string{"event", "scope"})

	// EventsDropped counts per-client deliveries skipped because the client queue was full.
	EventsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadguard_realtime_events_dropped_total",
		Help: "Realtime deliveries dropped for slow clients",
	}, []string{"event"})

	RealtimeConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roadguard_realtime_connections",
		Help: "Currently connected realtime clients",
	})

	NotificationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadguard_notification_failures_total",
		Help: "Swallowed notification delivery failures by channel and event",
	}, []string{"channel", "event"})

	ServiceRequestTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roadguard_service_request_transitions_total",
		Help: "Committed service request status changes by target status",
	}, []string{"status"})
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequests,
			HTTPDuration,
			EventsPublished,
			EventsDropped,
			RealtimeConnections,
			NotificationFailures,
			ServiceRequestTransitions,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
