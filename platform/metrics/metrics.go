// Package metrics provides Prometheus instrumentation for the application.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "revleak"

// Metrics bundles the application's Prometheus collectors behind a private
// registry so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	reportsComputed *prometheus.CounterVec
	computeDuration prometheus.Histogram
	streamSessions  prometheus.Gauge
	schemaReloads   prometheus.Counter
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reportsComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_computed_total",
			Help:      "Diagnostic reports computed, by follow-up and response status.",
		}, []string{"follow_up_status", "response_status"}),
		computeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Engine compute latency.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		streamSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_sessions",
			Help:      "Live diagnostic stream sessions currently connected.",
		}),
		schemaReloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_reloads_total",
			Help:      "Successful input schema hot reloads.",
		}),
	}
}

// Handler returns the /metrics exposition handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latency per route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveCompute records one engine computation's latency.
func (m *Metrics) ObserveCompute(d time.Duration) {
	m.computeDuration.Observe(d.Seconds())
}

// RecordReport counts a computed report by its two status labels.
func (m *Metrics) RecordReport(followUpStatus, responseStatus string) {
	m.reportsComputed.WithLabelValues(followUpStatus, responseStatus).Inc()
}

// StreamSessionStarted increments the live session gauge.
func (m *Metrics) StreamSessionStarted() {
	m.streamSessions.Inc()
}

// StreamSessionEnded decrements the live session gauge.
func (m *Metrics) StreamSessionEnded() {
	m.streamSessions.Dec()
}

// SchemaReloaded counts a successful presets hot reload.
func (m *Metrics) SchemaReloaded() {
	m.schemaReloads.Inc()
}
