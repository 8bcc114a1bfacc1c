// Package metrics exposes the prometheus collectors of the desk service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds a private registry and the collectors recorded by services and adapters.
// Every method is safe on a nil receiver so components can run without metrics.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	settlements     *prometheus.CounterVec
	transferLines   *prometheus.CounterVec
	convergence     prometheus.Histogram
	rateLookups     *prometheus.CounterVec
	events          *prometheus.CounterVec
}

// New initializes the registry and every collector.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forexdesk_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "forexdesk_http_request_duration_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forexdesk_settlements_total",
			Help: "Operation settlements by outcome.",
		}, []string{"outcome"}),
		transferLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forexdesk_transfer_line_transitions_total",
			Help: "Transfer line transitions by kind.",
		}, []string{"transition"}),
		convergence: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "forexdesk_conversion_iterations",
			Help:    "Iterations needed by the denomination convergence loop.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 50},
		}),
		rateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forexdesk_rate_lookups_total",
			Help: "Official rate lookups by source and result.",
		}, []string{"source", "result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forexdesk_events_total",
			Help: "Emitted user events by kind and severity.",
		}, []string{"kind", "severity"}),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration, m.settlements, m.transferLines,
		m.convergence, m.rateLookups, m.events)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registerer exposes the registry for additional collectors.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) SettlementRecorded(outcome string) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TransferTransition(transition string) {
	if m == nil {
		return
	}
	m.transferLines.WithLabelValues(transition).Inc()
}

func (m *Metrics) ConvergenceIterations(n int) {
	if m == nil {
		return
	}
	m.convergence.Observe(float64(n))
}

func (m *Metrics) RateLookup(source, result string) {
	if m == nil {
		return
	}
	m.rateLookups.WithLabelValues(source, result).Inc()
}

func (m *Metrics) EventEmitted(kind, severity string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind, severity).Inc()
}
