package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	WorkbookLoads   *prometheus.CounterVec
	ExportsTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers the application collectors on a private
// registry, keeping the default Go collectors alongside.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "riskdesk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		WorkbookLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskdesk",
			Name:      "workbook_loads_total",
			Help:      "Workbook parses by dataset (cache misses only).",
		}, []string{"dataset"}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "riskdesk",
			Name:      "exports_total",
			Help:      "Generated export files by view and format.",
		}, []string{"view", "format"}),
	}
	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.WorkbookLoads,
		m.ExportsTotal,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
