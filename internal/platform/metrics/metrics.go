package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the previz scene service.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  prometheus.Counter
	mutationsTotal prometheus.Counter
	exportsTotal   prometheus.Counter
	activeScenes   prometheus.Gauge
	errorsTotal    prometheus.Counter
}

// New creates and registers Prometheus metrics for the scene service.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "previz_requests_total",
		Help: "Total number of HTTP requests received",
	})
	mutationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "previz_mutations_total",
		Help: "Total number of successful scene mutations (add, update, remove, duplicate, template, clear, import)",
	})
	exportsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "previz_exports_total",
		Help: "Total number of scene documents exported",
	})
	activeScenes := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "previz_scenes_active",
		Help: "Number of scenes currently hosted",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "previz_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})

	registry.MustRegister(
		requestsTotal,
		mutationsTotal,
		exportsTotal,
		activeScenes,
		errorsTotal,
	)

	return &Metrics{
		registry:       registry,
		requestsTotal:  requestsTotal,
		mutationsTotal: mutationsTotal,
		exportsTotal:   exportsTotal,
		activeScenes:   activeScenes,
		errorsTotal:    errorsTotal,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncMutations increments the scene mutation counter.
func (m *Metrics) IncMutations() {
	m.mutationsTotal.Inc()
}

// IncExports increments the export counter.
func (m *Metrics) IncExports() {
	m.exportsTotal.Inc()
}

// SetActiveScenes sets the hosted scenes gauge.
func (m *Metrics) SetActiveScenes(n int) {
	m.activeScenes.Set(float64(n))
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g.
// active scenes).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
