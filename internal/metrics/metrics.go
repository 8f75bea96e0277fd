package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for CollectionSource traffic.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	mutationTotal *prometheus.CounterVec
	registry      *prometheus.Registry
}

// New creates a Metrics instance backed by a private Prometheus registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	fetchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listview_fetches_total",
			Help: "Total list fetches issued against a CollectionSource",
		},
		[]string{"entity", "mode", "status"},
	)

	fetchLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listview_fetch_duration_seconds",
			Help:    "List fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity", "mode", "status"},
	)

	mutationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listview_mutations_total",
			Help: "Total create/update/delete calls issued",
		},
		[]string{"entity", "op", "status"},
	)

	registry.MustRegister(fetchTotal, fetchLatency, mutationTotal)

	return &Metrics{
		fetchTotal:    fetchTotal,
		fetchLatency:  fetchLatency,
		mutationTotal: mutationTotal,
		registry:      registry,
	}
}

// ObserveFetch records one list fetch. mode is "server" for paged requests
// and "client" for full-collection fetches that get filtered locally.
func (m *Metrics) ObserveFetch(entity, mode, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(entity, mode, status).Inc()
	m.fetchLatency.WithLabelValues(entity, mode, status).Observe(elapsed.Seconds())
}

// ObserveMutation records one create, update or delete call.
func (m *Metrics) ObserveMutation(entity, op, status string) {
	if m == nil {
		return
	}
	m.mutationTotal.WithLabelValues(entity, op, status).Inc()
}

// Handler returns an http.Handler that serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
