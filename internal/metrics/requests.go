package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestMetrics instruments an HTTP server (the mock AMS service) with
// request counters and latency histograms.
type RequestMetrics struct {
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec
	registry   *prometheus.Registry
}

// NewRequestMetrics creates a RequestMetrics with a private registry.
func NewRequestMetrics() *RequestMetrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	registry.MustRegister(reqTotal, reqLatency)

	return &RequestMetrics{
		reqTotal:   reqTotal,
		reqLatency: reqLatency,
		registry:   registry,
	}
}

// Middleware returns a chi middleware that records every request, labelled
// by the route pattern when chi resolved one.
func (m *RequestMetrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rw, r)

			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil && len(chiCtx.RoutePatterns) > 0 {
				path = chiCtx.RoutePatterns[len(chiCtx.RoutePatterns)-1]
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler serves the registry.
func (m *RequestMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	return sr.ResponseWriter.Write(b)
}
