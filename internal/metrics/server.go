package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server collects webhook and HTTP metrics for the race server.
type Server struct {
	registry *prometheus.Registry

	gpsPoints    *prometheus.CounterVec
	gpsRejected  *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewServer creates server metrics on a dedicated registry.
func NewServer(opts ...Option) *Server {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	auto := promauto.With(s.registry)

	return &Server{
		registry: s.registry,
		gpsPoints: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: "gps",
			Name:      "points_total",
			Help:      "Accepted GPS points by destination kind",
		}, []string{"kind"}),
		gpsRejected: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: "gps",
			Name:      "rejected_total",
			Help:      "Rejected GPS webhook requests by reason",
		}, []string{"reason"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method and status code",
		}, []string{"method", "code"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: s.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   s.buckets,
		}, []string{"method"}),
	}
}

// RecordGPSPoint counts an accepted point.
func (m *Server) RecordGPSPoint(kind string) {
	if m == nil {
		return
	}
	m.gpsPoints.WithLabelValues(kind).Inc()
}

// RecordGPSRejected counts a rejected webhook request.
func (m *Server) RecordGPSRejected(reason string) {
	if m == nil {
		return
	}
	m.gpsRejected.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records a served request.
func (m *Server) RecordHTTPRequest(method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Registry exposes the underlying registry (used by tests).
func (m *Server) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the server metrics.
func (m *Server) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
