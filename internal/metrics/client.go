// Package metrics provides Prometheus collectors for the start-control
// client and the race server. Each process owns its own registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/startline/internal/models"
)

// Client collects sync engine and clock estimator metrics.
type Client struct {
	registry *prometheus.Registry

	syncEntries          *prometheus.CounterVec
	syncDuration         prometheus.Histogram
	outboxEntries        *prometheus.GaugeVec
	clockOffset          prometheus.Gauge
	offsetProbeFailures  prometheus.Counter
	offsetEstimateErrors prometheus.Counter
}

// NewClient creates client metrics on a dedicated registry.
func NewClient(opts ...Option) *Client {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	auto := promauto.With(s.registry)

	return &Client{
		registry: s.registry,
		syncEntries: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: "sync",
			Name:      "entries_total",
			Help:      "Outbox entries processed by the sync engine, by result",
		}, []string{"result"}),
		syncDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: s.namespace,
			Subsystem: "sync",
			Name:      "entry_duration_seconds",
			Help:      "Time spent syncing one outbox entry",
			Buckets:   s.buckets,
		}),
		outboxEntries: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: s.namespace,
			Subsystem: "outbox",
			Name:      "entries",
			Help:      "Outbox entries by status",
		}, []string{"status"}),
		clockOffset: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: s.namespace,
			Subsystem: "clock",
			Name:      "offset_ms",
			Help:      "Estimated local-minus-server clock offset in milliseconds",
		}),
		offsetProbeFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: "clock",
			Name:      "probe_failures_total",
			Help:      "Failed round trips while estimating clock offset",
		}),
		offsetEstimateErrors: auto.NewCounter(prometheus.CounterOpts{
			Namespace: s.namespace,
			Subsystem: "clock",
			Name:      "estimate_failures_total",
			Help:      "Estimation runs where no probe succeeded",
		}),
	}
}

// RecordSyncEntry records the outcome of one entry sync attempt.
func (m *Client) RecordSyncEntry(success bool, duration time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if !success {
		result = "failure"
	}
	m.syncEntries.WithLabelValues(result).Inc()
	m.syncDuration.Observe(duration.Seconds())
}

// RecordOutbox sets the outbox gauges from a snapshot.
func (m *Client) RecordOutbox(entries []*models.PendingStartEvent) {
	if m == nil {
		return
	}
	counts := map[models.StartStatus]int{
		models.StatusPending: 0,
		models.StatusSyncing: 0,
		models.StatusSynced:  0,
		models.StatusError:   0,
	}
	for _, e := range entries {
		counts[e.Status]++
	}
	for status, n := range counts {
		m.outboxEntries.WithLabelValues(string(status)).Set(float64(n))
	}
}

// RecordOffset records a new clock offset estimate.
func (m *Client) RecordOffset(offset time.Duration) {
	if m == nil {
		return
	}
	m.clockOffset.Set(float64(offset.Milliseconds()))
}

// RecordProbeFailure counts a failed offset probe.
func (m *Client) RecordProbeFailure() {
	if m == nil {
		return
	}
	m.offsetProbeFailures.Inc()
}

// RecordEstimateFailure counts an estimation run without usable samples.
func (m *Client) RecordEstimateFailure() {
	if m == nil {
		return
	}
	m.offsetEstimateErrors.Inc()
}

// Registry exposes the underlying registry (used by tests).
func (m *Client) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the client metrics.
func (m *Client) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
