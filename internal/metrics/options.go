package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option applies a configuration option to a metrics collector.
type Option func(*settings)

type settings struct {
	registry  *prometheus.Registry
	namespace string
	buckets   []float64
}

func defaultSettings() *settings {
	return &settings{
		registry:  prometheus.NewRegistry(),
		namespace: "startline",
		buckets:   prometheus.DefBuckets,
	}
}

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(s *settings) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithRegistry registers metrics on the given registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithHistogramBuckets sets custom histogram buckets for latency metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(s *settings) {
		if len(buckets) > 0 {
			s.buckets = buckets
		}
	}
}
