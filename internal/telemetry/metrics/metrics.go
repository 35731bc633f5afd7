// Package metrics exposes Prometheus instrumentation for outbound provider
// calls. All collectors register against the registerer handed in, so tests
// can use an isolated registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetrics tracks request outcomes and latency for one data provider.
type ProviderMetrics struct {
	Requests *prometheus.CounterVec
	Latency  prometheus.Histogram
}

// NewProviderMetrics builds and registers collectors for the named provider.
// A nil registerer falls back to the default registry.
func NewProviderMetrics(reg prometheus.Registerer, provider string) *ProviderMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &ProviderMetrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "btcwatch_provider_requests_total",
				Help:        "Outbound provider requests by outcome",
				ConstLabels: prometheus.Labels{"provider": provider},
			},
			[]string{"endpoint", "result"},
		),
		Latency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "btcwatch_provider_request_seconds",
				Help:        "Outbound provider request latency in seconds",
				ConstLabels: prometheus.Labels{"provider": provider},
				Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
		),
	}

	reg.MustRegister(m.Requests, m.Latency)
	return m
}

// RecordRequest records one provider call.
func (m *ProviderMetrics) RecordRequest(endpoint string, err error, duration time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Requests.WithLabelValues(endpoint, result).Inc()
	m.Latency.Observe(duration.Seconds())
}
