// Package metrics holds the Prometheus collectors shared by the HTTP
// service and the LLM provider chain.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a set of collectors registered on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LLMRequests     *prometheus.CounterVec
	LLMLatency      *prometheus.HistogramVec
	LLMTokens       *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "endpoint"},
		),
		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "examprep_llm_requests_total",
				Help: "LLM requests by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		LLMLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "examprep_llm_request_duration_seconds",
				Help:    "LLM request latency by purpose",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"purpose"},
		),
		LLMTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "examprep_llm_tokens_total",
				Help: "LLM tokens consumed by purpose and direction",
			},
			[]string{"purpose", "direction"},
		),
	}
	m.Registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.LLMRequests,
		m.LLMLatency,
		m.LLMTokens,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, elapsed time.Duration) {
	m.RequestCounter.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveLLM records one LLM request.
func (m *Metrics) ObserveLLM(purpose string, ok bool, elapsed time.Duration, inTok, outTok int) {
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	m.LLMRequests.WithLabelValues(purpose, outcome).Inc()
	m.LLMLatency.WithLabelValues(purpose).Observe(elapsed.Seconds())
	if inTok > 0 {
		m.LLMTokens.WithLabelValues(purpose, "input").Add(float64(inTok))
	}
	if outTok > 0 {
		m.LLMTokens.WithLabelValues(purpose, "output").Add(float64(outTok))
	}
}
