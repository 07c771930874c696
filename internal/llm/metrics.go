package llm

import (
	"context"
	"time"

	"github.com/abhisek/examprep/internal/metrics"
)

// MetricsProvider is a decorator that reports request counts, latency and
// token usage to Prometheus.
type MetricsProvider struct {
	inner   Provider
	metrics *metrics.Metrics
}

// WithMetrics wraps a Provider with Prometheus instrumentation.
func WithMetrics(p Provider, m *metrics.Metrics) Provider {
	return &MetricsProvider{inner: p, metrics: m}
}

func (p *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := p.inner.Generate(ctx, req)

	var in, out int
	if resp != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
	}
	p.metrics.ObserveLLM(PurposeFrom(ctx), err == nil, time.Since(start), in, out)
	return resp, err
}

func (p *MetricsProvider) ModelID() string {
	return p.inner.ModelID()
}
