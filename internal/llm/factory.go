package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/abhisek/examprep/internal/metrics"
	"github.com/abhisek/examprep/internal/store"
)

// Options carries the optional sinks a provider chain reports to.
type Options struct {
	EventRepo store.EventRepo
	Metrics   *metrics.Metrics
}

// NewProvider creates a Provider from configuration.
// The chain is metrics, timeout, retry, logging, base. Each attempt is
// logged; metrics and the timeout apply to the call as a whole. The
// Anthropic SDK's own retries are off so WithRetry is the only retry layer.
func NewProvider(ctx context.Context, cfg Config, opts Options) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic, option.WithMaxRetries(0))
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, cfg.Provider, opts.EventRepo)
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)
	if opts.Metrics != nil {
		p = WithMetrics(p, opts.Metrics)
	}
	return p, nil
}
