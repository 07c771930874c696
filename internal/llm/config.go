package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects a provider and carries the settings for every provider,
// so switching is a matter of changing Provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one call to the provider chain, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves OpenAI-compatible servers through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig models are "vendor/model" IDs.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2,
		},
		Timeout: time.Minute,
	}
}

// keyedProvider describes a provider that needs an API key. The order of
// keyedProviders is the order DiscoverConfig checks the environment in.
type keyedProvider struct {
	name   string
	envVar string
	key    func(*Config) *string
}

var keyedProviders = []keyedProvider{
	{ProviderGemini, "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{ProviderOpenAI, "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{ProviderAnthropic, "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{ProviderOpenRouter, "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

// ConfigFromViper reads the "llm.*" keys of v over DefaultConfig. Under the
// EXAMPREP env prefix llm.openai.api-key is EXAMPREP_LLM_OPENAI_API_KEY.
// Without llm.provider the provider is discovered from the vendors' own
// key variables.
func ConfigFromViper(v *viper.Viper) Config {
	cfg := DefaultConfig()
	if p := v.GetString("llm.provider"); p != "" {
		cfg.Provider = p
	} else if found, ok := DiscoverConfig(); ok {
		cfg = found
	}

	fields := map[string]*string{
		"llm.anthropic.api-key":   &cfg.Anthropic.APIKey,
		"llm.anthropic.model":     &cfg.Anthropic.Model,
		"llm.openai.api-key":      &cfg.OpenAI.APIKey,
		"llm.openai.model":        &cfg.OpenAI.Model,
		"llm.openai.base-url":     &cfg.OpenAI.BaseURL,
		"llm.gemini.api-key":      &cfg.Gemini.APIKey,
		"llm.gemini.model":        &cfg.Gemini.Model,
		"llm.openrouter.api-key":  &cfg.OpenRouter.APIKey,
		"llm.openrouter.model":    &cfg.OpenRouter.Model,
		"llm.openrouter.base-url": &cfg.OpenRouter.BaseURL,
	}
	for key, dst := range fields {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	if d := v.GetDuration("llm.timeout"); d > 0 {
		cfg.Timeout = d
	}
	if n := v.GetInt("llm.retry.max-attempts"); n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	return cfg
}

// DiscoverConfig returns defaults for the first provider whose standard
// key variable is set, checking Gemini, OpenAI, Anthropic, then OpenRouter.
func DiscoverConfig() (Config, bool) {
	for _, kp := range keyedProviders {
		if k := os.Getenv(kp.envVar); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = kp.name
			*kp.key(&cfg) = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate reports an unknown provider or a missing API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	for _, kp := range keyedProviders {
		if kp.name != c.Provider {
			continue
		}
		if *kp.key(&c) == "" {
			return fmt.Errorf("EXAMPREP_LLM_%s_API_KEY is required for the %s provider",
				strings.ToUpper(kp.name), kp.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}

// MissingKey reports whether Provider needs an API key that is not set.
// Unknown providers report false so Validate can reject them.
func (c Config) MissingKey() bool {
	for _, kp := range keyedProviders {
		if kp.name == c.Provider {
			return *kp.key(&c) == ""
		}
	}
	return false
}
