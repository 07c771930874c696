// Package llm is the model-provider layer behind the question generator
// and the answer evaluator. Providers return structured JSON; decorators
// add retries, timeouts, request logging and metrics.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt to a model.
type Provider interface {
	// Generate runs req. When req.Schema is set the returned Content is a
	// JSON object that has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, used for logging and pricing.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text.
	Schema *Schema

	// MaxTokens caps the response. Zero means defaultMaxTokens.
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

const defaultMaxTokens = 1024

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema for structured output. Name doubles as the
// OpenAI schema name and the validator cache key, e.g. "exam-question".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons, normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a model's answer.
type Response struct {
	// Content is the validated JSON object for structured requests and the
	// raw model text otherwise.
	Content json.RawMessage

	Usage      Usage
	Model      string
	StopReason string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
