package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/examprep/internal/store"
)

// LoggingProvider writes one store event per call, prompt and reply
// included, and mirrors it to slog.
type LoggingProvider struct {
	inner  Provider
	family string
	events store.EventRepo
}

// WithLogging wraps p. family names the vendor ("anthropic", "openai", ...).
// A nil repo logs to slog only.
func WithLogging(p Provider, family string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, family: family, events: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(PurposeFrom(ctx), time.Since(began), req, resp, err)

	log := slog.With("provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose, "latency_ms", ev.LatencyMs)
	if err != nil {
		log.Warn("LLM request failed", "error", err)
	} else {
		log.Debug("LLM request", "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
	}

	if l.events != nil {
		if werr := l.events.AppendLLMRequest(ctx, ev); werr != nil {
			slog.Warn("record LLM event", "error", werr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) event(purpose string, took time.Duration, req Request, resp *Response, err error) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.family,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	return ev
}

// transcript renders req as "[role]\ncontent" blocks followed by the
// schema, for reading with "examprep llm view".
func transcript(req Request) string {
	var b strings.Builder
	block := func(tag, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", tag, body)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			block("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
