package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/abhisek/examprep/internal/metrics"
	"github.com/abhisek/examprep/internal/store"
)

// recordingRepo captures appended events.
type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}
func (r *recordingRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}
func (r *recordingRepo) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) { return nil, nil }
func (r *recordingRepo) LLMUsageByPurpose(context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}
func (r *recordingRepo) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), PurposeQuestionGen)
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "Subject: Physics"}},
		Schema:   &Schema{Name: "s", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Purpose != PurposeQuestionGen || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 3 {
		t.Errorf("unexpected tokens: %d/%d", e.InputTokens, e.OutputTokens)
	}
	if !strings.Contains(e.RequestBody, "[user]\nSubject: Physics") || !strings.Contains(e.RequestBody, "[schema: s]") {
		t.Errorf("unexpected request body:\n%s", e.RequestBody)
	}
	if e.ResponseBody != `{"ok":true}` {
		t.Errorf("unexpected response body %q", e.ResponseBody)
	}
}

func TestLogging_RecordsFailureAndIgnoresRepoError(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}})
	p := WithLogging(mock, "mock", repo)

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected provider error to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Errorf("unexpected events: %+v", repo.events)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMetrics_ObservesOutcome(t *testing.T) {
	m := metrics.New()
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 5, OutputTokens: 7}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithMetrics(mock, m)
	ctx := WithPurpose(context.Background(), PurposeEvaluation)

	_, _ = p.Generate(ctx, Request{})
	_, _ = p.Generate(ctx, Request{})

	if got := testutil.ToFloat64(m.LLMRequests.WithLabelValues("evaluation", "success")); got != 1 {
		t.Errorf("success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LLMRequests.WithLabelValues("evaluation", "error")); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LLMTokens.WithLabelValues("evaluation", "output")); got != 7 {
		t.Errorf("output tokens = %v, want 7", got)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	cfg.Retry.InitialWait = time.Millisecond

	p, err := NewProvider(context.Background(), cfg, Options{Metrics: metrics.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q, want mock", p.ModelID())
	}
}

func TestNewProvider_RejectsMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, Options{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
