package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/examprep/internal/store"
)

func TestWriteEventTable(t *testing.T) {
	var buf bytes.Buffer
	writeEventTable(&buf, nil)
	assert.Contains(t, buf.String(), "No LLM calls recorded.")

	buf.Reset()
	writeEventTable(&buf, []store.LLMEvent{{
		ID:        7,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Purpose: "evaluation", Model: "gpt-4o-mini", InputTokens: 10, OutputTokens: 4, Success: false,
		},
	}})
	out := buf.String()
	for _, want := range []string{"PURPOSE", "evaluation", "gpt-4o-mini", "no"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteEventShowsBodies(t *testing.T) {
	var buf bytes.Buffer
	writeEvent(&buf, &store.LLMEvent{
		ID: 3,
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "openai", LatencyMs: 1500, ErrorMessage: "rate limited", RequestBody: "[user]\nhi",
		},
	})
	out := buf.String()
	assert.Contains(t, out, "Latency:")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "== Request ==\n[user]\nhi")
	assert.Contains(t, out, "== Response ==\n(not captured)")
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	writeUsage(&buf, nil, nil)
	assert.Contains(t, buf.String(), "No LLM usage recorded yet.")

	buf.Reset()
	writeUsage(&buf,
		[]store.PurposeUsage{{Purpose: "question-gen", Calls: 2, InputTokens: 100, OutputTokens: 50}},
		[]store.ModelUsage{{Model: "made-up-model", Calls: 2, InputTokens: 100, OutputTokens: 50}},
	)
	out := buf.String()
	assert.Contains(t, out, "question-gen")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No pricing for: made-up-model")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.0012))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
