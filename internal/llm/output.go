package llm

import (
	"encoding/json"
	"strings"
)

// finish builds the Response for raw model text. Structured output is
// unfenced, rejected when truncated and validated against the schema.
func finish(req Request, raw string, usage Usage, model, stop string) (*Response, error) {
	content := json.RawMessage(raw)
	if req.Schema != nil {
		content = StripCodeFence(content)
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// StripCodeFence removes a surrounding ``` fence, with or without a
// "json" language tag. Content without a fence is returned unchanged.
func StripCodeFence(raw []byte) []byte {
	s := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(s, "```") {
		return raw
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	return []byte(strings.TrimSpace(s))
}

// resolveModel maps a friendly model name through table; unknown names
// are taken as provider model IDs.
func resolveModel(name string, table map[string]string) string {
	if id, ok := table[name]; ok {
		return id
	}
	return name
}
