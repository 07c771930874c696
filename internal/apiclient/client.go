// Package apiclient talks to a remote question/evaluation service over
// HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/examprep/internal/examgen"
)

const maxResponseBytes = 1 << 20

// StatusError is returned for a non-200 response.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// Client implements examgen.Service against the HTTP contract served by
// the server package.
type Client struct {
	baseURL    string
	client     *http.Client
	validators []examgen.Validator
	evalChecks []examgen.EvaluationValidator
}

var _ examgen.Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithValidators replaces the response validators.
func WithValidators(q []examgen.Validator, ev []examgen.EvaluationValidator) Option {
	return func(c *Client) {
		c.validators = q
		c.evalChecks = ev
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	cfg := examgen.DefaultConfig()
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 60 * time.Second},
		validators: cfg.Validators,
		evalChecks: cfg.EvaluationValidators,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate requests one question.
func (c *Client) Generate(ctx context.Context, input examgen.GenerateInput) (*examgen.Question, error) {
	var p examgen.QuestionPayload
	body := examgen.GenerateRequest{Subject: input.Subject, Difficulty: input.Difficulty}
	if err := c.post(ctx, "/generate-question", body, &p); err != nil {
		return nil, err
	}
	q := p.ToQuestion()
	if err := examgen.RunQuestionValidators(c.validators, q, input); err != nil {
		return nil, err
	}
	return q, nil
}

// Evaluate requests an evaluation of one answer.
func (c *Client) Evaluate(ctx context.Context, input examgen.EvaluateInput) (*examgen.Evaluation, error) {
	var p examgen.EvaluationPayload
	body := examgen.EvaluateRequest{
		Question:      input.Question,
		CorrectAnswer: input.CorrectAnswer,
		StudentAnswer: input.StudentAnswer,
	}
	if err := c.post(ctx, "/evaluate-answer", body, &p); err != nil {
		return nil, err
	}
	ev := p.ToEvaluation()
	if err := examgen.RunEvaluationValidators(c.evalChecks, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Health checks that the service is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("decode response: %w", examgen.ErrNotObject)
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var body struct {
		Detail any `json:"detail"`
	}
	detail := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Detail != nil {
		if s, ok := body.Detail.(string); ok {
			detail = s
		} else if b, err := json.Marshal(body.Detail); err == nil {
			detail = string(b)
		}
	}
	return &StatusError{StatusCode: resp.StatusCode, Detail: detail}
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}
