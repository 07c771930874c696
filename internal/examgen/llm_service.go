package examgen

import (
	"context"
	"fmt"

	"github.com/abhisek/examprep/internal/llm"
)

// LLMService implements Generator and Evaluator using an LLM provider.
type LLMService struct {
	provider llm.Provider
	config   Config
}

var _ Service = (*LLMService)(nil)

// New creates a new LLMService with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMService {
	return &LLMService{provider: provider, config: cfg}
}

// Generate produces a single question for the given subject and level.
func (s *LLMService) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(input)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	q, err := DecodeQuestion(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if err := RunQuestionValidators(s.config.Validators, q, input); err != nil {
		return nil, err
	}
	return q, nil
}

// Evaluate scores the student's answer.
func (s *LLMService) Evaluate(ctx context.Context, input EvaluateInput) (*Evaluation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeEvaluation)

	req := llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationMessage(input)},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   s.config.EvalMaxTokens,
		Temperature: s.config.EvalTemperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM evaluation failed: %w", err)
	}

	ev, err := DecodeEvaluation(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if err := RunEvaluationValidators(s.config.EvaluationValidators, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
