package examgen

import "context"

// Generator produces practice questions.
type Generator interface {
	// Generate produces a single question for the given subject and level.
	// A returned question has already passed every configured validator.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}

// Evaluator scores a learner's answer against the reference answer.
type Evaluator interface {
	Evaluate(ctx context.Context, input EvaluateInput) (*Evaluation, error)
}

// Service bundles both collaborators. The LLM-backed and HTTP-backed
// implementations each satisfy it.
type Service interface {
	Generator
	Evaluator
}
