package examgen

import "fmt"

// Validator checks a generated question before it reaches the session.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural" or "choices".
	Name() string

	// Validate returns nil if the question passes.
	// It may normalize fields (for example dropping stray options).
	Validate(q *Question, input GenerateInput) *ValidationError
}

// EvaluationValidator checks an evaluation before it reaches the session.
type EvaluationValidator interface {
	Name() string
	ValidateEvaluation(ev *Evaluation) *ValidationError
}

// ValidationError describes why a collaborator response was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// RunQuestionValidators applies vs in order and stops at the first failure.
func RunQuestionValidators(vs []Validator, q *Question, input GenerateInput) error {
	for _, v := range vs {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}

// RunEvaluationValidators applies vs in order and stops at the first failure.
func RunEvaluationValidators(vs []EvaluationValidator, ev *Evaluation) error {
	for _, v := range vs {
		if verr := v.ValidateEvaluation(ev); verr != nil {
			return verr
		}
	}
	return nil
}
