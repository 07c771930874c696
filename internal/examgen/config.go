package examgen

// Config controls the behavior of the LLM-backed collaborators.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure stops the pipeline.
	Validators []Validator

	// EvaluationValidators run in order on every evaluation.
	EvaluationValidators []EvaluationValidator

	// MaxTokens is the token budget for question generation.
	MaxTokens int

	// EvalMaxTokens is the token budget for answer evaluation.
	EvalMaxTokens int

	// Temperature controls question variety (0.0-1.0).
	Temperature float64

	// EvalTemperature is kept low so scoring stays consistent.
	EvalTemperature float64
}

// DefaultConfig returns a Config with the standard validator chains.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{},
		},
		EvaluationValidators: []EvaluationValidator{
			&ScoreValidator{},
		},
		MaxTokens:       800,
		EvalMaxTokens:   600,
		Temperature:     0.7,
		EvalTemperature: 0.2,
	}
}
