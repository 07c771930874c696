package examgen

import (
	"math"
	"strings"
)

const (
	maxPromptLen      = 1000
	maxExplanationLen = 2000
)

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, input GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}
	switch {
	case strings.TrimSpace(q.Prompt) == "":
		return fail("question is empty")
	case len(q.Prompt) > maxPromptLen:
		return fail("question exceeds 1000 characters")
	case strings.TrimSpace(q.CorrectAnswer) == "":
		return fail("correctAnswer is empty")
	case strings.TrimSpace(q.Explanation) == "":
		return fail("explanation is empty")
	case len(q.Explanation) > maxExplanationLen:
		return fail("explanation exceeds 2000 characters")
	case q.Kind != KindMultipleChoice && q.Kind != KindShortAnswer:
		return fail(`type must be "multiple-choice" or "short-answer"`)
	}

	// Collaborators sometimes omit the level; fall back to what was asked for.
	if q.Difficulty == "" {
		q.Difficulty = input.Difficulty
	}
	if !q.Difficulty.Valid() {
		return fail(`difficulty must be "easy", "medium" or "hard"`)
	}
	return nil
}

// ChoiceValidator checks the option list against the question kind.
type ChoiceValidator struct{}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(q *Question, _ GenerateInput) *ValidationError {
	if q.Kind == KindShortAnswer {
		q.Options = nil
		return nil
	}

	if len(q.Options) < 2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "multiple-choice question needs at least 2 options",
		}
	}

	seen := make(map[string]bool, len(q.Options))
	found := false
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return &ValidationError{Validator: v.Name(), Message: "option is empty"}
		}
		if seen[opt] {
			return &ValidationError{Validator: v.Name(), Message: "duplicate option " + quote(opt)}
		}
		seen[opt] = true
		if opt == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "correctAnswer " + quote(q.CorrectAnswer) + " is not one of the options",
		}
	}
	return nil
}

// ScoreValidator checks an evaluation's score range and feedback.
type ScoreValidator struct{}

func (v *ScoreValidator) Name() string { return "score" }

func (v *ScoreValidator) ValidateEvaluation(ev *Evaluation) *ValidationError {
	if math.IsNaN(ev.Score) || math.IsInf(ev.Score, 0) || ev.Score < 0 || ev.Score > 100 {
		return &ValidationError{Validator: v.Name(), Message: "score must be between 0 and 100"}
	}
	if strings.TrimSpace(ev.Feedback) == "" {
		return &ValidationError{Validator: v.Name(), Message: "feedback is empty"}
	}
	return nil
}

func quote(s string) string { return `"` + s + `"` }
