package session

import (
	"slices"
	"strings"

	"github.com/abhisek/examprep/internal/examgen"
)

// IsSubmittable reports whether candidate may be sent for evaluation.
// It never modifies its inputs.
func IsSubmittable(q *examgen.Question, candidate string) bool {
	return CheckSubmittable(q, candidate) == nil
}

// CheckSubmittable is IsSubmittable with the rejection reason.
//
// Multiple choice: candidate must equal one of the options exactly, case
// included. Short answer: candidate must contain a non-space character.
func CheckSubmittable(q *examgen.Question, candidate string) *ErrInvalidAnswer {
	if q == nil {
		return &ErrInvalidAnswer{Reason: ReasonNoQuestion}
	}
	if q.Kind == examgen.KindMultipleChoice {
		if candidate == "" {
			return &ErrInvalidAnswer{Reason: ReasonNoSelection}
		}
		if !slices.Contains(q.Options, candidate) {
			return &ErrInvalidAnswer{Reason: ReasonUnknownOption}
		}
		return nil
	}
	if strings.TrimSpace(candidate) == "" {
		return &ErrInvalidAnswer{Reason: ReasonEmptyAnswer}
	}
	return nil
}
