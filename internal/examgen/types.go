package examgen

import (
	"fmt"
	"strings"
)

// Question is a single practice question as returned by the generation
// collaborator. Treat it as read-only once received.
type Question struct {
	// Prompt is the question text shown to the learner.
	Prompt string

	// Kind indicates how the learner answers this question.
	Kind Kind

	// Options is populated only when Kind is KindMultipleChoice.
	// One of the options equals CorrectAnswer.
	Options []string

	// CorrectAnswer is the reference answer. For multiple choice it is the
	// text of the correct option.
	CorrectAnswer string

	// Explanation is a short worked solution shown after evaluation.
	Explanation string

	// Difficulty is the level the question was generated for.
	Difficulty Difficulty
}

// IsMultipleChoice reports whether the learner picks from Options.
func (q *Question) IsMultipleChoice() bool {
	return q != nil && q.Kind == KindMultipleChoice
}

// Kind describes how the learner provides their answer.
type Kind string

const (
	// KindMultipleChoice means the learner picks one of the options.
	KindMultipleChoice Kind = "multiple-choice"

	// KindShortAnswer means the learner types a free-text answer.
	KindShortAnswer Kind = "short-answer"
)

// Difficulty is the requested or recommended question level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every level in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty accepts a level name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
	return d, nil
}

// Evaluation is the scoring collaborator's judgment of one answer.
type Evaluation struct {
	IsCorrect    bool
	Score        float64 // 0-100
	Feedback     string
	Strengths    []string
	Improvements []string
}

// GenerateInput holds everything needed to request a question.
type GenerateInput struct {
	Subject    string
	Difficulty Difficulty
}

// EvaluateInput holds everything needed to request an evaluation.
type EvaluateInput struct {
	Question      string
	CorrectAnswer string
	StudentAnswer string
}

// DefaultSubjects is the subject list offered in the control panel.
var DefaultSubjects = []string{
	"Mathematics",
	"Physics",
	"Biology",
	"Chemistry",
	"History",
	"Computer Science",
}
