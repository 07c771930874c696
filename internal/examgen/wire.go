package examgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/examprep/internal/llm"
)

// GenerateRequest is the JSON body of a question request.
type GenerateRequest struct {
	Subject    string     `json:"subject"`
	Difficulty Difficulty `json:"difficulty"`
}

// QuestionPayload is the JSON form of a Question.
type QuestionPayload struct {
	Question      string     `json:"question"`
	Type          Kind       `json:"type"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
}

// EvaluateRequest is the JSON body of an evaluation request.
type EvaluateRequest struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	StudentAnswer string `json:"studentAnswer"`
}

// EvaluationPayload is the JSON form of an Evaluation.
type EvaluationPayload struct {
	IsCorrect    bool     `json:"isCorrect"`
	Score        float64  `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// ErrNotObject is returned when a payload decodes to something other than
// a JSON object.
var ErrNotObject = errors.New("payload is not a JSON object")

// ToQuestion converts the payload into a Question. Slices are copied.
func (p QuestionPayload) ToQuestion() *Question {
	return &Question{
		Prompt:        p.Question,
		Kind:          p.Type,
		Options:       append([]string(nil), p.Options...),
		CorrectAnswer: p.CorrectAnswer,
		Explanation:   p.Explanation,
		Difficulty:    p.Difficulty,
	}
}

// NewQuestionPayload converts a Question into its wire form.
func NewQuestionPayload(q *Question) QuestionPayload {
	opts := q.Options
	if opts == nil {
		opts = []string{}
	}
	return QuestionPayload{
		Question:      q.Prompt,
		Type:          q.Kind,
		Options:       opts,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
	}
}

// ToEvaluation converts the payload into an Evaluation. Slices are copied.
func (p EvaluationPayload) ToEvaluation() *Evaluation {
	return &Evaluation{
		IsCorrect:    p.IsCorrect,
		Score:        p.Score,
		Feedback:     p.Feedback,
		Strengths:    append([]string(nil), p.Strengths...),
		Improvements: append([]string(nil), p.Improvements...),
	}
}

// NewEvaluationPayload converts an Evaluation into its wire form.
func NewEvaluationPayload(ev *Evaluation) EvaluationPayload {
	p := EvaluationPayload{
		IsCorrect:    ev.IsCorrect,
		Score:        ev.Score,
		Feedback:     ev.Feedback,
		Strengths:    ev.Strengths,
		Improvements: ev.Improvements,
	}
	if p.Strengths == nil {
		p.Strengths = []string{}
	}
	if p.Improvements == nil {
		p.Improvements = []string{}
	}
	return p
}

// DecodeQuestion parses a question payload. The content may be wrapped in
// a markdown code fence.
func DecodeQuestion(raw []byte) (*Question, error) {
	var p QuestionPayload
	if err := decodeObject(raw, &p); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	return p.ToQuestion(), nil
}

// DecodeEvaluation parses an evaluation payload. The content may be
// wrapped in a markdown code fence.
func DecodeEvaluation(raw []byte) (*Evaluation, error) {
	var p EvaluationPayload
	if err := decodeObject(raw, &p); err != nil {
		return nil, fmt.Errorf("decode evaluation: %w", err)
	}
	return p.ToEvaluation(), nil
}

func decodeObject(raw []byte, dst any) error {
	body := bytes.TrimSpace(StripCodeFence(raw))
	if len(body) == 0 || body[0] != '{' {
		return ErrNotObject
	}
	return json.Unmarshal(body, dst)
}

// StripCodeFence removes a surrounding ``` fence, with or without a
// "json" language tag. Content without a fence is returned unchanged.
func StripCodeFence(raw []byte) []byte {
	return llm.StripCodeFence(raw)
}
