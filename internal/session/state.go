package session

import "github.com/abhisek/examprep/internal/examgen"

// Phase is the lifecycle position of a practice session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseAwaitingAnswer
	PhaseSubmitting
	PhaseEvaluated
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseSubmitting:
		return "submitting"
	case PhaseEvaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}

// Busy reports whether a collaborator call is in flight.
func (p Phase) Busy() bool {
	return p == PhaseGenerating || p == PhaseSubmitting
}

// Ticket identifies one in-flight request. The zero value never matches.
type Ticket uint64

// State is a snapshot of the session. Question and Evaluation are shared
// with the machine and must be treated as read-only.
type State struct {
	Phase Phase

	// Subject of the active or pending question.
	Subject string

	Question   *examgen.Question
	Candidate  string
	Evaluation *examgen.Evaluation

	// Err is the last failure, cleared on every phase change.
	Err error

	// QuestionSeq counts questions delivered in this session.
	QuestionSeq int
}

// CanSubmit reports whether Submit would be accepted right now.
func (s State) CanSubmit() bool {
	return s.Phase == PhaseAwaitingAnswer && IsSubmittable(s.Question, s.Candidate)
}
