package session

import "github.com/abhisek/examprep/internal/examgen"

// Machine enforces the session lifecycle:
//
//	Idle -> Generating -> AwaitingAnswer -> Submitting -> Evaluated
//
// Generating falls back to Idle on failure; Submitting falls back to
// AwaitingAnswer with the question and candidate preserved. Every
// request hands out a Ticket, and only the matching completion is
// accepted, once. Machine is not safe for concurrent use.
type Machine struct {
	state   State
	next    Ticket
	pending Ticket
}

// NewMachine returns a machine in Idle.
func NewMachine() *Machine {
	return &Machine{}
}

// State returns the current snapshot.
func (m *Machine) State() State {
	return m.state
}

// Pending returns the ticket of the request in flight, or zero.
func (m *Machine) Pending() Ticket {
	return m.pending
}

func (m *Machine) issue() Ticket {
	m.next++
	m.pending = m.next
	return m.pending
}

func (m *Machine) busyOr(err error) error {
	if m.state.Phase.Busy() {
		return ErrBusy
	}
	return err
}

// RequestQuestion enters Generating from Idle, Evaluated or
// AwaitingAnswer. Any current question, candidate and evaluation are
// discarded.
func (m *Machine) RequestQuestion(subject string) (Ticket, error) {
	if m.state.Phase.Busy() {
		return 0, ErrBusy
	}
	m.state = State{
		Phase:       PhaseGenerating,
		Subject:     subject,
		QuestionSeq: m.state.QuestionSeq,
	}
	return m.issue(), nil
}

// QuestionReady completes a generation request.
func (m *Machine) QuestionReady(t Ticket, q *examgen.Question) error {
	if err := m.accept(PhaseGenerating, t); err != nil {
		return err
	}
	m.state = State{
		Phase:       PhaseAwaitingAnswer,
		Subject:     m.state.Subject,
		Question:    q,
		QuestionSeq: m.state.QuestionSeq + 1,
	}
	return nil
}

// QuestionFailed returns a generation request to Idle with err recorded.
func (m *Machine) QuestionFailed(t Ticket, err error) error {
	if aerr := m.accept(PhaseGenerating, t); aerr != nil {
		return aerr
	}
	m.state = State{
		Phase:       PhaseIdle,
		Err:         err,
		QuestionSeq: m.state.QuestionSeq,
	}
	return nil
}

// EditAnswer replaces the candidate. Nothing else changes.
func (m *Machine) EditAnswer(candidate string) error {
	if m.state.Phase != PhaseAwaitingAnswer {
		return m.busyOr(ErrInvalidTransition)
	}
	m.state.Candidate = candidate
	return nil
}

// Submit enters Submitting when the candidate passes validation. On a
// validation failure the machine stays in AwaitingAnswer with the
// failure recorded, and the returned error is an *ErrInvalidAnswer.
func (m *Machine) Submit() (Ticket, error) {
	return m.SubmitCandidate(m.state.Candidate)
}

// SubmitCandidate is Submit for candidate. The candidate is stored only
// once it passes validation, so a rejected submit keeps the current draft.
func (m *Machine) SubmitCandidate(candidate string) (Ticket, error) {
	if m.state.Phase != PhaseAwaitingAnswer {
		return 0, m.busyOr(ErrInvalidTransition)
	}
	if verr := CheckSubmittable(m.state.Question, candidate); verr != nil {
		m.state.Err = verr
		return 0, verr
	}
	m.state.Candidate = candidate
	m.state.Phase = PhaseSubmitting
	m.state.Err = nil
	return m.issue(), nil
}

// EvaluationReady completes an evaluation request. A nil return is the
// single point at which a result counts toward analytics.
func (m *Machine) EvaluationReady(t Ticket, ev *examgen.Evaluation) error {
	if err := m.accept(PhaseSubmitting, t); err != nil {
		return err
	}
	m.state.Phase = PhaseEvaluated
	m.state.Evaluation = ev
	m.state.Err = nil
	return nil
}

// EvaluationFailed returns to AwaitingAnswer, keeping the question and
// candidate so the learner can retry.
func (m *Machine) EvaluationFailed(t Ticket, err error) error {
	if aerr := m.accept(PhaseSubmitting, t); aerr != nil {
		return aerr
	}
	m.state.Phase = PhaseAwaitingAnswer
	m.state.Err = err
	return nil
}

// Reset returns to Idle and invalidates any pending ticket.
func (m *Machine) Reset() {
	m.state = State{}
	m.pending = 0
}

func (m *Machine) accept(phase Phase, t Ticket) error {
	if m.state.Phase != phase {
		if m.pending == 0 || t != m.pending {
			return ErrStaleTicket
		}
		return ErrInvalidTransition
	}
	if t == 0 || t != m.pending {
		return ErrStaleTicket
	}
	m.pending = 0
	return nil
}
