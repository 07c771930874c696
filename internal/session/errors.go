package session

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned when an action arrives while a question or an
	// evaluation is in flight.
	ErrBusy = errors.New("session is waiting for a response")

	// ErrInvalidTransition is returned when an action is not allowed in
	// the current phase.
	ErrInvalidTransition = errors.New("action not allowed in current phase")

	// ErrStaleTicket is returned when a completion does not belong to the
	// request currently in flight. Nothing changes.
	ErrStaleTicket = errors.New("completion does not match the request in flight")
)

// Reason explains why a candidate answer cannot be submitted.
type Reason string

const (
	ReasonNoQuestion    Reason = "no-question"
	ReasonNoSelection   Reason = "no-selection"
	ReasonUnknownOption Reason = "unknown-option"
	ReasonEmptyAnswer   Reason = "empty-answer"
)

// ErrInvalidAnswer is the local validation failure. No collaborator call
// is made and the session stays in AwaitingAnswer.
type ErrInvalidAnswer struct {
	Reason Reason
}

func (e *ErrInvalidAnswer) Error() string {
	switch e.Reason {
	case ReasonNoSelection:
		return "no option selected"
	case ReasonUnknownOption:
		return "selected option is not one of the choices"
	case ReasonNoQuestion:
		return "no active question"
	default:
		return "answer is empty"
	}
}

// ErrGenerationFailed reports a failed question request. The session
// returns to Idle.
type ErrGenerationFailed struct {
	Subject string
	Err     error
}

func (e *ErrGenerationFailed) Error() string {
	return fmt.Sprintf("generate %s question: %v", e.Subject, e.Err)
}

func (e *ErrGenerationFailed) Unwrap() error { return e.Err }

// ErrEvaluationFailed reports a failed evaluation request. The session
// returns to AwaitingAnswer with the question and candidate preserved.
type ErrEvaluationFailed struct {
	Err error
}

func (e *ErrEvaluationFailed) Error() string {
	return fmt.Sprintf("evaluate answer: %v", e.Err)
}

func (e *ErrEvaluationFailed) Unwrap() error { return e.Err }

// Default user-facing messages for each failure kind.
const (
	MessageGenerationFailed = "Unable to generate a question right now. Please try again."
	MessageEvaluationFailed = "Unable to evaluate your answer right now. Please try again."
	MessageInvalidAnswer    = "Please provide an answer before submitting."
	MessageBusy             = "Please wait for the current request to finish."
)

// UserMessage maps an error recorded on State.Err to a message suitable
// for display. It returns "" for nil.
func UserMessage(err error) string {
	var (
		inv  *ErrInvalidAnswer
		gen  *ErrGenerationFailed
		eval *ErrEvaluationFailed
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inv):
		return MessageInvalidAnswer
	case errors.As(err, &gen):
		return MessageGenerationFailed
	case errors.As(err, &eval):
		return MessageEvaluationFailed
	case errors.Is(err, ErrBusy):
		return MessageBusy
	default:
		return err.Error()
	}
}
