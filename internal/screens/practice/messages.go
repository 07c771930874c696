package practice

import (
	"time"

	"github.com/abhisek/examprep/internal/session"
)

// questionDoneMsg carries the result of a generation request.
type questionDoneMsg struct {
	View session.View
	Err  error
}

// evaluationDoneMsg carries the result of an evaluation request.
type evaluationDoneMsg struct {
	View session.View
	Err  error
}

// spinnerTickMsg advances the loading indicator.
type spinnerTickMsg time.Time
