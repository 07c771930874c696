package practice

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/i18n"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
)

const answerCharLimit = 500

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Screen runs the question/answer loop against a session orchestrator.
type Screen struct {
	orch *session.Orchestrator
	cat  *i18n.Catalog

	ctx    context.Context
	cancel context.CancelFunc

	view      session.View
	seq       int // QuestionSeq the widgets were built for
	input     components.TextInput
	choices   components.MultiChoice
	showStats bool
	frame     int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a practice screen. A question is requested on Init.
func New(orch *session.Orchestrator, cat *i18n.Catalog) *Screen {
	ctx, cancel := context.WithCancel(context.Background())
	return &Screen{
		orch:      orch,
		cat:       cat,
		ctx:       ctx,
		cancel:    cancel,
		view:      orch.View(),
		input:     components.NewTextInput(cat.T("AnswerPlaceholder"), answerCharLimit),
		showStats: true,
	}
}

func (s *Screen) Init() tea.Cmd {
	switch s.view.State.Phase {
	case session.PhaseAwaitingAnswer, session.PhaseEvaluated:
		// Resume the question left when the learner went back.
		s.syncWidgets()
		return s.input.Init()
	}
	return s.startQuestion()
}

func (s *Screen) Title() string {
	return s.cat.T("PracticeTitle")
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionDoneMsg:
		return s.handleQuestionDone(msg)
	case evaluationDoneMsg:
		return s.handleEvaluationDone(msg)
	case spinnerTickMsg:
		if !s.view.State.Phase.Busy() {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptsText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) acceptsText() bool {
	q := s.view.State.Question
	return s.view.State.Phase == session.PhaseAwaitingAnswer && q != nil && !q.IsMultipleChoice()
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		s.cancel()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		s.showStats = !s.showStats
		return s, nil
	}

	switch s.view.State.Phase {
	case session.PhaseIdle:
		if key == "enter" {
			return s, s.startQuestion()
		}

	case session.PhaseAwaitingAnswer:
		switch key {
		case "enter":
			return s, s.submit()
		case "ctrl+n":
			return s, s.startQuestion()
		}
		return s.editAnswer(msg)

	case session.PhaseEvaluated:
		switch key {
		case "enter", "n":
			return s, s.startQuestion()
		}
	}

	// Generating and Submitting ignore input.
	return s, nil
}

func (s *Screen) editAnswer(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.view.State.Question
	if q == nil {
		return s, nil
	}

	if q.IsMultipleChoice() {
		var changed bool
		s.choices, changed = s.choices.Update(msg)
		if changed {
			s.view, _ = s.orch.EditAnswer(s.choices.Value())
		}
		return s, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.view, _ = s.orch.EditAnswer(s.input.Value())
	}
	return s, cmd
}

func (s *Screen) startQuestion() tea.Cmd {
	req, err := s.orch.BeginQuestion()
	s.view = s.orch.View()
	if errors.Is(err, session.ErrBusy) {
		// Another screen's request is still in flight; its result is
		// delivered to whichever screen is active.
		return spinnerTick()
	}
	if err != nil {
		return nil
	}
	orch, ctx := s.orch, s.ctx
	return tea.Batch(
		func() tea.Msg {
			v, err := orch.CompleteQuestion(ctx, req)
			return questionDoneMsg{View: v, Err: err}
		},
		spinnerTick(),
	)
}

func (s *Screen) submit() tea.Cmd {
	candidate := s.input.Value()
	if q := s.view.State.Question; q != nil && q.IsMultipleChoice() {
		candidate = s.choices.Value()
	}

	req, err := s.orch.BeginSubmit(candidate)
	s.view = s.orch.View()
	if err != nil {
		return nil
	}
	s.input.Blur()
	orch, ctx := s.orch, s.ctx
	return tea.Batch(
		func() tea.Msg {
			v, err := orch.CompleteSubmit(ctx, req)
			return evaluationDoneMsg{View: v, Err: err}
		},
		spinnerTick(),
	)
}

func (s *Screen) handleQuestionDone(msg questionDoneMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, session.ErrStaleTicket) {
		return s, nil
	}
	s.view = msg.View
	s.syncWidgets()
	return s, s.input.Focus()
}

func (s *Screen) handleEvaluationDone(msg evaluationDoneMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, session.ErrStaleTicket) {
		return s, nil
	}
	s.view = msg.View
	s.syncWidgets()
	if s.view.State.Phase == session.PhaseAwaitingAnswer {
		return s, s.input.Focus()
	}
	return s, nil
}

// syncWidgets rebuilds the answer widgets when a new question arrives and
// locks them once it is evaluated.
func (s *Screen) syncWidgets() {
	st := s.view.State
	if st.Question != nil && st.QuestionSeq != s.seq {
		s.seq = st.QuestionSeq
		s.choices = components.NewMultiChoice(st.Question.Options)
		s.input.Reset()
	}
	if st.Question == nil {
		return
	}
	if st.Question.IsMultipleChoice() {
		s.choices.Select(st.Candidate)
	} else if s.input.Value() != st.Candidate {
		s.input.SetValue(st.Candidate)
	}
	if st.Phase == session.PhaseEvaluated {
		s.input.Blur()
		if st.Question.Kind == examgen.KindMultipleChoice {
			s.choices.Reveal = st.Question.CorrectAnswer
		}
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	switch s.view.State.Phase {
	case session.PhaseIdle:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.cat.T("HintRetry")})
	case session.PhaseAwaitingAnswer:
		if q := s.view.State.Question; q != nil && q.IsMultipleChoice() {
			hints = append(hints, layout.KeyHint{Key: "1-9/Space", Description: s.cat.T("HintSelect")})
		}
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: s.cat.T("HintSubmit")},
			layout.KeyHint{Key: "Ctrl+N", Description: s.cat.T("HintSkip")},
		)
	case session.PhaseEvaluated:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.cat.T("HintNext")})
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: s.cat.T("HintStats")},
		layout.KeyHint{Key: "Esc", Description: s.cat.T("HintBack")},
	)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
