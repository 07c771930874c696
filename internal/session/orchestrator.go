package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/examprep/internal/analytics"
	"github.com/abhisek/examprep/internal/examgen"
)

// Options configures an Orchestrator.
type Options struct {
	Subject    string
	Difficulty examgen.Difficulty

	// Policy overrides the advisor thresholds. nil means DefaultPolicy.
	Policy *analytics.Policy

	Logger *slog.Logger
}

// View is everything a presentation layer needs to render the session.
type View struct {
	SessionID          string
	Subject            string
	SelectedDifficulty examgen.Difficulty

	State          State
	Stats          analytics.Snapshot
	Recommendation analytics.Recommendation
}

// GenerationRequest is an in-flight question request.
type GenerationRequest struct {
	Ticket         Ticket
	Input          examgen.GenerateInput
	Recommendation analytics.Recommendation
}

// EvaluationRequest is an in-flight evaluation request.
type EvaluationRequest struct {
	Ticket  Ticket
	Subject string
	Input   examgen.EvaluateInput
}

// Orchestrator drives one practice session: it sequences the two
// collaborator calls through the state machine, records each evaluated
// answer exactly once, and consults the advisor before every request.
//
// The Begin/Complete pairs exist for event loops that run the blocking
// half elsewhere. StartQuestion, SubmitAnswer and NextQuestion do both
// halves in one call. All methods are safe for concurrent use; the
// collaborator call never runs under the lock.
type Orchestrator struct {
	gen  examgen.Generator
	eval examgen.Evaluator

	mu        sync.Mutex
	machine   *Machine
	stats     *analytics.Stats
	advisor   *analytics.Advisor
	subject   string
	selected  examgen.Difficulty
	sessionID string

	base *slog.Logger
	log  *slog.Logger
}

// NewOrchestrator creates an orchestrator in Idle with empty statistics.
func NewOrchestrator(gen examgen.Generator, eval examgen.Evaluator, opts Options) *Orchestrator {
	policy := analytics.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		subject = examgen.DefaultSubjects[0]
	}
	selected := opts.Difficulty
	if !selected.Valid() {
		selected = examgen.DifficultyEasy
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		gen:      gen,
		eval:     eval,
		machine:  NewMachine(),
		stats:    analytics.NewStats(),
		advisor:  analytics.NewAdvisor(policy),
		subject:  subject,
		selected: selected,
		base:     logger,
	}
	o.newSession()
	return o
}

func (o *Orchestrator) newSession() {
	o.sessionID = uuid.NewString()
	o.log = o.base.With("session", o.sessionID)
}

// View returns the current snapshot.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.viewLocked()
}

func (o *Orchestrator) viewLocked() View {
	snap := o.stats.Snapshot()
	return View{
		SessionID:          o.sessionID,
		Subject:            o.subject,
		SelectedDifficulty: o.selected,
		State:              o.machine.State(),
		Stats:              snap,
		Recommendation:     o.advisor.Recommend(snap, o.selected),
	}
}

// SetSubject changes the subject used for the next question.
func (o *Orchestrator) SetSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return errors.New("subject must not be empty")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subject = subject
	return nil
}

// SetDifficulty changes the user's selected difficulty. The advisor may
// request a harder question but never changes this selection.
func (o *Orchestrator) SetDifficulty(d examgen.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("invalid difficulty %q", d)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selected = d
	return nil
}

// EditAnswer replaces the candidate answer.
func (o *Orchestrator) EditAnswer(candidate string) (View, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	err := o.machine.EditAnswer(candidate)
	return o.viewLocked(), err
}

// BeginQuestion moves the session to Generating and returns the request
// to hand to the generator. The requested difficulty is the advisor's
// recommendation for the current statistics.
func (o *Orchestrator) BeginQuestion() (GenerationRequest, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	rec := o.advisor.Recommend(o.stats.Snapshot(), o.selected)
	t, err := o.machine.RequestQuestion(o.subject)
	if err != nil {
		return GenerationRequest{}, err
	}
	req := GenerationRequest{
		Ticket:         t,
		Input:          examgen.GenerateInput{Subject: o.subject, Difficulty: rec.Difficulty},
		Recommendation: rec,
	}
	o.log.Debug("requesting question",
		"subject", req.Input.Subject,
		"difficulty", req.Input.Difficulty,
		"overridden", rec.Overridden,
	)
	return req, nil
}

// CompleteQuestion calls the generator for req and applies the result.
// A generator failure returns the session to Idle and is reported as
// *ErrGenerationFailed.
func (o *Orchestrator) CompleteQuestion(ctx context.Context, req GenerationRequest) (View, error) {
	q, err := o.gen.Generate(ctx, req.Input)
	if err == nil && q == nil {
		err = errors.New("generator returned no question")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		gerr := &ErrGenerationFailed{Subject: req.Input.Subject, Err: err}
		if merr := o.machine.QuestionFailed(req.Ticket, gerr); merr != nil {
			o.log.Debug("dropping generation failure", "error", err, "reason", merr)
			return o.viewLocked(), merr
		}
		o.log.Warn("question generation failed", "subject", req.Input.Subject, "error", err)
		return o.viewLocked(), gerr
	}

	owned := *q
	owned.Options = slices.Clone(q.Options)
	if merr := o.machine.QuestionReady(req.Ticket, &owned); merr != nil {
		o.log.Debug("dropping question", "reason", merr)
		return o.viewLocked(), merr
	}
	o.log.Info("question ready",
		"subject", req.Input.Subject,
		"kind", owned.Kind,
		"difficulty", req.Input.Difficulty,
	)
	return o.viewLocked(), nil
}

// StartQuestion requests a new question and waits for it.
func (o *Orchestrator) StartQuestion(ctx context.Context) (View, error) {
	req, err := o.BeginQuestion()
	if err != nil {
		return o.View(), err
	}
	return o.CompleteQuestion(ctx, req)
}

// NextQuestion discards the current question, candidate and evaluation
// and starts a new one. From AwaitingAnswer this is a skip; the skipped
// question does not count.
func (o *Orchestrator) NextQuestion(ctx context.Context) (View, error) {
	return o.StartQuestion(ctx)
}

// BeginSubmit validates candidate and on success stores it and moves the
// session to Submitting. A rejected candidate yields *ErrInvalidAnswer,
// leaves the saved draft as it was, and no collaborator call should be made.
func (o *Orchestrator) BeginSubmit(candidate string) (EvaluationRequest, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	t, err := o.machine.SubmitCandidate(candidate)
	if err != nil {
		o.log.Debug("submit rejected", "error", err)
		return EvaluationRequest{}, err
	}
	st := o.machine.State()
	return EvaluationRequest{
		Ticket:  t,
		Subject: st.Subject,
		Input: examgen.EvaluateInput{
			Question:      st.Question.Prompt,
			CorrectAnswer: st.Question.CorrectAnswer,
			StudentAnswer: st.Candidate,
		},
	}, nil
}

// CompleteSubmit calls the evaluator for req and applies the result. On
// success the aggregator is updated exactly once. A failure returns the
// session to AwaitingAnswer and is reported as *ErrEvaluationFailed.
func (o *Orchestrator) CompleteSubmit(ctx context.Context, req EvaluationRequest) (View, error) {
	ev, err := o.eval.Evaluate(ctx, req.Input)
	if err == nil {
		err = checkEvaluation(ev)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		eerr := &ErrEvaluationFailed{Err: err}
		if merr := o.machine.EvaluationFailed(req.Ticket, eerr); merr != nil {
			o.log.Debug("dropping evaluation failure", "error", err, "reason", merr)
			return o.viewLocked(), merr
		}
		o.log.Warn("answer evaluation failed", "subject", req.Subject, "error", err)
		return o.viewLocked(), eerr
	}

	owned := *ev
	owned.Strengths = slices.Clone(ev.Strengths)
	owned.Improvements = slices.Clone(ev.Improvements)
	if merr := o.machine.EvaluationReady(req.Ticket, &owned); merr != nil {
		o.log.Debug("dropping evaluation", "reason", merr)
		return o.viewLocked(), merr
	}
	snap, rerr := o.stats.Record(req.Subject, owned.IsCorrect, owned.Score)
	if rerr != nil {
		// checkEvaluation already rejected the only Record failure.
		o.log.Error("recording evaluation", "error", rerr)
	}
	o.log.Info("answer evaluated",
		"subject", req.Subject,
		"correct", owned.IsCorrect,
		"score", owned.Score,
		"total", snap.TotalQuestions,
	)
	return o.viewLocked(), nil
}

// SubmitAnswer validates candidate, requests an evaluation and waits for
// it.
func (o *Orchestrator) SubmitAnswer(ctx context.Context, candidate string) (View, error) {
	req, err := o.BeginSubmit(candidate)
	if err != nil {
		return o.View(), err
	}
	return o.CompleteSubmit(ctx, req)
}

// Restart begins a fresh session: statistics are cleared, the session
// returns to Idle and any in-flight completion becomes stale. Subject and
// difficulty selections are kept.
func (o *Orchestrator) Restart() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.machine.Reset()
	o.stats.Reset()
	o.newSession()
	o.log.Info("session restarted")
	return o.viewLocked()
}

func checkEvaluation(ev *examgen.Evaluation) error {
	if ev == nil {
		return errors.New("evaluator returned no evaluation")
	}
	if math.IsNaN(ev.Score) || math.IsInf(ev.Score, 0) || ev.Score < 0 || ev.Score > 100 {
		return fmt.Errorf("%w: %v", analytics.ErrInvalidScore, ev.Score)
	}
	return nil
}
