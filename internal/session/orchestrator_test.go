package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/analytics"
	"github.com/abhisek/examprep/internal/examgen"
)

type fakeGenerator struct {
	mu     sync.Mutex
	calls  []examgen.GenerateInput
	q      *examgen.Question
	err    error
	before func()
}

func (f *fakeGenerator) Generate(_ context.Context, in examgen.GenerateInput) (*examgen.Question, error) {
	if f.before != nil {
		f.before()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	q := *f.q
	q.Difficulty = in.Difficulty
	return &q, nil
}

type fakeEvaluator struct {
	mu     sync.Mutex
	calls  []examgen.EvaluateInput
	ev     *examgen.Evaluation
	err    error
	before func()
}

func (f *fakeEvaluator) Evaluate(_ context.Context, in examgen.EvaluateInput) (*examgen.Evaluation, error) {
	if f.before != nil {
		f.before()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, in)
	if f.err != nil {
		return nil, f.err
	}
	ev := *f.ev
	return &ev, nil
}

func (f *fakeEvaluator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(gen *fakeGenerator, eval *fakeEvaluator) *Orchestrator {
	return NewOrchestrator(gen, eval, Options{
		Subject:    "Physics",
		Difficulty: examgen.DifficultyMedium,
		Logger:     quietLogger(),
	})
}

func TestOrchestratorFullRound(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{IsCorrect: true, Score: 90, Feedback: "Good."}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	v, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingAnswer, v.State.Phase)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, examgen.GenerateInput{Subject: "Physics", Difficulty: examgen.DifficultyMedium}, gen.calls[0])

	v, err = o.SubmitAnswer(ctx, "objects resist changes in motion")
	require.NoError(t, err)
	assert.Equal(t, PhaseEvaluated, v.State.Phase)
	require.NotNil(t, v.State.Evaluation)
	assert.True(t, v.State.Evaluation.IsCorrect)

	require.Len(t, eval.calls, 1)
	assert.Equal(t, examgen.EvaluateInput{
		Question:      saQuestion().Prompt,
		CorrectAnswer: saQuestion().CorrectAnswer,
		StudentAnswer: "objects resist changes in motion",
	}, eval.calls[0])

	assert.Equal(t, 1, v.Stats.TotalQuestions)
	assert.Equal(t, 1, v.Stats.CorrectAnswers)
	assert.Equal(t, 90.0, v.Stats.CumulativeScore)
	physics, ok := v.Stats.Subject("Physics")
	require.True(t, ok)
	assert.Equal(t, 1, physics.QuestionsAnswered)

	v, err = o.NextQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingAnswer, v.State.Phase)
	assert.Empty(t, v.State.Candidate)
	assert.Nil(t, v.State.Evaluation)
	assert.Equal(t, 2, v.State.QuestionSeq)
	assert.Equal(t, 1, v.Stats.TotalQuestions)
}

func TestOrchestratorEmptyShortAnswerRejected(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{Score: 50, Feedback: "ok"}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)

	v, err := o.SubmitAnswer(ctx, "")
	var inv *ErrInvalidAnswer
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, ReasonEmptyAnswer, inv.Reason)
	assert.Equal(t, PhaseAwaitingAnswer, v.State.Phase)
	assert.Equal(t, saQuestion().Prompt, v.State.Question.Prompt)
	assert.NotNil(t, v.State.Err)
	assert.Equal(t, 0, eval.callCount())
	assert.Equal(t, 0, v.Stats.TotalQuestions)

	// A blank submit must not clobber the saved draft.
	_, err = o.EditAnswer("draft answer")
	require.NoError(t, err)
	v, err = o.SubmitAnswer(ctx, "   ")
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, ReasonEmptyAnswer, inv.Reason)
	assert.Equal(t, PhaseAwaitingAnswer, v.State.Phase)
	assert.Equal(t, "draft answer", v.State.Candidate)
	assert.NotNil(t, v.State.Err)
	assert.Equal(t, 0, eval.callCount())
}

func TestOrchestratorInvalidChoiceRejected(t *testing.T) {
	gen := &fakeGenerator{q: mcQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{Score: 50, Feedback: "ok"}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)

	v, err := o.SubmitAnswer(ctx, "Saturn")
	var inv *ErrInvalidAnswer
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, ReasonUnknownOption, inv.Reason)
	assert.Empty(t, v.State.Candidate)
	assert.Equal(t, 0, eval.callCount())
}

func TestOrchestratorEvaluationFailure(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{IsCorrect: true, Score: 80, Feedback: "ok"}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	_, err = o.SubmitAnswer(ctx, "first answer")
	require.NoError(t, err)
	_, err = o.NextQuestion(ctx)
	require.NoError(t, err)

	before := o.View().Stats
	eval.err = errors.New("service down")

	v, err := o.SubmitAnswer(ctx, "second answer")
	var eerr *ErrEvaluationFailed
	require.ErrorAs(t, err, &eerr)
	assert.ErrorIs(t, err, eval.err)
	assert.Equal(t, PhaseAwaitingAnswer, v.State.Phase)
	assert.Equal(t, "second answer", v.State.Candidate)
	assert.NotNil(t, v.State.Question)
	assert.Equal(t, MessageEvaluationFailed, UserMessage(v.State.Err))
	assert.Equal(t, before, v.Stats)

	// Retry succeeds without re-entering the answer.
	eval.err = nil
	v, err = o.SubmitAnswer(ctx, v.State.Candidate)
	require.NoError(t, err)
	assert.Equal(t, PhaseEvaluated, v.State.Phase)
	assert.Equal(t, 2, v.Stats.TotalQuestions)
}

func TestOrchestratorOutOfRangeScoreIsEvaluationFailure(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{Score: 140, Feedback: "??"}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	v, err := o.SubmitAnswer(ctx, "answer")
	var eerr *ErrEvaluationFailed
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, PhaseAwaitingAnswer, v.State.Phase)
	assert.Equal(t, 0, v.Stats.TotalQuestions)
}

func TestOrchestratorGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	eval := &fakeEvaluator{}
	o := newTestOrchestrator(gen, eval)

	v, err := o.StartQuestion(context.Background())
	var gerr *ErrGenerationFailed
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Physics", gerr.Subject)
	assert.Equal(t, PhaseIdle, v.State.Phase)
	assert.Nil(t, v.State.Question)
	assert.Equal(t, MessageGenerationFailed, UserMessage(v.State.Err))

	gen.err = nil
	gen.q = mcQuestion()
	v, err = o.StartQuestion(context.Background())
	require.NoError(t, err)
	assert.Nil(t, v.State.Err)
}

func TestOrchestratorBusyGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{
		ev: &examgen.Evaluation{IsCorrect: true, Score: 70, Feedback: "ok"},
		before: func() {
			close(entered)
			<-release
		},
	}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := o.SubmitAnswer(ctx, "first")
		done <- err
	}()
	<-entered

	assert.Equal(t, PhaseSubmitting, o.View().State.Phase)
	_, err = o.SubmitAnswer(ctx, "second")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = o.StartQuestion(ctx)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = o.EditAnswer("third")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)

	v := o.View()
	assert.Equal(t, PhaseEvaluated, v.State.Phase)
	assert.Equal(t, "first", v.State.Candidate)
	assert.Equal(t, 1, v.Stats.TotalQuestions)
	assert.Equal(t, 1, eval.callCount())
}

func TestOrchestratorDuplicateCompletionRecordsOnce(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{IsCorrect: true, Score: 60, Feedback: "ok"}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	req, err := o.BeginSubmit("answer")
	require.NoError(t, err)

	_, err = o.CompleteSubmit(ctx, req)
	require.NoError(t, err)
	v, err := o.CompleteSubmit(ctx, req)
	assert.ErrorIs(t, err, ErrStaleTicket)
	assert.Equal(t, 1, v.Stats.TotalQuestions)
	assert.Equal(t, 60.0, v.Stats.CumulativeScore)
}

func TestOrchestratorSkipDoesNotCount(t *testing.T) {
	gen := &fakeGenerator{q: mcQuestion()}
	eval := &fakeEvaluator{}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	_, err = o.EditAnswer("Mars")
	require.NoError(t, err)

	v, err := o.NextQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingAnswer, v.State.Phase)
	assert.Empty(t, v.State.Candidate)
	assert.Equal(t, 0, v.Stats.TotalQuestions)
	assert.Equal(t, 0, eval.callCount())
}

func TestOrchestratorAdvisorOverridesRequestOnly(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{IsCorrect: true, Score: 95, Feedback: "great"}}
	o := NewOrchestrator(gen, eval, Options{
		Subject:    "Math",
		Difficulty: examgen.DifficultyEasy,
		Logger:     quietLogger(),
	})
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	_, err = o.SubmitAnswer(ctx, "x")
	require.NoError(t, err)

	v, err := o.NextQuestion(ctx)
	require.NoError(t, err)
	require.Len(t, gen.calls, 2)
	assert.Equal(t, examgen.DifficultyEasy, gen.calls[0].Difficulty)
	assert.Equal(t, examgen.DifficultyHard, gen.calls[1].Difficulty)
	assert.Equal(t, examgen.DifficultyEasy, v.SelectedDifficulty)
	assert.True(t, v.Recommendation.Overridden)
	assert.Equal(t, examgen.DifficultyHard, v.State.Question.Difficulty)
}

func TestOrchestratorRecordsQuestionSubject(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{Score: 30, Feedback: "meh"}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	require.NoError(t, o.SetSubject("History"))

	v, err := o.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)
	_, ok := v.Stats.Subject("Physics")
	assert.True(t, ok)
	_, ok = v.Stats.Subject("History")
	assert.False(t, ok)
	assert.Equal(t, "History", v.Subject)
}

func TestOrchestratorRestart(t *testing.T) {
	gen := &fakeGenerator{q: saQuestion()}
	eval := &fakeEvaluator{ev: &examgen.Evaluation{IsCorrect: true, Score: 75, Feedback: "ok"}}
	o := newTestOrchestrator(gen, eval)
	ctx := context.Background()

	first := o.View().SessionID
	_, err := o.StartQuestion(ctx)
	require.NoError(t, err)
	_, err = o.SubmitAnswer(ctx, "answer")
	require.NoError(t, err)

	req, err := o.BeginQuestion()
	require.NoError(t, err)

	v := o.Restart()
	assert.NotEqual(t, first, v.SessionID)
	assert.Equal(t, PhaseIdle, v.State.Phase)
	assert.Equal(t, 0, v.Stats.TotalQuestions)

	v, err = o.CompleteQuestion(ctx, req)
	assert.ErrorIs(t, err, ErrStaleTicket)
	assert.Equal(t, PhaseIdle, v.State.Phase)
}

func TestOrchestratorSelections(t *testing.T) {
	o := newTestOrchestrator(&fakeGenerator{q: saQuestion()}, &fakeEvaluator{})

	assert.Error(t, o.SetSubject("   "))
	assert.Error(t, o.SetDifficulty("impossible"))
	require.NoError(t, o.SetDifficulty(examgen.DifficultyHard))
	assert.Equal(t, examgen.DifficultyHard, o.View().SelectedDifficulty)

	d := NewOrchestrator(nil, nil, Options{Logger: quietLogger()}).View()
	assert.Equal(t, examgen.DefaultSubjects[0], d.Subject)
	assert.Equal(t, examgen.DifficultyEasy, d.SelectedDifficulty)
}

func TestOrchestratorPolicy(t *testing.T) {
	o := NewOrchestrator(nil, nil, Options{Logger: quietLogger()})
	assert.Equal(t, analytics.NewAdvisor(analytics.DefaultPolicy()), o.advisor)

	custom := analytics.Policy{HardAbove: 95, IncreaseAccuracyAbove: 90, IncreaseAverageAbove: 90, EasierBelow: 50}
	o = NewOrchestrator(nil, nil, Options{Policy: &custom, Logger: quietLogger()})
	assert.Equal(t, analytics.NewAdvisor(custom), o.advisor)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, MessageInvalidAnswer, UserMessage(&ErrInvalidAnswer{Reason: ReasonEmptyAnswer}))
	assert.Equal(t, MessageBusy, UserMessage(ErrBusy))
	assert.Equal(t, "other", UserMessage(errors.New("other")))
}
