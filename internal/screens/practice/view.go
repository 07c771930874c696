package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

const statsPanelWidth = 34

func (s *Screen) View(width, height int) string {
	showStats := s.showStats && !layout.IsCompactWidth(width)

	qw := width - 4
	if showStats {
		qw -= statsPanelWidth + 2
	}
	qw = max(qw, 30)

	main := s.renderQuestion(qw)
	if showStats {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", s.renderStats(statsPanelWidth))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(main)
}

func (s *Screen) renderQuestion(width int) string {
	v := s.view
	st := v.State
	inner := width - 6

	var sections []string
	sections = append(sections, s.renderInfoLine(v))

	switch st.Phase {
	case session.PhaseGenerating:
		sections = append(sections, s.spinner()+" "+theme.Hint.Render(s.cat.T("Generating")))
	case session.PhaseIdle:
		sections = append(sections, theme.Hint.Render(s.cat.T("IdlePrompt")))
	default:
		sections = append(sections, s.renderPrompt(st.Question, inner))
	}

	if st.Phase == session.PhaseSubmitting {
		sections = append(sections, s.spinner()+" "+theme.Hint.Render(s.cat.T("Evaluating")))
	}
	if msg := ErrorText(s.cat, st.Err); msg != "" {
		sections = append(sections, theme.ErrorText.Width(inner).Render(msg))
	}
	if st.Phase == session.PhaseEvaluated && st.Evaluation != nil {
		sections = append(sections, s.renderEvaluation(st, inner))
	}

	return theme.Card.Width(width).Render(strings.Join(sections, "\n\n"))
}

func (s *Screen) renderInfoLine(v session.View) string {
	parts := []string{
		theme.Heading.Render(v.Subject),
		DifficultyLabel(s.cat, v.Recommendation.Difficulty),
	}
	if v.State.QuestionSeq > 0 {
		parts = append(parts, s.cat.Td("QuestionN", map[string]any{"N": v.State.QuestionSeq}))
	}
	return strings.Join(parts, theme.Hint.Render("  ·  "))
}

func (s *Screen) renderPrompt(q *examgen.Question, width int) string {
	if q == nil {
		return ""
	}
	kind := s.cat.T("ShortAnswer")
	answer := s.input.View()
	if q.IsMultipleChoice() {
		kind = s.cat.T("MultipleChoice")
		answer = s.choices.View()
	}
	return theme.Hint.Render(kind) + "\n" +
		theme.Body.Width(width).Render(q.Prompt) + "\n\n" +
		answer
}

func (s *Screen) renderEvaluation(st session.State, width int) string {
	e := st.Evaluation

	verdict := theme.Incorrect.Render("✗ " + s.cat.T("Incorrect"))
	if e.IsCorrect {
		verdict = theme.Correct.Render("✓ " + s.cat.T("Correct"))
	}
	lines := []string{
		verdict + "   " + s.cat.Td("ScoreLine", map[string]any{"Score": fmt.Sprintf("%.0f", e.Score)}),
	}

	if e.Feedback != "" {
		lines = append(lines, "", theme.Heading.Render(s.cat.T("Feedback")), theme.Body.Width(width).Render(e.Feedback))
	}
	lines = append(lines, bulletBlock(s.cat.T("Strengths"), e.Strengths, width)...)
	lines = append(lines, bulletBlock(s.cat.T("Improvements"), e.Improvements, width)...)

	if st.Question != nil {
		lines = append(lines, "",
			theme.Heading.Render(s.cat.T("CorrectAnswer"))+" "+theme.Correct.Render(st.Question.CorrectAnswer))
		if st.Question.Explanation != "" {
			lines = append(lines, "",
				theme.Heading.Render(s.cat.T("Explanation")),
				theme.Body.Width(width).Render(st.Question.Explanation))
		}
	}
	return strings.Join(lines, "\n")
}

func bulletBlock(title string, items []string, width int) []string {
	if len(items) == 0 {
		return nil
	}
	out := []string{"", theme.Heading.Render(title)}
	for _, it := range items {
		out = append(out, theme.Body.Width(width).Render("• "+it))
	}
	return out
}

func (s *Screen) renderStats(width int) string {
	v := s.view
	snap := v.Stats
	inner := width - 4

	lines := []string{theme.Heading.Render(s.cat.T("AnalyticsTitle")), ""}
	if snap.TotalQuestions == 0 {
		lines = append(lines, theme.Hint.Render(s.cat.T("NoAnswersYet")))
	} else {
		lines = append(lines,
			fmt.Sprintf("%s: %d", s.cat.T("TotalQuestions"), snap.TotalQuestions),
			fmt.Sprintf("%s: %d", s.cat.T("CorrectAnswers"), snap.CorrectAnswers),
			"",
			components.ProgressBar{Label: s.cat.T("Accuracy"), LabelWidth: 10, Value: snap.Accuracy(), Width: inner}.View(),
			components.ProgressBar{Label: s.cat.T("AverageScore"), LabelWidth: 10, Value: snap.AverageScore(), Width: inner}.View(),
		)
		if len(snap.Subjects) > 1 {
			lines = append(lines, "")
			for _, sub := range snap.Subjects {
				lines = append(lines, fmt.Sprintf("%s  %d/%d", sub.Subject, sub.CorrectCount, sub.QuestionsAnswered))
			}
		}
	}

	rec := v.Recommendation
	lines = append(lines, "", s.cat.T("NextDifficulty")+": "+DifficultyLabel(s.cat, rec.Difficulty))
	if rec.Overridden {
		lines = append(lines, theme.Hint.Width(inner).Render(s.cat.T("Overridden")))
	}
	lines = append(lines, theme.Notice.Width(inner).Render(AdviceText(s.cat, rec.Advice)))

	return theme.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (s *Screen) spinner() string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.frame])
}
