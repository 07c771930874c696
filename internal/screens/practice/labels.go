package practice

import (
	"errors"

	"github.com/abhisek/examprep/internal/analytics"
	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/i18n"
	"github.com/abhisek/examprep/internal/session"
)

// DifficultyLabel returns the localized name of d.
func DifficultyLabel(cat *i18n.Catalog, d examgen.Difficulty) string {
	switch d {
	case examgen.DifficultyEasy:
		return cat.T("DifficultyEasy")
	case examgen.DifficultyHard:
		return cat.T("DifficultyHard")
	default:
		return cat.T("DifficultyMedium")
	}
}

// AdviceText returns the localized advisory message.
func AdviceText(cat *i18n.Catalog, a analytics.Advice) string {
	switch a {
	case analytics.AdviceIncrease:
		return cat.T("AdviceIncrease")
	case analytics.AdviceEasier:
		return cat.T("AdviceEasier")
	default:
		return cat.T("AdviceKeep")
	}
}

// ErrorText returns the localized message for a session error.
func ErrorText(cat *i18n.Catalog, err error) string {
	var (
		inv  *session.ErrInvalidAnswer
		gen  *session.ErrGenerationFailed
		eval *session.ErrEvaluationFailed
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inv):
		if inv.Reason == session.ReasonNoSelection || inv.Reason == session.ReasonUnknownOption {
			return cat.T("ErrInvalidChoice")
		}
		return cat.T("ErrInvalidAnswer")
	case errors.As(err, &gen):
		return cat.T("ErrGenerationFailed")
	case errors.As(err, &eval):
		return cat.T("ErrEvaluationFailed")
	case errors.Is(err, session.ErrBusy):
		return cat.T("ErrBusy")
	default:
		return session.UserMessage(err)
	}
}
