package home

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/i18n"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/screens/practice"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

const (
	itemStart = iota
	itemSubject
	itemDifficulty
	itemRestart
	itemQuit
)

// HomeScreen is the control panel: subject and difficulty selection plus
// a summary of the current session.
type HomeScreen struct {
	orch     *session.Orchestrator
	cat      *i18n.Catalog
	subjects []string
	menu     components.Menu
	notice   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. The orchestrator's current subject is
// added to subjects if missing.
func New(orch *session.Orchestrator, cat *i18n.Catalog, subjects []string) *HomeScreen {
	if len(subjects) == 0 {
		subjects = examgen.DefaultSubjects
	}
	subjects = slices.Clone(subjects)
	if cur := orch.View().Subject; !slices.Contains(subjects, cur) {
		subjects = append([]string{cur}, subjects...)
	}

	h := &HomeScreen{orch: orch, cat: cat, subjects: subjects}
	h.menu = components.NewMenu([]components.MenuItem{
		itemStart: {Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: practice.New(h.orch, h.cat)}
			}
		}},
		itemSubject: {
			Action: func() tea.Cmd { return h.cycleSubject(1) },
			Adjust: h.cycleSubject,
		},
		itemDifficulty: {
			Action: func() tea.Cmd { return h.cycleDifficulty(1) },
			Adjust: h.cycleDifficulty,
		},
		itemRestart: {Action: func() tea.Cmd {
			h.orch.Restart()
			h.notice = h.cat.T("SessionRestarted")
			return nil
		}},
		itemQuit: {Action: func() tea.Cmd { return tea.Quit }},
	})
	h.refreshLabels()
	return h
}

func (h *HomeScreen) cycleSubject(delta int) tea.Cmd {
	cur := slices.Index(h.subjects, h.orch.View().Subject)
	next := (cur + delta + len(h.subjects)) % len(h.subjects)
	_ = h.orch.SetSubject(h.subjects[next])
	h.refreshLabels()
	return nil
}

func (h *HomeScreen) cycleDifficulty(delta int) tea.Cmd {
	levels := examgen.Difficulties
	cur := slices.Index(levels, h.orch.View().SelectedDifficulty)
	next := (cur + delta + len(levels)) % len(levels)
	_ = h.orch.SetDifficulty(levels[next])
	h.refreshLabels()
	return nil
}

func (h *HomeScreen) refreshLabels() {
	v := h.orch.View()
	h.menu.SetLabel(itemStart, h.cat.T("MenuStart"))
	h.menu.SetLabel(itemSubject, h.cat.Td("MenuSubject", map[string]any{"Subject": v.Subject}))
	h.menu.SetLabel(itemDifficulty, h.cat.Td("MenuDifficulty", map[string]any{
		"Difficulty": practice.DifficultyLabel(h.cat, v.SelectedDifficulty),
	}))
	h.menu.SetLabel(itemRestart, h.cat.T("MenuRestart"))
	h.menu.SetLabel(itemQuit, h.cat.T("MenuQuit"))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		// Labels may be stale after returning from practice.
		h.refreshLabels()
		h.notice = ""
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return h.cat.T("HomeTitle")
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: h.cat.T("HintNavigate")},
		{Key: "←→", Description: h.cat.T("HintChange")},
		{Key: "Enter", Description: h.cat.T("HintSelect")},
		{Key: "Ctrl+C", Description: h.cat.T("HintQuit")},
	}
}

func (h *HomeScreen) View(width, height int) string {
	h.refreshLabels()
	v := h.orch.View()
	cw := min(max(width-8, 30), 64)

	var sections []string
	sections = append(sections,
		theme.Title.Width(cw).Render(h.cat.T("AppTitle")),
		theme.Subtitle.Width(cw).Render(h.cat.T("Tagline")),
	)
	sections = append(sections, h.renderSummary(v, cw))
	sections = append(sections, h.menu.View())
	if h.notice != "" {
		sections = append(sections, theme.Notice.Width(cw).Align(lipgloss.Center).Render(h.notice))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) renderSummary(v session.View, cw int) string {
	snap := v.Stats
	var body string
	if snap.TotalQuestions == 0 {
		body = theme.Hint.Render(h.cat.T("NoAnswersYet"))
	} else {
		body = fmt.Sprintf("%s   %s %.0f%%   %s %.1f",
			h.cat.Tp("QuestionsAnswered", snap.TotalQuestions),
			h.cat.T("Accuracy"), snap.Accuracy(),
			h.cat.T("AverageScore"), snap.AverageScore(),
		)
	}
	advice := theme.Notice.Render(practice.AdviceText(h.cat, v.Recommendation.Advice))
	return theme.Panel.
		Width(cw).
		Align(lipgloss.Center).
		Render(body + "\n" + advice)
}
