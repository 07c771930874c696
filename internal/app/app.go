package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/i18n"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/screens/home"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Orchestrator *session.Orchestrator
	Catalog      *i18n.Catalog

	// Subjects offered on the home screen. Empty means the defaults.
	Subjects []string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	orch   *session.Orchestrator
	cat    *i18n.Catalog
	width  int
	height int
}

// New creates an AppModel with the home screen.
func New(opts Options) (AppModel, error) {
	if opts.Orchestrator == nil {
		return AppModel{}, errors.New("app: orchestrator is required")
	}
	cat := opts.Catalog
	if cat == nil {
		cat = i18n.English()
	}
	return AppModel{
		router: router.New(home.New(opts.Orchestrator, cat, opts.Subjects)),
		orch:   opts.Orchestrator,
		cat:    cat,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.cat.Td("TerminalTooSmall", layout.MinSizeData(m.width, m.height)), m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	snap := m.orch.View().Stats
	header := layout.RenderHeader(m.cat.T("AppTitle"), title, layout.HeaderStatus{
		Answered: snap.TotalQuestions,
		Accuracy: snap.Accuracy(),
		Label:    m.cat.Tp("AnsweredCount", snap.TotalQuestions),
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: m.cat.T("HintBack")},
		{Key: "Ctrl+C", Description: m.cat.T("HintQuit")},
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	model, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
