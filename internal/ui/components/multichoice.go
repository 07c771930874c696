package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Options are chosen with the
// arrow keys or their number; nothing is chosen until the learner picks.
type MultiChoice struct {
	Options []string
	Cursor  int

	// Chosen is the index of the picked option, -1 when none.
	Chosen int

	// Reveal, when non-empty, locks the list and highlights the correct
	// option and the learner's pick.
	Reveal string
}

// NewMultiChoice creates a selector with no option chosen.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1}
}

// Value returns the chosen option, or "" when none is chosen.
func (m MultiChoice) Value() string {
	if m.Chosen < 0 || m.Chosen >= len(m.Options) {
		return ""
	}
	return m.Options[m.Chosen]
}

// Select picks the option with the given text. Unknown text clears the
// choice.
func (m *MultiChoice) Select(value string) {
	m.Chosen = -1
	for i, opt := range m.Options {
		if opt == value {
			m.Chosen = i
			m.Cursor = i
			return
		}
	}
}

// Update handles navigation. Space picks the option under the cursor and
// number keys pick directly. The returned bool reports whether the choice
// changed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Reveal != "" {
		return m, false
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	before := m.Chosen
	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "space", " ":
		m.Chosen = m.Cursor
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Cursor = n - 1
			m.Chosen = n - 1
		}
	}
	return m, m.Chosen != before
}

// View renders the option list.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		mark := "( )"
		if i == m.Chosen {
			mark = "(•)"
		}
		prefix := "  "
		if i == m.Cursor && m.Reveal == "" {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, mark, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Reveal != "" && opt == m.Reveal:
			style = theme.Correct
		case m.Reveal != "" && i == m.Chosen:
			style = theme.Incorrect
		case m.Reveal != "":
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
