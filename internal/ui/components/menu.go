package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// MenuItem is one row of a Menu. Enter runs Action; left and right call
// Adjust with -1 or +1 when it is set.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
	Adjust func(delta int) tea.Cmd
}

// Menu is a vertical list with a cursor that wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// SetLabel relabels item i; out-of-range indexes are ignored.
func (m *Menu) SetLabel(i int, label string) {
	if i >= 0 && i < len(m.Items) {
		m.Items[i].Label = label
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	item := m.Items[m.Selected]

	switch key.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "left", "h":
		if item.Adjust != nil {
			return m, item.Adjust(-1)
		}
	case "right", "l":
		if item.Adjust != nil {
			return m, item.Adjust(1)
		}
	case "enter":
		if item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i != m.Selected {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		} else {
			row := "  ▸ " + item.Label
			if item.Adjust != nil {
				row += "  ◂ ▸"
			}
			b.WriteString(theme.Selected.Render(row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
