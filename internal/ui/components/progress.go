package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// ProgressBar renders "Label  ██████░░░░   62%" for a percentage. Values
// outside 0-100 are drawn clamped but printed as given.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Value      float64
	Width      int
}

// percentWidth fits "  100%".
const percentWidth = 6

func (p ProgressBar) View() string {
	var label string
	if p.Label != "" {
		label = theme.Body.Width(max(p.LabelWidth, lipgloss.Width(p.Label))).Render(p.Label) + "  "
	}

	track := max(p.Width-lipgloss.Width(label)-percentWidth, 4)
	fill := int(float64(track) * min(max(p.Value, 0), 100) / 100)

	return label +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", fill)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", track-fill)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%5.0f%%", p.Value))
}
