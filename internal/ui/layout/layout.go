// Package layout draws the frame around every screen: a header bar with
// the session status, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// Terminal size limits.
const (
	MinWidth  = 80
	MinHeight = 24

	// Below CompactWidth screens drop side panels.
	CompactWidth = 100

	HeaderHeight = 3
	FooterHeight = 3
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStatus is the session summary on the right of the header. Label
// is already localized; an empty Label hides the status.
type HeaderStatus struct {
	Answered int
	Accuracy float64
	Label    string
}

func IsCompactWidth(width int) bool { return width < CompactWidth }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what is left for a screen body between header and footer.
func ContentHeight(total int) int {
	return max(total-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage centres msg in a width x height box.
func RenderMinSizeMessage(msg string, width, height int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center, lipgloss.Center).
		Width(width).
		Height(height).
		Render(msg)
}

// MinSizeData is the template data for the localized size message.
func MinSizeData(width, height int) map[string]any {
	return map[string]any{
		"MinWidth":  MinWidth,
		"MinHeight": MinHeight,
		"Width":     width,
		"Height":    height,
	}
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader puts the app name on the left, the screen title in the
// middle and the status on the right.
func RenderHeader(appName, title string, status HeaderStatus, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + appName)
	mid := theme.Body.Render(title)

	var right string
	if status.Label != "" {
		right = lipgloss.NewStyle().Foreground(theme.Secondary).Render(status.Label) + "   " +
			lipgloss.NewStyle().Foreground(scoreColor(status)).Render(fmt.Sprintf("%.0f%%", status.Accuracy))
	}

	inner := max(width-4, 0)
	nw, mw, rw := lipgloss.Width(name), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((inner-mw)/2-nw, 1)
	gapR := max(inner-nw-gapL-mw-rw, 1)

	line := name + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
	return bar.Width(width).Render(line)
}

// scoreColor grades accuracy the same way the stats panel does.
func scoreColor(status HeaderStatus) color.Color {
	if status.Answered == 0 {
		return theme.TextDim
	}
	switch a := status.Accuracy; {
	case a >= 85:
		return theme.Success
	case a >= 60:
		return theme.Accent
	default:
		return theme.Error
	}
}

func RenderFooter(hints []KeyHint, width int) string {
	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(theme.Body.Bold(true).Render(h.Key))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, body and footer, padding the body so the
// frame fills height.
func RenderFrame(header, body, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(body),
		footer,
	)
}
