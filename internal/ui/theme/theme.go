// Package theme holds the palette and lipgloss styles shared by all screens.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Muted teal and sand on a charcoal background.
var (
	Primary   = lipgloss.Color("#14B8A6")
	Secondary = lipgloss.Color("#60A5FA")
	Accent    = lipgloss.Color("#EAB308")
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text styles.
var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Heading  = fg(Secondary).Bold(true)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Notice   = fg(Accent)

	ErrorText = fg(Error)
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
)

// Containers.
var (
	Card  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(1, 2)
	Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Secondary).Padding(0, 1)
)
