package tui

import "github.com/charmbracelet/lipgloss"

const (
	accentColorCode  = "39"  // blue
	successColorCode = "42"  // green
	errorColorCode   = "196" // red
	dimColorCode     = "241" // gray
)

// progressBarWidth is the width of the walk progress bar.
const progressBarWidth = 40

func accentColor() lipgloss.Color { return lipgloss.Color(accentColorCode) }

// titleStyle styles screen headings.
func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(accentColor()).
		Bold(true)
}

// boxStyle frames the summary screen.
func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor()).
		Padding(1, 2)
}

// dimStyle styles secondary text such as the current path and key hints.
func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(dimColorCode))
}

// errorStyle styles error messages.
func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(errorColorCode)).
		Bold(true)
}

// successStyle styles the completion heading.
func successStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(successColorCode)).
		Bold(true)
}
