package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors that adjust to light and dark terminal themes.
var (
	headingColor = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#8a8a8a"}
	successColor = lipgloss.AdaptiveColor{Light: "#0f7b0f", Dark: "#4ec94e"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#c42b1c", Dark: "#ff6b5e"}
	warningColor = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d4a72c"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#0550ae", Dark: "#539bf5"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(pathColor)
)

// Outcome indicators
var (
	successIndicator = successStyle.Render("✓")
	errorIndicator   = errorStyle.Render("✗")
	warningIndicator = warningStyle.Render("!")
	skippedIndicator = mutedStyle.Render("○")
)
