// Package tui renders the spending dashboard in the terminal.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4") // Teal
	// AccentColor highlights the spending figures.
	AccentColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(10)

	amountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 3)
)
