package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#9D8CFF"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#8A8A8A"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#1E7F3C", Dark: "#5FD787"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#B3261E", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(14)
	errorStyle = lipgloss.NewStyle().Foreground(colorDanger)
	okStyle    = lipgloss.NewStyle().Foreground(colorSuccess)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	selectedStatusStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)
