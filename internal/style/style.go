// Package style centralizes the CLI's terminal styling, adapted from
// michaelscutari-dug's internal/tui/styles.go lipgloss palette for use in a
// plain (non-TUI) progress/summary output instead of a bubbletea view.
package style

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#0B7A5F", Dark: "#6EE7B7"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B6B"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#9A9A9A"}
	colorPrimary = lipgloss.AdaptiveColor{Light: "#005B9A", Dark: "#4FA3FF"}

	Success = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	Danger  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(colorMuted)
	Heading = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)
