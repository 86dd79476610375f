package cmd

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// dimStyle for separators and secondary text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	pathStyle = lipgloss.NewStyle().
			Bold(true)
)

func okMark() string    { return successStyle.Render("✓") }
func warnMark() string  { return warnStyle.Render("⚠") }
func errorMark() string { return errorStyle.Render("✗") }
