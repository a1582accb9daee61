package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the workbench panes.
type Styles struct {
	Title       lipgloss.Style
	ResultPane  lipgloss.Style
	HistoryPane lipgloss.Style
	Key         lipgloss.Style
	KeySelected lipgloss.Style
	InputLine   lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default workbench color scheme.
func DefaultStyles() Styles {
	border := lipgloss.Color("#3c4b66")
	accent := lipgloss.Color("#8BC34A")
	muted := lipgloss.Color("#6b7689")

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1),
		ResultPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		HistoryPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Foreground(muted).
			Padding(0, 1),
		Key: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#d6dae0")),
		KeySelected: lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("#101F38")).
			Background(accent),
		InputLine: lipgloss.NewStyle().
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
	}
}
