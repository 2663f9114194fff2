package tui

import "github.com/charmbracelet/lipgloss"

// styles groups the lipgloss styles shared across stage views.
type styles struct {
	title    lipgloss.Style
	stageTag lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	item     lipgloss.Style
	selected lipgloss.Style
	help     lipgloss.Style
	errText  lipgloss.Style
	okText   lipgloss.Style
	boxed    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238")).
			MarginBottom(1),

		stageTag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),

		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),

		item: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),

		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),

		errText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),

		okText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")),

		boxed: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
	}
}
