package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title, label, help, hint, success, error, cursor, off, app lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		off: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		app: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}

func newInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = width
	in.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))
	return in
}

func newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "No", Width: 6},
			{Title: "Event ID", Width: 9},
			{Title: "Date", Width: 11},
			{Title: "Time", Width: 9},
			{Title: "Type", Width: 48},
		}),
		table.WithHeight(defaultTableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(draculaPurple)).
		BorderBottom(true).
		Foreground(lipgloss.Color(draculaYellow))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(draculaForeground)).
		Background(lipgloss.Color(draculaPurple))
	t.SetStyles(s)
	return t
}
