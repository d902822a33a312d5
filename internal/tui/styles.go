package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#2196F3")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6b7280")
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
	Border      = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles of the demo.
type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Sidebar    lipgloss.Style
	Item       lipgloss.Style
	ActiveItem lipgloss.Style
	Content    lipgloss.Style
	Header     lipgloss.Style
	Label      lipgloss.Style
	Muted      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Focused    lipgloss.Style
	Help       lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Subtitle: lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		Item:       lipgloss.NewStyle().Foreground(Muted),
		ActiveItem: lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Content:    lipgloss.NewStyle().Padding(0, 2),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Label:      lipgloss.NewStyle().Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(Muted),
		Success:    lipgloss.NewStyle().Foreground(Accent),
		Warning:    lipgloss.NewStyle().Foreground(Warning),
		Error:      lipgloss.NewStyle().Foreground(Destructive),
		Focused:    lipgloss.NewStyle().Bold(true).Foreground(Warning),
		Help:       lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
	}
}
