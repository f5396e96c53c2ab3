package chat

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	description lipgloss.Style
	line        lipgloss.Style
	footer      lipgloss.Style
	empty       lipgloss.Style
	section     lipgloss.Style
	index       lipgloss.Style
	primary     lipgloss.Style
	secondary   lipgloss.Style
	danger      lipgloss.Style
	disabled    lipgloss.Style
	final       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		description: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		line:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		footer:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		empty:       lipgloss.NewStyle().Faint(true),
		section:     lipgloss.NewStyle().MarginTop(1),
		index:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		primary:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		secondary:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		danger:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		disabled:    lipgloss.NewStyle().Faint(true).Strikethrough(true),
		final:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

func (s styles) control(style string, disabled bool) lipgloss.Style {
	if disabled {
		return s.disabled
	}

	switch style {
	case "primary":
		return s.primary
	case "danger":
		return s.danger
	default:
		return s.secondary
	}
}
