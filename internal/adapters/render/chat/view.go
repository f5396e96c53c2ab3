package chat

import (
	"fmt"
	"strings"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// ShowTokens prints the raw navigation token beside each control.
	ShowTokens bool
	// ControlsPerRow wraps the control bar. Zero keeps every control on one row.
	ControlsPerRow int
}

func renderView(view domain.View, opts RenderOptions, s styles) string {
	lines := []string{s.title.Render(fallback(view.Title, "(untitled)"))}

	if description := strings.TrimSpace(view.Description); description != "" {
		lines = append(lines, s.description.Render(description))
	}

	if len(view.Lines) > 0 {
		body := make([]string, 0, len(view.Lines))
		for _, line := range view.Lines {
			body = append(body, s.line.Render(line))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
	}

	if view.Footer != "" {
		lines = append(lines, s.footer.Render(view.Footer))
	}

	if len(view.Controls) > 0 {
		lines = append(lines, s.section.Render(renderControls(view.Controls, opts, s)))
	}

	if view.Final && len(view.Controls) > 0 {
		lines = append(lines, s.final.Render("controls disabled"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderControls(controls []domain.Control, opts RenderOptions, s styles) string {
	perRow := opts.ControlsPerRow
	if perRow <= 0 {
		perRow = len(controls)
	}

	rows := make([]string, 0, len(controls)/perRow+1)
	for start := 0; start < len(controls); start += perRow {
		end := min(start+perRow, len(controls))

		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, "  ")
			}
			cells = append(cells, renderControl(i+1, controls[i], opts, s))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderControl(position int, control domain.Control, opts RenderOptions, s styles) string {
	label := s.control(string(control.Style), control.Disabled).Render("[" + control.Label + "]")
	text := s.index.Render(fmt.Sprintf("#%d", position)) + " " + label
	if opts.ShowTokens && !control.Disabled {
		text += " " + s.index.Render(control.Token)
	}
	return text
}

func fallback(value, otherwise string) string {
	if strings.TrimSpace(value) == "" {
		return otherwise
	}
	return value
}
