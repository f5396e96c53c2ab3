package application

import (
	"fmt"
	"strconv"

	"github.com/bnema/matchday-bot/internal/domain"
)

// maxGroupControls keeps detail views under the control limit of chat platforms.
const maxGroupControls = 20

const (
	labelPrev  = "◀ Prev"
	labelNext  = "Next ▶"
	labelBack  = "Back"
	labelClose = "Close"
)

// RenderSession draws the current frame of s. A closed session renders with its controls disabled.
func RenderSession(s domain.Session) domain.View {
	frame := s.Current()

	var view domain.View
	switch frame.View {
	case domain.ViewDetail:
		view = renderDetail(s, frame)
	case domain.ViewSubList:
		view = renderSubList(s, frame)
	default:
		view = renderList(s, frame)
	}

	if s.Closed {
		return view.Disabled()
	}
	return view
}

func renderList(s domain.Session, frame domain.Frame) domain.View {
	view := domain.View{Title: s.Title}
	if len(s.Items) == 0 {
		view.Description = "No results."
		view.Controls = []domain.Control{closeControl(s, frame)}
		return view
	}

	start, end := domain.PageBounds(frame.Page, len(s.Items))
	for i := start; i < end; i++ {
		item := s.Items[i]
		line := fmt.Sprintf("%d. %s", i+1, item.Title)
		if !s.Display.Compact && item.Subtitle != "" {
			line += " (" + item.Subtitle + ")"
		}
		view.Lines = append(view.Lines, line)
		view.Controls = append(view.Controls, domain.Control{
			Label: strconv.Itoa(i + 1),
			Token: token(s, frame, domain.ActionSelect, i),
			Style: domain.ControlPrimary,
		})
	}

	view.Controls = append(view.Controls, pageControls(s, frame)...)
	view.Controls = append(view.Controls, closeControl(s, frame))
	view.Footer = fmt.Sprintf("Page %d/%d · %d results", frame.Page, s.TotalPages(frame), len(s.Items))
	return view
}

func renderDetail(s domain.Session, frame domain.Frame) domain.View {
	detail := frame.Detail
	if detail == nil {
		detail = &domain.Detail{}
	}

	view := domain.View{
		Title:       fallbackTitle(detail.Item.Title, s.Title),
		Description: detail.Description,
		Footer:      s.Title,
	}
	for _, field := range detail.Item.Fields {
		if s.Display.HideScores && field.Name == domain.FieldScore {
			continue
		}
		view.Lines = append(view.Lines, field.Name+": "+field.Value)
	}

	for i, group := range detail.Groups {
		if i == maxGroupControls {
			view.Lines = append(view.Lines, fmt.Sprintf("%d more sources not shown", len(detail.Groups)-maxGroupControls))
			break
		}
		view.Controls = append(view.Controls, domain.Control{
			Label: fmt.Sprintf("%s (%d)", group.Name, len(group.Entries)),
			Token: token(s, frame, domain.ActionSelect, i),
			Style: domain.ControlPrimary,
		})
	}
	if len(detail.Groups) == 0 {
		view.Lines = append(view.Lines, "Nothing more to show.")
	}

	view.Controls = append(view.Controls, backControl(s, frame), closeControl(s, frame))
	return view
}

func renderSubList(s domain.Session, frame domain.Frame) domain.View {
	group := domain.Group{}
	title := s.Title
	if frame.Detail != nil {
		title = fallbackTitle(frame.Detail.Item.Title, s.Title)
		if frame.Index >= 0 && frame.Index < len(frame.Detail.Groups) {
			group = frame.Detail.Groups[frame.Index]
		}
	}

	view := domain.View{Title: title + " · " + group.Name}
	if len(group.Entries) == 0 {
		view.Description = "No entries."
	}

	hideValues := group.Scores && s.Display.HideScores
	start, end := domain.PageBounds(frame.Page, len(group.Entries))
	for i := start; i < end; i++ {
		entry := group.Entries[i]
		line := fmt.Sprintf("%d. %s", i+1, entry.Label)
		if entry.Value != "" && !hideValues {
			line += ": " + entry.Value
		}
		view.Lines = append(view.Lines, line)
	}

	view.Controls = append(view.Controls, pageControls(s, frame)...)
	view.Controls = append(view.Controls, backControl(s, frame), closeControl(s, frame))
	view.Footer = fmt.Sprintf("Page %d/%d · %d entries", frame.Page, s.TotalPages(frame), len(group.Entries))
	return view
}

func pageControls(s domain.Session, frame domain.Frame) []domain.Control {
	total := s.TotalPages(frame)
	return []domain.Control{
		{
			Label:    labelPrev,
			Token:    token(s, frame, domain.ActionPaginate, frame.Page-1),
			Style:    domain.ControlSecondary,
			Disabled: frame.Page <= 1,
		},
		{
			Label:    labelNext,
			Token:    token(s, frame, domain.ActionPaginate, frame.Page+1),
			Style:    domain.ControlSecondary,
			Disabled: frame.Page >= total,
		},
	}
}

func backControl(s domain.Session, frame domain.Frame) domain.Control {
	return domain.Control{Label: labelBack, Token: token(s, frame, domain.ActionBack, 0), Style: domain.ControlSecondary}
}

func closeControl(s domain.Session, frame domain.Frame) domain.Control {
	return domain.Control{Label: labelClose, Token: token(s, frame, domain.ActionClose, 0), Style: domain.ControlDanger}
}

func token(s domain.Session, frame domain.Frame, action domain.Action, param int) string {
	return domain.NavigationToken{
		Action:    action,
		SessionID: s.ID,
		View:      frame.ID,
		Param:     param,
	}.Encode()
}

func fallbackTitle(title, otherwise string) string {
	if title == "" {
		return otherwise
	}
	return title
}
