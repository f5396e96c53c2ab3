package domain

import (
	"fmt"
	"time"
)

// Step is one navigation request against a session.
type Step struct {
	Requester UserID
	Action    Action
	View      uint32
	Param     int
	Now       time.Time
	// Detail must be set when the step opens a Detail view from a List; see NeedsDetail.
	Detail *Detail
}

// StepFromToken builds the step a pressed control asks for against s. Paginate controls carry the
// target page, which becomes a move relative to the current page; a repeated press of the same
// control therefore resolves to a zero move.
func StepFromToken(s Session, token NavigationToken, requester UserID, now time.Time) Step {
	param := token.Param
	if token.Action == ActionPaginate {
		param = token.Param - s.Current().Page
	}

	return Step{
		Requester: requester,
		Action:    token.Action,
		View:      token.View,
		Param:     param,
		Now:       now,
	}
}

// Check validates a step without applying it: lifetime, ownership and control freshness.
func Check(s Session, step Step) error {
	if s.Closed || s.Expired(step.Now) {
		return fmt.Errorf("%w: session %d", ErrSessionExpired, s.ID)
	}
	if step.Requester != s.OwnerID {
		return fmt.Errorf("%w: session %d", ErrForbidden, s.ID)
	}
	if !step.Action.Valid() {
		return fmt.Errorf("%w: unknown action", ErrMalformedToken)
	}
	if step.View != s.Current().ID {
		return fmt.Errorf("%w: view %d is not current", ErrStaleControl, step.View)
	}

	return nil
}

// NeedsDetail reports whether step opens a Detail view. The caller loads the detail for
// SelectedItem and passes it in Step.Detail before calling Transition.
func NeedsDetail(s Session, step Step) bool {
	return step.Action == ActionSelect && s.Current().View == ViewList
}

// SelectedItem resolves the item a List selection points at.
func SelectedItem(s Session, index int) (Item, error) {
	if index < 0 || index >= len(s.Items) {
		return Item{}, fmt.Errorf("%w: item %d of %d", ErrIndexOutOfRange, index, len(s.Items))
	}
	return s.Items[index], nil
}

// Transition applies step to a copy of s and returns the new state. s itself is never modified, so
// callers may discard the result when rendering fails.
func Transition(s Session, step Step) (Session, error) {
	if err := Check(s, step); err != nil {
		return s, err
	}

	next := s.Clone()
	current := next.Current()

	switch step.Action {
	case ActionSelect:
		return selectRow(next, current, step)
	case ActionPaginate:
		return paginate(next, current, step.Param), nil
	case ActionBack:
		return back(next), nil
	case ActionClose:
		next.Closed = true
		return next, nil
	}

	return s, fmt.Errorf("%w: unknown action", ErrMalformedToken)
}

func selectRow(s Session, current Frame, step Step) (Session, error) {
	switch current.View {
	case ViewList:
		if _, err := SelectedItem(s, step.Param); err != nil {
			return s, err
		}
		if step.Detail == nil {
			return s, fmt.Errorf("select item %d: detail not loaded", step.Param)
		}
		s.Stack = append(s.Stack, Frame{
			ID:     s.nextViewID(),
			View:   ViewDetail,
			Page:   1,
			Index:  step.Param,
			Detail: step.Detail,
		})
		return s, nil
	case ViewDetail:
		if current.Detail == nil || step.Param < 0 || step.Param >= len(current.Detail.Groups) {
			return s, fmt.Errorf("%w: group %d", ErrIndexOutOfRange, step.Param)
		}
		s.Stack = append(s.Stack, Frame{
			ID:     s.nextViewID(),
			View:   ViewSubList,
			Page:   1,
			Index:  step.Param,
			Detail: current.Detail,
		})
		return s, nil
	default:
		return s, fmt.Errorf("%w: %s view has no selection", ErrIndexOutOfRange, current.View)
	}
}

// paginate moves the page cursor; a move outside [1, total] leaves the page where it is.
func paginate(s Session, current Frame, delta int) Session {
	if current.View == ViewDetail {
		return s
	}

	page := current.Page + delta
	if page < 1 || page > s.TotalPages(current) {
		return s
	}

	s.Stack[len(s.Stack)-1].Page = page
	return s
}

// back pops to the parent frame with its page intact. The restored frame gets a fresh view id so
// controls rendered for it before the descent stay consumed.
func back(s Session) Session {
	if len(s.Stack) <= 1 {
		return s
	}

	s.Stack = s.Stack[:len(s.Stack)-1]
	s.Stack[len(s.Stack)-1].ID = s.nextViewID()
	return s
}
