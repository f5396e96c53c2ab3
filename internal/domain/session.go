package domain

import (
	"slices"
	"time"
)

// PageSize is the number of rows shown per page on List and SubList views.
const PageSize = 10

type SessionID uint64
type UserID string
type SessionKind string

const (
	KindMovies    SessionKind = "movies"
	KindFixtures  SessionKind = "fixtures"
	KindStandings SessionKind = "standings"
	KindLive      SessionKind = "live"
	KindDashboard SessionKind = "dashboard"
	KindWiki      SessionKind = "wiki"
)

type ViewKind int

const (
	ViewList ViewKind = iota + 1
	ViewDetail
	ViewSubList
)

func (v ViewKind) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	case ViewSubList:
		return "sublist"
	default:
		return "unknown"
	}
}

// Frame is one rendered view on the navigation stack.
type Frame struct {
	// ID identifies the control set rendered for this frame. Tokens carrying another ID are stale.
	ID   uint32
	View ViewKind
	Page int
	// Index is the selected item on Detail frames and the selected group on SubList frames.
	Index  int
	Detail *Detail
}

// Display holds the per-user presentation toggles a session renders with.
type Display struct {
	// Compact hides row subtitles.
	Compact    bool
	HideScores bool
}

// DisplayFor derives the presentation of a new session from the owner's settings.
func DisplayFor(settings UserSettings) Display {
	return Display{
		Compact:    settings.Enabled(FeatureCompact),
		HideScores: !settings.Enabled(FeatureScores),
	}
}

type Session struct {
	ID        SessionID
	OwnerID   UserID
	Kind      SessionKind
	Title     string
	Items     []Item
	Stack     []Frame
	NextView  uint32
	Display   Display
	CreatedAt time.Time
	ExpiresAt time.Time
	Closed    bool
}

// NewSession builds a session positioned on page 1 of its root list.
func NewSession(id SessionID, owner UserID, kind SessionKind, title string, items []Item, now time.Time, ttl time.Duration) Session {
	s := Session{
		ID:        id,
		OwnerID:   owner,
		Kind:      kind,
		Title:     title,
		Items:     items,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	s.Stack = []Frame{{ID: s.nextViewID(), View: ViewList, Page: 1, Index: -1}}
	return s
}

// Current returns the frame on top of the stack.
func (s Session) Current() Frame {
	if len(s.Stack) == 0 {
		return Frame{View: ViewList, Page: 1, Index: -1}
	}
	return s.Stack[len(s.Stack)-1]
}

// Expired reports whether the hard lifetime cap has passed. It is measured from creation, not activity.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Rows returns the number of paginated rows of a frame.
func (s Session) Rows(f Frame) int {
	switch f.View {
	case ViewList:
		return len(s.Items)
	case ViewSubList:
		if f.Detail == nil || f.Index < 0 || f.Index >= len(f.Detail.Groups) {
			return 0
		}
		return len(f.Detail.Groups[f.Index].Entries)
	default:
		return 0
	}
}

func (s Session) TotalPages(f Frame) int {
	return TotalPages(s.Rows(f))
}

// TotalPages never returns less than 1 so an empty listing still has a page to show.
func TotalPages(rows int) int {
	if rows <= 0 {
		return 1
	}
	return (rows + PageSize - 1) / PageSize
}

// PageBounds returns the half-open row range shown on page.
func PageBounds(page, rows int) (int, int) {
	start := (page - 1) * PageSize
	if start < 0 {
		start = 0
	}
	if start > rows {
		start = rows
	}
	end := start + PageSize
	if end > rows {
		end = rows
	}
	return start, end
}

// Clone returns a copy whose stack can be mutated without touching s.
func (s Session) Clone() Session {
	s.Stack = slices.Clone(s.Stack)
	return s
}

func (s *Session) nextViewID() uint32 {
	s.NextView++
	return s.NextView
}
