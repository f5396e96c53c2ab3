package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigatorListDetailSubListAndBack(t *testing.T) {
	h := newHarness(t)
	h.catalog.details["item-2"] = testDetail(h.catalog.items[2], 25, 3, 0)

	view, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})

	assert.Equal(t, 10, primaryControls(view))
	assert.Equal(t, "Page 1/2 · 12 results", view.Footer)
	assert.True(t, findControl(t, view, labelPrev).Disabled)
	assert.False(t, findControl(t, view, labelNext).Disabled)
	assert.Equal(t, 0, h.catalog.detailLoads, "details load lazily")

	detail := h.press(t, "alice", view, "3")
	assert.Equal(t, "Item 3", detail.Title)
	assert.Equal(t, "About Item 3", detail.Description)
	assert.Equal(t, 3, primaryControls(detail))
	assert.Equal(t, []string{"Server 1 (25)", "Server 2 (3)", "Server 3 (0)", labelBack, labelClose}, controlLabels(detail))
	assert.Equal(t, 1, h.catalog.detailLoads)

	sublist := h.press(t, "alice", detail, "Server 1 (25)")
	assert.Equal(t, "Item 3 · Server 1", sublist.Title)
	assert.Equal(t, "Page 1/3 · 25 entries", sublist.Footer)
	require.Len(t, sublist.Lines, 10)
	assert.Equal(t, "1. Ep 1", sublist.Lines[0])

	sublist = h.press(t, "alice", sublist, labelNext)
	assert.Equal(t, "Page 2/3 · 25 entries", sublist.Footer)
	assert.Equal(t, "11. Ep 11", sublist.Lines[0])

	back := h.press(t, "alice", sublist, labelBack)
	assert.Equal(t, controlLabels(detail), controlLabels(back))

	list := h.press(t, "alice", back, labelBack)
	assert.Equal(t, "Page 1/2 · 12 results", list.Footer)
	assert.Equal(t, 10, primaryControls(list))
	assert.Equal(t, 1, h.catalog.detailLoads, "back never refetches")
}

func TestNavigatorBackRestoresListPage(t *testing.T) {
	h := newHarness(t)
	view, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})

	page2 := h.press(t, "alice", view, labelNext)
	assert.Equal(t, "Page 2/2 · 12 results", page2.Footer)
	assert.Equal(t, []string{"11. Item 11", "12. Item 12"}, page2.Lines)

	detail := h.press(t, "alice", page2, "11")
	assert.Equal(t, "Item 11", detail.Title)

	restored := h.press(t, "alice", detail, labelBack)
	assert.Equal(t, "Page 2/2 · 12 results", restored.Footer)
}

func TestNavigatorPaginateOutOfRangeRerendersCurrentPage(t *testing.T) {
	h := newHarness(t)
	view, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})

	same := h.press(t, "alice", view, labelPrev)
	assert.Equal(t, view, same)

	last := h.press(t, "alice", view, labelNext)
	again := h.press(t, "alice", last, labelNext)
	assert.Equal(t, last, again)
}

func TestNavigatorRepeatedNextPressMovesOnePage(t *testing.T) {
	h := newHarness(t)
	view, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: testItems(25)}, domain.Display{})

	first := h.press(t, "alice", view, labelNext)
	second := h.press(t, "alice", view, labelNext)

	assert.Equal(t, "Page 2/3 · 25 results", first.Footer)
	assert.Equal(t, first, second)

	third := h.press(t, "alice", second, labelNext)
	assert.Equal(t, "Page 3/3 · 25 results", third.Footer)
}

func TestNavigatorRejectsConsumedControls(t *testing.T) {
	h := newHarness(t)
	view, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})

	detail := h.press(t, "alice", view, "1")

	_, _, err := h.navigator.Handle(context.Background(), domain.Callback{Token: findControl(t, view, "2").Token, InvokerID: "alice"})
	assert.ErrorIs(t, err, domain.ErrStaleControl)

	h.press(t, "alice", detail, labelBack)
	_, _, err = h.navigator.Handle(context.Background(), domain.Callback{Token: findControl(t, view, "2").Token, InvokerID: "alice"})
	assert.ErrorIs(t, err, domain.ErrStaleControl, "controls rendered before the descent stay consumed")
	assert.Equal(t, 1, h.catalog.detailLoads)
}

func TestNavigatorRejectsForeignUserWithoutMutation(t *testing.T) {
	h := newHarness(t)
	view, started := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})

	_, _, err := h.navigator.Handle(context.Background(), domain.Callback{Token: findControl(t, view, "1").Token, InvokerID: "mallory"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := h.store.Get(started.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Stack, 1)
	assert.Equal(t, 0, h.catalog.detailLoads)
	assert.Equal(t, 1, h.metrics.transition("select/rejected"))
}

func TestNavigatorRejectsMalformedAndExpired(t *testing.T) {
	h := newHarness(t)
	view, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})

	_, _, err := h.navigator.Handle(context.Background(), domain.Callback{Token: "m1.s.1.1.0.bogus", InvokerID: "alice"})
	assert.ErrorIs(t, err, domain.ErrMalformedToken)

	h.clock.Advance(sessionTTL)
	_, _, err = h.navigator.Handle(context.Background(), domain.Callback{Token: findControl(t, view, "1").Token, InvokerID: "alice"})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestNavigatorDetailFailureKeepsSession(t *testing.T) {
	h := newHarness(t)
	view, started := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})
	h.catalog.detailErr = fmt.Errorf("%w: catalog down", domain.ErrUpstream)

	failed, _, err := h.navigator.Handle(context.Background(), domain.Callback{Token: findControl(t, view, "1").Token, InvokerID: "alice"})
	require.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, detailUnavailable, failed.Description)
	assert.Equal(t, controlLabels(view), controlLabels(failed))

	stored, err := h.store.Get(started.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Stack, 1)

	h.catalog.detailErr = nil
	detail := h.press(t, "alice", failed, "1")
	assert.Equal(t, "Item 1", detail.Title)
}

func TestNavigatorCloseDisablesControlsAndDropsSession(t *testing.T) {
	h := newHarness(t)
	view, started := h.navigator.Start("alice", domain.Listing{Kind: domain.KindMovies, Title: "Movies", Items: h.catalog.items}, domain.Display{})

	closed := h.press(t, "alice", view, labelClose)
	assert.True(t, closed.Final)
	for _, control := range closed.Controls {
		assert.True(t, control.Disabled, control.Label)
	}

	_, err := h.store.Get(started.ID)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestNavigatorEmptyListing(t *testing.T) {
	h := newHarness(t)
	view, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindLive, Title: "Live"}, domain.Display{})

	assert.Equal(t, "No results.", view.Description)
	assert.Equal(t, []string{labelClose}, controlLabels(view))
}

func TestRenderSessionAppliesDisplay(t *testing.T) {
	item := domain.Item{
		Key:      "match-1",
		Title:    "Arsenal vs Chelsea",
		Subtitle: "Premier League",
		Fields:   []domain.Field{{Name: "Status", Value: "Full time"}, {Name: domain.FieldScore, Value: "2-1"}},
	}
	detail := domain.Detail{Item: item, Groups: []domain.Group{{
		Name:    "Arsenal form",
		Entries: []domain.Entry{{Label: "vs Chelsea (H)", Value: "2-1 W"}},
		Scores:  true,
	}}}

	tests := []struct {
		name        string
		display     domain.Display
		listLine    string
		detailLines []string
		entryLine   string
	}{
		{
			name:        "defaults",
			listLine:    "1. Arsenal vs Chelsea (Premier League)",
			detailLines: []string{"Status: Full time", "Score: 2-1"},
			entryLine:   "1. vs Chelsea (H): 2-1 W",
		},
		{
			name:        "compact without scores",
			display:     domain.Display{Compact: true, HideScores: true},
			listLine:    "1. Arsenal vs Chelsea",
			detailLines: []string{"Status: Full time"},
			entryLine:   "1. vs Chelsea (H)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.catalog.details[item.Key] = detail

			list, _ := h.navigator.Start("alice", domain.Listing{Kind: domain.KindFixtures, Title: "Fixtures", Items: []domain.Item{item}}, tt.display)
			assert.Equal(t, []string{tt.listLine}, list.Lines)

			detailView := h.press(t, "alice", list, "1")
			assert.Equal(t, tt.detailLines, detailView.Lines)

			entries := h.press(t, "alice", detailView, "Arsenal form (1)")
			assert.Equal(t, []string{tt.entryLine}, entries.Lines)
		})
	}
}
