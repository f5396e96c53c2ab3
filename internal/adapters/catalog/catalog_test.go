package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/matchday-bot/internal/adapters/fetch"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports/portstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogNow = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

type fakeFootball struct {
	calls   atomic.Int32
	teams   map[int]domain.Team
	matches map[int][]domain.Match
	table   []domain.Standing
	live    []domain.Match
	err     error
}

func (f *fakeFootball) Team(_ context.Context, id int) (domain.Team, error) {
	f.calls.Add(1)
	if f.err != nil {
		return domain.Team{}, f.err
	}
	return f.teams[id], nil
}

func (f *fakeFootball) TeamMatches(_ context.Context, id int, status domain.MatchStatus, _ int) ([]domain.Match, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Match
	for _, match := range f.matches[id] {
		if match.Status == status {
			out = append(out, match)
		}
	}
	return out, nil
}

func (f *fakeFootball) Standings(context.Context, string) ([]domain.Standing, error) {
	f.calls.Add(1)
	return f.table, f.err
}

func (f *fakeFootball) LiveMatches(context.Context) ([]domain.Match, error) {
	f.calls.Add(1)
	return f.live, f.err
}

type fakeMovies struct {
	searches atomic.Int32
	results  []domain.Movie
	movie    domain.Movie
	err      error
}

func (f *fakeMovies) Search(context.Context, string) ([]domain.Movie, error) {
	f.searches.Add(1)
	return f.results, f.err
}

func (f *fakeMovies) Movie(context.Context, string) (domain.Movie, error) {
	return f.movie, f.err
}

type fakeWiki struct {
	records map[string][]domain.WikiRecord
}

func (f fakeWiki) Categories() []string { return []string{"weapons"} }

func (f fakeWiki) Records(_ context.Context, category string) ([]domain.WikiRecord, error) {
	records, ok := f.records[category]
	if !ok {
		return nil, domain.ErrInvalidArgument
	}
	return records, nil
}

func newTestCatalog(opts ...Option) *Catalog {
	fetcher := fetch.New(fetch.Config{BaseDelay: time.Millisecond, MaxRetries: 1},
		fetch.WithSleep(func(context.Context, time.Duration) error { return nil }),
	)
	return New(fetcher, Config{QueryTTL: time.Minute, DetailTTL: time.Minute}, portstest.NewClock(catalogNow), nil, opts...)
}

func arsenalChelsea() domain.Match {
	return domain.Match{
		ID:          7,
		Competition: "Premier League",
		Matchday:    27,
		UTCDate:     catalogNow.Add(-72 * time.Hour),
		Status:      domain.MatchFinished,
		Home:        domain.Team{ID: 57, Name: "Arsenal"},
		Away:        domain.Team{ID: 61, Name: "Chelsea"},
		Score:       domain.Score{Home: intPtr(2), Away: intPtr(1)},
	}
}

func TestSearchMoviesMapsItemsAndCaches(t *testing.T) {
	movies := &fakeMovies{results: []domain.Movie{{Slug: "dune", Name: "Dune", OriginName: "Dune: Part One", Year: 2021, Quality: "FHD"}}}
	catalog := newTestCatalog(WithMovies(movies))

	first, err := catalog.SearchMovies(context.Background(), " Dune ")
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, domain.KindMovies, first.Kind)
	require.Len(t, first.Items, 1)
	assert.Equal(t, "Dune: Part One · 2021 · FHD", first.Items[0].Subtitle)
	assert.Equal(t, "dune", first.Items[0].MetaValue("slug"))

	second, err := catalog.SearchMovies(context.Background(), "dune")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, int32(1), movies.searches.Load())
}

func TestSearchMoviesRejectsEmptyQuery(t *testing.T) {
	_, err := newTestCatalog(WithMovies(&fakeMovies{})).SearchMovies(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSearchMoviesFailureIsUpstreamAndNotCached(t *testing.T) {
	movies := &fakeMovies{err: errors.New("boom")}
	catalog := newTestCatalog(WithMovies(movies))

	_, err := catalog.SearchMovies(context.Background(), "dune")
	require.ErrorIs(t, err, domain.ErrUpstream)

	movies.err = nil
	_, err = catalog.SearchMovies(context.Background(), "dune")
	require.NoError(t, err)
	assert.Equal(t, int32(2), movies.searches.Load())
}

func TestMovieDetailGroupsEpisodesByServer(t *testing.T) {
	movies := &fakeMovies{movie: domain.Movie{
		Slug:    "the-bear",
		Name:    "The Bear",
		Content: "A chef returns home.",
		Servers: []domain.MovieServer{
			{Name: "Server A", Episodes: []domain.MovieEpisode{{Name: "1", Link: "https://a/1"}, {Name: "2", Link: "https://a/2"}}},
			{Name: "Server B", Episodes: []domain.MovieEpisode{{Name: "1", Link: "https://b/1"}}},
		},
	}}
	catalog := newTestCatalog(WithMovies(movies))

	detail, err := catalog.LoadDetail(context.Background(), domain.KindMovies, domain.Item{Title: "The Bear", Meta: map[string]string{"slug": "the-bear"}})
	require.NoError(t, err)
	assert.Equal(t, "A chef returns home.", detail.Description)
	require.Len(t, detail.Groups, 2)
	assert.Equal(t, domain.Entry{Label: "Episode 2", Value: "https://a/2"}, detail.Groups[0].Entries[1])
	assert.False(t, detail.Groups[0].Scores)
}

func TestTeamFixturesUsesTeamName(t *testing.T) {
	scheduled := arsenalChelsea()
	scheduled.Status = domain.MatchScheduled
	scheduled.Score = domain.Score{}
	football := &fakeFootball{
		teams:   map[int]domain.Team{57: {ID: 57, Name: "Arsenal"}},
		matches: map[int][]domain.Match{57: {scheduled}},
	}

	listing, err := newTestCatalog(WithFootball(football)).TeamFixtures(context.Background(), 57)
	require.NoError(t, err)
	assert.Equal(t, "Upcoming fixtures: Arsenal", listing.Title)
	require.Len(t, listing.Items, 1)
	item := listing.Items[0]
	assert.Equal(t, "Arsenal vs Chelsea", item.Title)
	assert.Equal(t, "57", item.MetaValue("home_id"))
	assert.Equal(t, "61", item.MetaValue("away_id"))
	for _, field := range item.Fields {
		assert.NotEqual(t, domain.FieldScore, field.Name)
	}
}

func TestMatchDetailShowsFormOfBothSides(t *testing.T) {
	football := &fakeFootball{matches: map[int][]domain.Match{
		57: {arsenalChelsea()},
		61: {arsenalChelsea()},
	}}
	item := matchItem(arsenalChelsea())

	detail, err := newTestCatalog(WithFootball(football)).LoadDetail(context.Background(), domain.KindFixtures, item)
	require.NoError(t, err)
	require.Len(t, detail.Groups, 2)
	assert.Equal(t, "Arsenal form", detail.Groups[0].Name)
	assert.True(t, detail.Groups[0].Scores)
	assert.Equal(t, "2-1 W", detail.Groups[0].Entries[0].Value)
	assert.Equal(t, "26 Feb vs Chelsea (H)", detail.Groups[0].Entries[0].Label)
	assert.Equal(t, "2-1 L", detail.Groups[1].Entries[0].Value)
	assert.Equal(t, "26 Feb at Arsenal (A)", detail.Groups[1].Entries[0].Label)
}

func TestStandingsAndTeamDetail(t *testing.T) {
	football := &fakeFootball{
		teams:   map[int]domain.Team{57: {ID: 57, Name: "Arsenal", Venue: "Emirates Stadium", Founded: 1886}},
		table:   []domain.Standing{{Position: 1, Team: domain.Team{ID: 57, Name: "Arsenal"}, PlayedGames: 27, Won: 20, Draw: 4, Lost: 3, Points: 64, GoalDifference: 38}},
		matches: map[int][]domain.Match{57: {arsenalChelsea()}},
	}
	catalog := newTestCatalog(WithFootball(football))

	listing, err := catalog.Standings(context.Background(), " pl ")
	require.NoError(t, err)
	assert.Equal(t, "Standings: PL", listing.Title)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, "1. Arsenal", listing.Items[0].Title)
	assert.Equal(t, "64 pts · P27 W20 D4 L3 · GD +38", listing.Items[0].Subtitle)

	detail, err := catalog.LoadDetail(context.Background(), domain.KindStandings, listing.Items[0])
	require.NoError(t, err)
	assert.Equal(t, "Arsenal · Emirates Stadium · founded 1886", detail.Description)
	require.Len(t, detail.Groups, 2)
	assert.Equal(t, "Upcoming", detail.Groups[0].Name)
	assert.Empty(t, detail.Groups[0].Entries)
	assert.Equal(t, "Results", detail.Groups[1].Name)
	assert.Len(t, detail.Groups[1].Entries, 1)
}

func TestDashboardRequiresTrackedTeams(t *testing.T) {
	_, err := newTestCatalog(WithFootball(&fakeFootball{})).Dashboard(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestDashboardListsTrackedTeamsFromCache(t *testing.T) {
	football := &fakeFootball{teams: map[int]domain.Team{
		57: {ID: 57, Name: "Arsenal"},
		65: {ID: 65, Name: "Manchester City"},
	}}
	catalog := newTestCatalog(WithFootball(football))

	first, err := catalog.Dashboard(context.Background(), []int{65, 57})
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "Manchester City", first.Items[0].Title)

	second, err := catalog.Dashboard(context.Background(), []int{65, 57})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, int32(2), football.calls.Load())
}

func TestWikiRecordsAndSections(t *testing.T) {
	wiki := fakeWiki{records: map[string][]domain.WikiRecord{
		"weapons": {{
			Name:     "Skyward Harp",
			Summary:  "A bow that pierces the clouds.",
			Sections: []domain.WikiSection{{Name: "Refinements", Lines: []string{"R1", "R2"}}},
		}},
	}}
	catalog := newTestCatalog(WithWiki(wiki))

	listing, err := catalog.WikiRecords(context.Background(), "Weapons")
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, []string{"weapons"}, catalog.WikiCategories())

	detail, err := catalog.LoadDetail(context.Background(), domain.KindWiki, listing.Items[0])
	require.NoError(t, err)
	assert.Equal(t, "A bow that pierces the clouds.", detail.Description)
	require.Len(t, detail.Groups, 1)
	assert.Equal(t, []domain.Entry{{Label: "R1"}, {Label: "R2"}}, detail.Groups[0].Entries)
}

func TestWikiUnknownCategoryIsInvalidArgument(t *testing.T) {
	_, err := newTestCatalog(WithWiki(fakeWiki{})).WikiRecords(context.Background(), "artifacts")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestProviderNotConfigured(t *testing.T) {
	_, err := newTestCatalog().LiveMatches(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, errNotConfigured)
}

func TestLoadDetailRejectsMissingMeta(t *testing.T) {
	_, err := newTestCatalog(WithFootball(&fakeFootball{})).LoadDetail(context.Background(), domain.KindLive, domain.Item{Key: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
