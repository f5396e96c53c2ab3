package ports

import (
	"context"
	"errors"

	"github.com/bnema/matchday-bot/internal/domain"
)

// ErrRateLimited is returned by upstream clients when the remote answered 429. Only the fetcher
// inspects it.
var ErrRateLimited = errors.New("upstream rate limited")

type FootballAPI interface {
	Team(ctx context.Context, id int) (domain.Team, error)
	TeamMatches(ctx context.Context, id int, status domain.MatchStatus, limit int) ([]domain.Match, error)
	Standings(ctx context.Context, competition string) ([]domain.Standing, error)
	LiveMatches(ctx context.Context) ([]domain.Match, error)
}

type MovieCatalog interface {
	Search(ctx context.Context, query string) ([]domain.Movie, error)
	Movie(ctx context.Context, slug string) (domain.Movie, error)
}

type WikiSnapshot interface {
	Categories() []string
	Records(ctx context.Context, category string) ([]domain.WikiRecord, error)
}

// DetailLoader expands a listed item on demand.
type DetailLoader interface {
	LoadDetail(ctx context.Context, kind domain.SessionKind, item domain.Item) (domain.Detail, error)
}

// Catalog produces listings for every list command. Implementations go through the cache and the
// rate-limited fetcher; errors are domain.ErrUpstream or domain.ErrInvalidArgument.
type Catalog interface {
	DetailLoader
	SearchMovies(ctx context.Context, query string) (domain.Listing, error)
	TeamFixtures(ctx context.Context, teamID int) (domain.Listing, error)
	Standings(ctx context.Context, competition string) (domain.Listing, error)
	LiveMatches(ctx context.Context) (domain.Listing, error)
	Dashboard(ctx context.Context, teamIDs []int) (domain.Listing, error)
	WikiRecords(ctx context.Context, category string) (domain.Listing, error)
	WikiCategories() []string
}
