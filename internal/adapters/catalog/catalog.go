package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/matchday-bot/internal/adapters/cache/ttl"
	"github.com/bnema/matchday-bot/internal/adapters/fetch"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultMatchLimit = 20
	DefaultFormLimit  = 5
)

var errNotConfigured = errors.New("provider not configured")

type Config struct {
	// QueryTTL bounds how long list results are reused.
	QueryTTL time.Duration
	// DetailTTL bounds detail pages and per-team match lists.
	DetailTTL time.Duration
	// MatchLimit caps upcoming fixtures per team, FormLimit caps recent results.
	MatchLimit int
	FormLimit  int
}

// CacheMetrics returns the hook a named cache reports to. Nil disables reporting.
type CacheMetrics func(name string) ttl.Metrics

// Catalog maps upstream payloads to session items. Every upstream call goes through the shared
// fetcher and one of its caches.
type Catalog struct {
	football ports.FootballAPI
	movies   ports.MovieCatalog
	wiki     ports.WikiSnapshot

	fetcher *fetch.Fetcher
	cfg     Config
	logger  *zap.Logger

	listings *ttl.Cache[[]domain.Item]
	details  *ttl.Cache[domain.Detail]
	matches  *ttl.Cache[[]domain.Match]
	teams    *ttl.Cache[domain.Team]
}

var _ ports.Catalog = (*Catalog)(nil)

type Option func(*Catalog)

func WithFootball(api ports.FootballAPI) Option {
	return func(c *Catalog) { c.football = api }
}

func WithMovies(movies ports.MovieCatalog) Option {
	return func(c *Catalog) { c.movies = movies }
}

func WithWiki(wiki ports.WikiSnapshot) Option {
	return func(c *Catalog) { c.wiki = wiki }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(fetcher *fetch.Fetcher, cfg Config, clock ports.Clock, metrics CacheMetrics, opts ...Option) *Catalog {
	if cfg.MatchLimit <= 0 {
		cfg.MatchLimit = DefaultMatchLimit
	}
	if cfg.FormLimit <= 0 {
		cfg.FormLimit = DefaultFormLimit
	}

	c := &Catalog{
		fetcher:  fetcher,
		cfg:      cfg,
		logger:   zap.NewNop(),
		listings: newCache[[]domain.Item](cfg.QueryTTL, clock, metrics, "listings"),
		details:  newCache[domain.Detail](cfg.DetailTTL, clock, metrics, "details"),
		matches:  newCache[[]domain.Match](cfg.DetailTTL, clock, metrics, "matches"),
		teams:    newCache[domain.Team](cfg.QueryTTL, clock, metrics, "teams"),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func newCache[T any](ttlValue time.Duration, clock ports.Clock, metrics CacheMetrics, name string) *ttl.Cache[T] {
	opts := []ttl.Option[T]{ttl.WithClock[T](clock)}
	if metrics != nil {
		opts = append(opts, ttl.WithMetrics[T](metrics(name)))
	}
	return ttl.New[T](ttlValue, opts...)
}

// Run sweeps every cache each interval until ctx is done.
func (c *Catalog) Run(ctx context.Context, interval time.Duration) {
	var wg sync.WaitGroup
	for _, run := range []func(context.Context, time.Duration){
		c.listings.Run,
		c.details.Run,
		c.matches.Run,
		c.teams.Run,
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(ctx, interval)
		}()
	}
	wg.Wait()
}

// LoadDetail expands item for the session kind it was listed under.
func (c *Catalog) LoadDetail(ctx context.Context, kind domain.SessionKind, item domain.Item) (domain.Detail, error) {
	switch kind {
	case domain.KindMovies:
		return c.movieDetail(ctx, item)
	case domain.KindFixtures, domain.KindLive:
		return c.matchDetail(ctx, item)
	case domain.KindDashboard, domain.KindStandings:
		return c.teamDetail(ctx, item)
	case domain.KindWiki:
		return c.wikiDetail(ctx, item)
	default:
		return domain.Detail{}, fmt.Errorf("%w: no detail for %q", domain.ErrInvalidArgument, kind)
	}
}

func (c *Catalog) listing(ctx context.Context, kind domain.SessionKind, title, key string, op func(context.Context) ([]domain.Item, error)) (domain.Listing, error) {
	result, err := fetch.Cached(ctx, c.fetcher, c.listings, key, op)
	if err != nil {
		return domain.Listing{}, err
	}

	c.logger.Debug("listing resolved",
		zap.String("key", key),
		zap.Int("items", len(result.Data)),
		zap.Bool("from_cache", result.FromCache),
	)

	return domain.Listing{Kind: kind, Title: title, Items: result.Data, FromCache: result.FromCache}, nil
}

func (c *Catalog) detail(ctx context.Context, key string, op func(context.Context) (domain.Detail, error)) (domain.Detail, error) {
	result, err := fetch.Cached(ctx, c.fetcher, c.details, key, op)
	if err != nil {
		return domain.Detail{}, err
	}

	c.logger.Debug("detail resolved", zap.String("key", key), zap.Bool("from_cache", result.FromCache))
	return result.Data, nil
}

func notConfigured(provider string) error {
	return fmt.Errorf("%w: %s %w", domain.ErrUpstream, provider, errNotConfigured)
}
