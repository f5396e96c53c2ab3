package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/matchday-bot/internal/adapters/cache/ttl"
	"github.com/bnema/matchday-bot/internal/adapters/catalog"
	"github.com/bnema/matchday-bot/internal/adapters/cooldown"
	"github.com/bnema/matchday-bot/internal/adapters/fetch"
	"github.com/bnema/matchday-bot/internal/adapters/metrics"
	chatrender "github.com/bnema/matchday-bot/internal/adapters/render/chat"
	tomlrepo "github.com/bnema/matchday-bot/internal/adapters/repo/toml"
	chainstore "github.com/bnema/matchday-bot/internal/adapters/secrets/chain"
	"github.com/bnema/matchday-bot/internal/adapters/session"
	"github.com/bnema/matchday-bot/internal/adapters/upstream/football"
	"github.com/bnema/matchday-bot/internal/adapters/upstream/movies"
	"github.com/bnema/matchday-bot/internal/adapters/upstream/wiki"
	"github.com/bnema/matchday-bot/internal/application"
	"github.com/bnema/matchday-bot/internal/config"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	cfg         config.Config
	logger      *zap.Logger
	logLevel    zap.AtomicLevel
	metrics     *metrics.Metrics
	clock       ports.Clock
	catalog     *catalog.Catalog
	sessions    *session.Store
	gate        *cooldown.Gate
	bot         *application.Bot
	credentials *application.Credentials
	render      func(domain.View, chatrender.RenderOptions) (string, error)
}

func wireApp() (*app, error) {
	cfg, v, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("parse %s: %w", config.KeyLogLevel, err)
	}
	logger, err := newLogger(logLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	tokens, err := chainstore.NewEnvFirstWithFileFallback(config.EnvPrefix, cfg.SecretsDir)
	if err != nil {
		return nil, fmt.Errorf("wire token store chain: %w", err)
	}
	credentials := application.NewCredentials(tokens)

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	snapshot, err := wiki.Load(cfg.Wiki.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("load wiki snapshot: %w", err)
	}

	clock := ports.SystemClock{}
	m := metrics.New()
	httpClient := &http.Client{Timeout: cfg.Fetch.Timeout}

	fetcher := fetch.New(fetch.Config{
		MinDelay:   cfg.Fetch.MinDelay,
		BaseDelay:  cfg.Fetch.BaseDelay,
		MaxRetries: cfg.Fetch.MaxRetries,
	}, fetch.WithLogger(logger.Named("fetch")), fetch.WithMetrics(m))

	options := []catalog.Option{
		catalog.WithLogger(logger.Named("catalog")),
		catalog.WithMovies(movies.NewClient(cfg.Movies.BaseURL, httpClient)),
		catalog.WithWiki(snapshot),
	}
	token, err := credentials.Token(context.Background(), domain.ProviderFootball)
	if err != nil {
		return nil, err
	}
	if token != "" {
		options = append(options, catalog.WithFootball(football.NewClient(cfg.Football.BaseURL, token, httpClient)))
	} else {
		logger.Debug("football token not set, football commands are disabled")
	}

	cat := catalog.New(fetcher, catalog.Config{
		QueryTTL:   cfg.Cache.QueryTTL,
		DetailTTL:  cfg.Cache.DetailTTL,
		MatchLimit: cfg.Football.MatchLimit,
		FormLimit:  cfg.Football.FormLimit,
	}, clock, func(name string) ttl.Metrics { return m.Cache(name) }, options...)

	sessions := session.NewStore(cfg.SessionTTL, clock, m)
	gate := cooldown.NewGate(m)
	navigator := application.NewNavigator(sessions, cat, clock, logger.Named("navigator"), m)
	bot := application.NewBot(cat, navigator, application.NewSettingsService(repo), gate, clock, logger.Named("bot"), m, application.BotConfig{
		Cooldowns:   cfg.Cooldowns,
		Competition: cfg.Football.Competition,
	})

	return &app{
		cfg:         cfg,
		logger:      logger,
		logLevel:    logLevel,
		metrics:     m,
		clock:       clock,
		catalog:     cat,
		sessions:    sessions,
		gate:        gate,
		bot:         bot,
		credentials: credentials,
		render:      chatrender.Render,
	}, nil
}

func newLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}
