package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cooldown classes. Each class has its own per-user window.
const (
	ClassDashboard   = "dashboard"
	ClassFixtures    = "fixtures-lookup"
	ClassStandings   = "standings"
	ClassLive        = "live"
	ClassMovieSearch = "movie-search"
	ClassWiki        = "wiki"
)

// DefaultCooldowns are the windows used for classes missing from BotConfig.Cooldowns.
var DefaultCooldowns = map[string]time.Duration{
	ClassDashboard:   60 * time.Second,
	ClassFixtures:    30 * time.Second,
	ClassStandings:   30 * time.Second,
	ClassLive:        15 * time.Second,
	ClassMovieSearch: 10 * time.Second,
	ClassWiki:        5 * time.Second,
}

const DefaultCompetition = "PL"

const upstreamUnavailable = "The data source is not answering right now. Try again later."

type BotConfig struct {
	Cooldowns map[string]time.Duration
	// Competition is used by "standings" without an argument.
	Competition string
}

// Reply is the answer to a command. SessionID is zero when the view has no navigation session.
type Reply struct {
	View      domain.View
	SessionID domain.SessionID
	ExpiresAt time.Time
}

// Bot turns chat invocations and button presses into views.
type Bot struct {
	catalog   ports.Catalog
	navigator *Navigator
	settings  *SettingsService
	gate      ports.CooldownGate
	clock     ports.Clock
	logger    *zap.Logger
	metrics   Metrics
	cfg       BotConfig
}

func NewBot(catalog ports.Catalog, navigator *Navigator, settings *SettingsService, gate ports.CooldownGate, clock ports.Clock, logger *zap.Logger, metrics Metrics, cfg BotConfig) *Bot {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if cfg.Competition == "" {
		cfg.Competition = DefaultCompetition
	}

	windows := make(map[string]time.Duration, len(DefaultCooldowns))
	for class, window := range DefaultCooldowns {
		windows[class] = window
	}
	for class, window := range cfg.Cooldowns {
		windows[class] = window
	}
	cfg.Cooldowns = windows

	return &Bot{
		catalog:   catalog,
		navigator: navigator,
		settings:  settings,
		gate:      gate,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
		cfg:       cfg,
	}
}

type listRunner func(ctx context.Context) (domain.Listing, error)

type listCommand struct {
	class string
	// parse validates arguments before the cooldown is consumed.
	parse func(args []string, settings domain.UserSettings) (listRunner, error)
}

// HandleCommand answers one invocation. Expected failures (bad input, cooldown, upstream outage)
// become notice views; only internal failures such as an unwritable settings file are errors.
func (b *Bot) HandleCommand(ctx context.Context, inv domain.Invocation) (Reply, error) {
	command := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(inv.Command), "/"))
	logger := b.logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("command", command),
		zap.String("user", string(inv.InvokerID)),
	)

	reply, err := b.dispatch(ctx, command, inv)
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCooldownActive):
		result = "cooldown"
		var cooldown *domain.CooldownError
		wait := 0
		if errors.As(err, &cooldown) {
			wait = domain.RoundUpSeconds(cooldown.RetryAfter)
		}
		reply, err = Reply{View: domain.Notice("Slow down", fmt.Sprintf("Please wait %ds before using /%s again.", wait, command))}, nil
	case errors.Is(err, domain.ErrUnknownCommand):
		result = "unknown"
		reply, err = Reply{View: domain.Notice("Unknown command", fmt.Sprintf("/%s is not a command. Try /help.", command))}, nil
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUnknownFeature):
		result = "invalid"
		reply, err = Reply{View: domain.Notice("Invalid input", userMessage(err))}, nil
	case errors.Is(err, domain.ErrUpstream):
		result = "upstream"
		logger.Warn("upstream failure", zap.Error(err))
		reply, err = Reply{View: domain.Notice("Unavailable", upstreamUnavailable)}, nil
	default:
		result = "error"
		logger.Error("command failed", zap.Error(err))
	}

	b.metrics.Command(command, result)
	logger.Debug("command handled", zap.String("result", result), zap.Uint64("session_id", uint64(reply.SessionID)))
	return reply, err
}

func (b *Bot) dispatch(ctx context.Context, command string, inv domain.Invocation) (Reply, error) {
	switch command {
	case "help", "":
		return Reply{View: helpView()}, nil
	case "track":
		return b.track(ctx, inv)
	case "toggle":
		return b.toggle(ctx, inv)
	}

	list, ok := b.listCommands()[command]
	if !ok {
		return Reply{}, domain.ErrUnknownCommand
	}

	settings, err := b.settings.Get(ctx, inv.InvokerID)
	if err != nil {
		return Reply{}, err
	}

	run, err := list.parse(inv.Args, settings)
	if err != nil {
		return Reply{}, err
	}

	admission := b.gate.TryAdmit(list.class, string(inv.InvokerID), b.cfg.Cooldowns[list.class], b.clock.Now())
	if !admission.Admitted {
		return Reply{}, &domain.CooldownError{Class: list.class, RetryAfter: admission.RetryAfter}
	}

	listing, err := run(ctx)
	if err != nil {
		return Reply{}, err
	}

	view, session := b.navigator.Start(inv.InvokerID, listing, domain.DisplayFor(settings))
	return Reply{View: view, SessionID: session.ID, ExpiresAt: session.ExpiresAt}, nil
}

func (b *Bot) listCommands() map[string]listCommand {
	movie := listCommand{class: ClassMovieSearch, parse: func(args []string, _ domain.UserSettings) (listRunner, error) {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return nil, fmt.Errorf("%w: usage: /movie <title>", domain.ErrInvalidArgument)
		}
		return func(ctx context.Context) (domain.Listing, error) {
			return b.catalog.SearchMovies(ctx, query)
		}, nil
	}}

	return map[string]listCommand{
		"movie":  movie,
		"movies": movie,
		"fixtures": {class: ClassFixtures, parse: func(args []string, _ domain.UserSettings) (listRunner, error) {
			teamID, err := teamArg(args, "/fixtures <team-id>")
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (domain.Listing, error) {
				return b.catalog.TeamFixtures(ctx, teamID)
			}, nil
		}},
		"standings": {class: ClassStandings, parse: func(args []string, _ domain.UserSettings) (listRunner, error) {
			competition := b.cfg.Competition
			if len(args) > 0 {
				competition = args[0]
			}
			return func(ctx context.Context) (domain.Listing, error) {
				return b.catalog.Standings(ctx, competition)
			}, nil
		}},
		"live": {class: ClassLive, parse: func([]string, domain.UserSettings) (listRunner, error) {
			return func(ctx context.Context) (domain.Listing, error) {
				return b.catalog.LiveMatches(ctx)
			}, nil
		}},
		"dashboard": {class: ClassDashboard, parse: func(_ []string, settings domain.UserSettings) (listRunner, error) {
			if len(settings.TrackedTeams) == 0 {
				return nil, fmt.Errorf("%w: no tracked teams yet, add one with /track add <team-id>", domain.ErrInvalidArgument)
			}
			teams := settings.TrackedTeams
			return func(ctx context.Context) (domain.Listing, error) {
				return b.catalog.Dashboard(ctx, teams)
			}, nil
		}},
		"wiki": {class: ClassWiki, parse: func(args []string, _ domain.UserSettings) (listRunner, error) {
			if len(args) == 0 {
				categories := b.catalog.WikiCategories()
				if len(categories) == 0 {
					return nil, fmt.Errorf("%w: the wiki snapshot is empty", domain.ErrInvalidArgument)
				}
				return nil, fmt.Errorf("%w: usage: /wiki <category>, one of %s", domain.ErrInvalidArgument, strings.Join(categories, ", "))
			}
			category := strings.Join(args, " ")
			return func(ctx context.Context) (domain.Listing, error) {
				return b.catalog.WikiRecords(ctx, category)
			}, nil
		}},
	}
}

func (b *Bot) track(ctx context.Context, inv domain.Invocation) (Reply, error) {
	if len(inv.Args) == 0 {
		return Reply{}, fmt.Errorf("%w: usage: /track add|remove <team-id> or /track list", domain.ErrInvalidArgument)
	}

	switch strings.ToLower(inv.Args[0]) {
	case "list":
		settings, err := b.settings.Get(ctx, inv.InvokerID)
		if err != nil {
			return Reply{}, err
		}
		if len(settings.TrackedTeams) == 0 {
			return Reply{View: domain.Notice("Tracked teams", "You are not tracking any team.")}, nil
		}
		teams := make([]string, 0, len(settings.TrackedTeams))
		for _, team := range settings.TrackedTeams {
			teams = append(teams, strconv.Itoa(team))
		}
		return Reply{View: domain.Notice("Tracked teams", strings.Join(teams, ", "))}, nil
	case "add":
		teamID, err := teamArg(inv.Args[1:], "/track add <team-id>")
		if err != nil {
			return Reply{}, err
		}
		added, err := b.settings.Track(ctx, inv.InvokerID, teamID)
		if err != nil {
			return Reply{}, err
		}
		if !added {
			return Reply{View: domain.Notice("Tracked teams", fmt.Sprintf("Team %d is already tracked.", teamID))}, nil
		}
		return Reply{View: domain.Notice("Tracked teams", fmt.Sprintf("Team %d added to your dashboard.", teamID))}, nil
	case "remove":
		teamID, err := teamArg(inv.Args[1:], "/track remove <team-id>")
		if err != nil {
			return Reply{}, err
		}
		removed, err := b.settings.Untrack(ctx, inv.InvokerID, teamID)
		if err != nil {
			return Reply{}, err
		}
		if !removed {
			return Reply{View: domain.Notice("Tracked teams", fmt.Sprintf("Team %d was not tracked.", teamID))}, nil
		}
		return Reply{View: domain.Notice("Tracked teams", fmt.Sprintf("Team %d removed from your dashboard.", teamID))}, nil
	default:
		return Reply{}, fmt.Errorf("%w: unknown track action %q", domain.ErrInvalidArgument, inv.Args[0])
	}
}

func (b *Bot) toggle(ctx context.Context, inv domain.Invocation) (Reply, error) {
	if len(inv.Args) != 2 {
		return Reply{}, fmt.Errorf("%w: usage: /toggle <feature> on|off", domain.ErrInvalidArgument)
	}

	feature, err := domain.ParseFeature(inv.Args[0])
	if err != nil {
		return Reply{}, err
	}
	enabled, err := parseSwitch(inv.Args[1])
	if err != nil {
		return Reply{}, err
	}

	if err := b.settings.SetFeature(ctx, inv.InvokerID, feature, enabled); err != nil {
		return Reply{}, err
	}

	state := "off"
	if enabled {
		state = "on"
	}
	return Reply{View: domain.Notice("Settings", fmt.Sprintf("%s is now %s.", feature, state))}, nil
}

// HandleCallback applies a pressed control. It returns false when the screen must stay as it is:
// the control was foreign, stale, expired, tampered with, or the request failed without a view.
func (b *Bot) HandleCallback(ctx context.Context, cb domain.Callback) (domain.View, bool) {
	view, _, err := b.navigator.Handle(ctx, cb)
	switch {
	case err == nil:
		return view, true
	case domain.IsNavigationRejection(err):
		b.logger.Debug("callback rejected", zap.String("user", string(cb.InvokerID)), zap.Error(err))
		return domain.View{}, false
	case view.Title != "":
		b.logger.Warn("callback failed", zap.String("user", string(cb.InvokerID)), zap.Error(err))
		return view, true
	default:
		b.logger.Warn("callback failed", zap.String("user", string(cb.InvokerID)), zap.Error(err))
		return domain.View{}, false
	}
}

// CloseSession drops a session whose listener timed out.
func (b *Bot) CloseSession(id domain.SessionID) {
	b.navigator.Expire(id)
}

func helpView() domain.View {
	commands := []string{
		"/movie <title>: search the movie catalog",
		"/fixtures <team-id>: upcoming fixtures of a team",
		"/standings [competition]: league table",
		"/live: matches in play",
		"/dashboard: your tracked teams",
		"/wiki <category>: game wiki records",
		"/track add|remove <team-id>, /track list",
		"/toggle <feature> on|off",
	}
	sort.Strings(commands)
	return domain.View{Title: "Commands", Lines: commands}
}

func teamArg(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: usage: %s", domain.ErrInvalidArgument, usage)
	}
	teamID, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || teamID <= 0 {
		return 0, fmt.Errorf("%w: %q is not a team id", domain.ErrInvalidArgument, args[0])
	}
	return teamID, nil
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidArgument, raw)
	}
}

// userMessage strips the sentinel prefix from an input error.
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrUpstream, domain.ErrInvalidArgument} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}
