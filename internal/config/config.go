// Package config loads the bot configuration from config.toml and MATCHDAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/matchday-bot/internal/application"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "MATCHDAY"
	configDir  = ".config/matchday"
	configName = "config"
	configType = "toml"
)

const (
	KeyFootballBaseURL   = "football.base_url"
	KeyCompetition       = "football.competition"
	KeyMatchLimit        = "football.match_limit"
	KeyFormLimit         = "football.form_limit"
	KeyMoviesBaseURL     = "movies.base_url"
	KeyWikiSnapshotPath  = "wiki.snapshot_path"
	KeyStatePath         = "state.path"
	KeySecretsDir        = "secrets.dir"
	KeyFetchMinDelay     = "fetch.min_delay"
	KeyFetchBaseDelay    = "fetch.base_delay"
	KeyFetchMaxRetries   = "fetch.max_retries"
	KeyFetchTimeout      = "fetch.timeout"
	KeyCacheQueryTTL     = "cache.query_ttl"
	KeyCacheDetailTTL    = "cache.detail_ttl"
	KeyCacheSweep        = "cache.sweep_interval"
	KeySessionTTL        = "session.ttl"
	KeyLogLevel          = "log.level"
	KeyMetricsAddr       = "metrics.addr"
	cooldownKeyPrefix    = "cooldown."
	defaultFootballURL   = "https://api.football-data.org/v4"
	defaultMoviesURL     = "https://ophim1.com"
	defaultWikiSnapshot  = "wiki.yaml"
	defaultSecretsSubdir = "secrets"
)

type Config struct {
	Football FootballConfig
	Movies   MoviesConfig
	Wiki     WikiConfig
	Fetch    FetchConfig
	Cache    CacheConfig

	StatePath   string
	SecretsDir  string
	SessionTTL  time.Duration
	Cooldowns   map[string]time.Duration
	LogLevel    string
	MetricsAddr string
}

type FootballConfig struct {
	BaseURL     string
	Competition string
	MatchLimit  int
	FormLimit   int
}

type MoviesConfig struct {
	BaseURL string
}

type WikiConfig struct {
	SnapshotPath string
}

type FetchConfig struct {
	MinDelay   time.Duration
	BaseDelay  time.Duration
	MaxRetries int
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
}

type CacheConfig struct {
	QueryTTL      time.Duration
	DetailTTL     time.Duration
	SweepInterval time.Duration
}

// Dir returns ~/.config/matchday.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir), nil
}

// NewViper returns a viper instance with every default set, reading config.toml from dir when it
// exists. An empty dir means Dir().
func NewViper(dir string) (*viper.Viper, error) {
	if dir == "" {
		var err error
		if dir, err = Dir(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyFootballBaseURL, defaultFootballURL)
	v.SetDefault(KeyCompetition, application.DefaultCompetition)
	v.SetDefault(KeyMatchLimit, 20)
	v.SetDefault(KeyFormLimit, 5)
	v.SetDefault(KeyMoviesBaseURL, defaultMoviesURL)
	v.SetDefault(KeyWikiSnapshotPath, filepath.Join(dir, defaultWikiSnapshot))
	v.SetDefault(KeyStatePath, filepath.Join(dir, "settings.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(dir, defaultSecretsSubdir))
	v.SetDefault(KeyFetchMinDelay, 250*time.Millisecond)
	v.SetDefault(KeyFetchBaseDelay, time.Second)
	v.SetDefault(KeyFetchMaxRetries, 3)
	v.SetDefault(KeyFetchTimeout, 10*time.Second)
	v.SetDefault(KeyCacheQueryTTL, 5*time.Minute)
	v.SetDefault(KeyCacheDetailTTL, 30*time.Minute)
	v.SetDefault(KeyCacheSweep, time.Minute)
	v.SetDefault(KeySessionTTL, 10*time.Minute)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMetricsAddr, "")
	for class, window := range application.DefaultCooldowns {
		v.SetDefault(cooldownKeyPrefix+class, window)
	}
}

// Decode reads every known key out of v.
func Decode(v *viper.Viper) (Config, error) {
	cfg := Config{
		Football: FootballConfig{
			BaseURL:     v.GetString(KeyFootballBaseURL),
			Competition: strings.ToUpper(v.GetString(KeyCompetition)),
			MatchLimit:  v.GetInt(KeyMatchLimit),
			FormLimit:   v.GetInt(KeyFormLimit),
		},
		Movies: MoviesConfig{BaseURL: v.GetString(KeyMoviesBaseURL)},
		Wiki:   WikiConfig{SnapshotPath: v.GetString(KeyWikiSnapshotPath)},
		Fetch: FetchConfig{
			MinDelay:   v.GetDuration(KeyFetchMinDelay),
			BaseDelay:  v.GetDuration(KeyFetchBaseDelay),
			MaxRetries: v.GetInt(KeyFetchMaxRetries),
			Timeout:    v.GetDuration(KeyFetchTimeout),
		},
		Cache: CacheConfig{
			QueryTTL:      v.GetDuration(KeyCacheQueryTTL),
			DetailTTL:     v.GetDuration(KeyCacheDetailTTL),
			SweepInterval: v.GetDuration(KeyCacheSweep),
		},
		StatePath:   v.GetString(KeyStatePath),
		SecretsDir:  v.GetString(KeySecretsDir),
		SessionTTL:  v.GetDuration(KeySessionTTL),
		Cooldowns:   map[string]time.Duration{},
		LogLevel:    v.GetString(KeyLogLevel),
		MetricsAddr: v.GetString(KeyMetricsAddr),
	}

	for class := range application.DefaultCooldowns {
		window := v.GetDuration(cooldownKeyPrefix + class)
		if window < 0 {
			return Config{}, fmt.Errorf("%s%s must not be negative", cooldownKeyPrefix, class)
		}
		cfg.Cooldowns[class] = window
	}

	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %s", KeySessionTTL, cfg.SessionTTL)
	}
	if cfg.Cache.QueryTTL < 0 || cfg.Cache.DetailTTL < 0 {
		return Config{}, errors.New("cache ttls must not be negative")
	}
	if cfg.Fetch.MaxRetries < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", KeyFetchMaxRetries)
	}

	return cfg, nil
}

// Load is NewViper followed by Decode. It also returns the viper instance for adapters configured
// straight from it.
func Load(dir string) (Config, *viper.Viper, error) {
	v, err := NewViper(dir)
	if err != nil {
		return Config{}, nil, err
	}

	cfg, err := Decode(v)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, v, nil
}
