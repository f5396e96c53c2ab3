package fetch

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultMinDelay   = 250 * time.Millisecond
	DefaultBaseDelay  = time.Second
	DefaultMaxRetries = 3
)

type Config struct {
	// MinDelay is the minimum gap between two upstream calls, process wide.
	MinDelay   time.Duration
	BaseDelay  time.Duration
	MaxRetries int
}

type Metrics interface {
	Retry()
	Failure()
}

type NoopMetrics struct{}

func (NoopMetrics) Retry()   {}
func (NoopMetrics) Failure() {}

// Fetcher gates outbound calls behind a throttle and retries rate-limited ones with exponential backoff.
type Fetcher struct {
	limiter    *rate.Limiter
	baseDelay  time.Duration
	maxRetries int

	jitter  func(limit time.Duration) time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
	logger  *zap.Logger
	metrics Metrics

	group singleflight.Group
}

type Option func(*Fetcher)

func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func WithMetrics(metrics Metrics) Option {
	return func(f *Fetcher) {
		if metrics != nil {
			f.metrics = metrics
		}
	}
}

// WithSleep replaces the backoff wait. Tests use it to record delays instead of waiting.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

func WithJitter(jitter func(limit time.Duration) time.Duration) Option {
	return func(f *Fetcher) {
		if jitter != nil {
			f.jitter = jitter
		}
	}
}

func New(cfg Config, opts ...Option) *Fetcher {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	limit := rate.Inf
	if cfg.MinDelay > 0 {
		limit = rate.Every(cfg.MinDelay)
	}

	f := &Fetcher{
		limiter:    rate.NewLimiter(limit, 1),
		baseDelay:  cfg.BaseDelay,
		maxRetries: cfg.MaxRetries,
		jitter:     randomJitter,
		sleep:      sleepContext,
		logger:     zap.NewNop(),
		metrics:    NoopMetrics{},
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Delay returns the wait before attempt (attempt >= 2): baseDelay*2^(attempt-1) plus jitter below baseDelay.
func (f *Fetcher) Delay(attempt int) time.Duration {
	if attempt < 2 {
		return 0
	}

	return f.baseDelay*time.Duration(1<<(attempt-1)) + f.jitter(f.baseDelay)
}

// Do runs op through the throttle and retries it while it reports ports.ErrRateLimited. Every failure is
// returned wrapped in domain.ErrUpstream; the rate-limit signal itself is not exposed.
func Do[T any](ctx context.Context, f *Fetcher, op func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= f.maxRetries+1; attempt++ {
		if attempt > 1 {
			delay := f.Delay(attempt)
			f.metrics.Retry()
			f.logger.Warn("upstream rate limited, backing off",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := f.sleep(ctx, delay); err != nil {
				return zero, err
			}
		}

		if err := f.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return zero, ctxErr
			}
			return zero, fmt.Errorf("wait for throttle: %w", err)
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		if !errors.Is(err, ports.ErrRateLimited) {
			f.metrics.Failure()
			return zero, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
		}

		lastErr = err
	}

	f.metrics.Failure()
	return zero, fmt.Errorf("%w: gave up after %d retries: %v", domain.ErrUpstream, f.maxRetries, lastErr)
}

func randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return rand.N(limit)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
