package chain

import (
	"context"
	"errors"
	"fmt"
	"slices"

	envstore "github.com/bnema/matchday-bot/internal/adapters/secrets/env"
	filestore "github.com/bnema/matchday-bot/internal/adapters/secrets/file"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

// Store reads a provider token from primary, then fallback. Writes land in the first backend that
// accepts them, so a read-only primary sends them to the fallback.
type Store struct {
	primary  ports.TokenStore
	fallback ports.TokenStore
}

var _ ports.TokenStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary token store is nil")
	errNilFallbackStore = errors.New("fallback token store is nil")
)

func NewStore(primary ports.TokenStore, fallback ports.TokenStore) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.TokenStore, fallback ports.TokenStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewEnvFirstWithFileFallback lets operators override stored tokens through the environment.
func NewEnvFirstWithFileFallback(envPrefix string, fileRoot string) (*Store, error) {
	return NewStoreChecked(envstore.NewStore(envPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Token(ctx context.Context, provider domain.Provider) (string, error) {
	token, err := s.primary.Token(ctx, provider)
	if err == nil {
		return token, nil
	}
	if stopsChain(err) {
		return "", err
	}

	fallbackToken, fallbackErr := s.fallback.Token(ctx, provider)
	if fallbackErr == nil {
		return fallbackToken, nil
	}
	if errors.Is(err, ports.ErrTokenNotFound) && errors.Is(fallbackErr, ports.ErrTokenNotFound) {
		return "", fmt.Errorf("%s token: %w", provider, ports.ErrTokenNotFound)
	}

	return "", fmt.Errorf("primary backend read failed: %w; fallback backend read failed: %w", err, fallbackErr)
}

func (s *Store) SetToken(ctx context.Context, provider domain.Provider, token string) error {
	return s.write(func(store ports.TokenStore) error { return store.SetToken(ctx, provider, token) }, "set")
}

func (s *Store) RemoveToken(ctx context.Context, provider domain.Provider) error {
	return s.write(func(store ports.TokenStore) error { return store.RemoveToken(ctx, provider) }, "remove")
}

// Providers merges both backends.
func (s *Store) Providers(ctx context.Context) ([]domain.Provider, error) {
	primary, err := s.primary.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list primary backend: %w", err)
	}
	fallback, err := s.fallback.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fallback backend: %w", err)
	}

	merged := append(slices.Clone(primary), fallback...)
	slices.Sort(merged)
	return slices.Compact(merged), nil
}

func (s *Store) write(op func(ports.TokenStore) error, verb string) error {
	err := op(s.primary)
	if err == nil {
		return nil
	}
	if stopsChain(err) {
		return err
	}

	fallbackErr := op(s.fallback)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", verb, err, verb, fallbackErr)
}

// stopsChain reports errors the fallback cannot fix.
func stopsChain(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, domain.ErrInvalidArgument)
}
