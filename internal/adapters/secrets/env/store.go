package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

// ErrReadOnly is returned by writes. Environment tokens are managed outside the process.
var ErrReadOnly = errors.New("environment token store is read-only")

const (
	providersSegment = "PROVIDERS_"
	tokenSuffix      = "_TOKEN"
)

// Store resolves provider tokens from environment variables. The football provider maps to
// PREFIX_PROVIDERS_FOOTBALL_TOKEN; dashes in provider names become underscores.
type Store struct {
	prefix  string
	lookup  func(string) (string, bool)
	environ func() []string
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(prefix string) *Store {
	return &Store{
		prefix:  strings.ToUpper(strings.TrimSpace(prefix)),
		lookup:  os.LookupEnv,
		environ: os.Environ,
	}
}

// VariableName returns the environment variable consulted for provider.
func (s *Store) VariableName(provider domain.Provider) string {
	return s.variablePrefix() + strings.ToUpper(strings.ReplaceAll(provider.String(), "-", "_")) + tokenSuffix
}

func (s *Store) variablePrefix() string {
	if s.prefix == "" {
		return providersSegment
	}
	return s.prefix + "_" + providersSegment
}

func (s *Store) Token(ctx context.Context, provider domain.Provider) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := provider.Validate(); err != nil {
		return "", err
	}

	name := s.VariableName(provider)
	value, ok := s.lookup(name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", fmt.Errorf("environment variable %s: %w", name, ports.ErrTokenNotFound)
	}

	return value, nil
}

func (s *Store) SetToken(ctx context.Context, provider domain.Provider, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("set %s: %w", s.VariableName(provider), ErrReadOnly)
}

func (s *Store) RemoveToken(ctx context.Context, provider domain.Provider) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("remove %s: %w", s.VariableName(provider), ErrReadOnly)
}

// Providers lists providers whose variable is set to a non-blank value.
func (s *Store) Providers(ctx context.Context) ([]domain.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := s.variablePrefix()
	var providers []domain.Provider
	for _, pair := range s.environ() {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		middle, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		middle, ok = strings.CutSuffix(middle, tokenSuffix)
		if !ok {
			continue
		}

		provider := domain.Provider(strings.ToLower(strings.ReplaceAll(middle, "_", "-")))
		if provider.Validate() != nil {
			continue
		}
		providers = append(providers, provider)
	}

	slices.Sort(providers)
	return slices.Compact(providers), nil
}
