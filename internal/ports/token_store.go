package ports

import (
	"context"
	"errors"

	"github.com/bnema/matchday-bot/internal/domain"
)

var ErrTokenNotFound = errors.New("provider token not found")

// TokenStore keeps the API tokens of upstream providers.
type TokenStore interface {
	Token(ctx context.Context, provider domain.Provider) (string, error)
	SetToken(ctx context.Context, provider domain.Provider, token string) error
	RemoveToken(ctx context.Context, provider domain.Provider) error
	// Providers lists the providers that currently have a token, sorted by name.
	Providers(ctx context.Context) ([]domain.Provider, error)
}
