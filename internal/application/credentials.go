package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

// StoredToken is a provider with a token, safe to print.
type StoredToken struct {
	Provider domain.Provider
	Masked   string
}

// Credentials manages upstream API tokens.
type Credentials struct {
	store ports.TokenStore
}

func NewCredentials(store ports.TokenStore) *Credentials {
	return &Credentials{store: store}
}

// SetToken stores token for the provider named by name and returns the normalised provider.
func (c *Credentials) SetToken(ctx context.Context, name, token string) (domain.Provider, error) {
	provider, err := domain.ParseProvider(name)
	if err != nil {
		return "", err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: token is required", domain.ErrInvalidArgument)
	}

	if err := c.store.SetToken(ctx, provider, token); err != nil {
		return "", fmt.Errorf("store %s token: %w", provider, err)
	}
	return provider, nil
}

func (c *Credentials) RemoveToken(ctx context.Context, name string) error {
	provider, err := domain.ParseProvider(name)
	if err != nil {
		return err
	}

	if err := c.store.RemoveToken(ctx, provider); err != nil {
		return fmt.Errorf("remove %s token: %w", provider, err)
	}
	return nil
}

// Token returns the token of provider, or "" when none is available.
func (c *Credentials) Token(ctx context.Context, provider domain.Provider) (string, error) {
	token, err := c.store.Token(ctx, provider)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read %s token: %w", provider, err)
	}
	return token, nil
}

// List returns every provider that has a token, with the token masked.
func (c *Credentials) List(ctx context.Context) ([]StoredToken, error) {
	providers, err := c.store.Providers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	stored := make([]StoredToken, 0, len(providers))
	for _, provider := range providers {
		token, err := c.Token(ctx, provider)
		if err != nil {
			return nil, err
		}
		if token == "" {
			continue
		}
		stored = append(stored, StoredToken{Provider: provider, Masked: domain.MaskToken(token)})
	}

	return stored, nil
}
