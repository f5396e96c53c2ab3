package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

const (
	storeDirMode   = 0o700
	tokenFileMode  = 0o600
	tokenExtension = ".token"
)

// Store keeps one provider token per file, <root>/<provider>.token.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.TokenStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Path returns the file holding the token of provider.
func (s *Store) Path(provider domain.Provider) string {
	return filepath.Join(s.root, provider.String()+tokenExtension)
}

func (s *Store) SetToken(ctx context.Context, provider domain.Provider, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: %s token is empty", domain.ErrInvalidArgument, provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, storeDirMode); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.root, "."+provider.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create %s token file: %w", provider, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s token: %w", provider, err)
	}
	if err := tmp.Chmod(tokenFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s token: %w", provider, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s token: %w", provider, err)
	}

	if err := os.Rename(tmpPath, s.Path(provider)); err != nil {
		return fmt.Errorf("replace %s token: %w", provider, err)
	}

	return nil
}

func (s *Store) Token(ctx context.Context, provider domain.Provider) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := provider.Validate(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(provider))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s token file: %w", provider, ports.ErrTokenNotFound)
		}
		return "", fmt.Errorf("read %s token: %w", provider, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%s token file is empty: %w", provider, ports.ErrTokenNotFound)
	}

	return token, nil
}

func (s *Store) RemoveToken(ctx context.Context, provider domain.Provider) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := provider.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(provider)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s token: %w", provider, err)
	}

	return nil
}

// Providers lists every provider with a token file. Files that do not name a valid provider are ignored.
func (s *Store) Providers(ctx context.Context) ([]domain.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list token directory: %w", err)
	}

	var providers []domain.Provider
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), tokenExtension)
		if !ok || entry.IsDir() {
			continue
		}
		provider := domain.Provider(name)
		if provider.Validate() != nil {
			continue
		}
		providers = append(providers, provider)
	}

	return providers, nil
}
