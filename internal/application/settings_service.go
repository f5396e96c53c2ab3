package application

import (
	"context"
	"fmt"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

type SettingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context, user domain.UserID) (domain.UserSettings, error) {
	settings, err := s.repo.Get(ctx, user)
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// Track adds team to the user's dashboard. It reports false when the team was already tracked.
func (s *SettingsService) Track(ctx context.Context, user domain.UserID, team int) (bool, error) {
	if team <= 0 {
		return false, fmt.Errorf("%w: team id must be positive", domain.ErrInvalidArgument)
	}

	return s.update(ctx, user, func(settings *domain.UserSettings) bool {
		return settings.Track(team)
	})
}

func (s *SettingsService) Untrack(ctx context.Context, user domain.UserID, team int) (bool, error) {
	return s.update(ctx, user, func(settings *domain.UserSettings) bool {
		return settings.Untrack(team)
	})
}

func (s *SettingsService) SetFeature(ctx context.Context, user domain.UserID, feature domain.Feature, enabled bool) error {
	_, err := s.update(ctx, user, func(settings *domain.UserSettings) bool {
		settings.SetFeature(feature, enabled)
		return true
	})
	return err
}

func (s *SettingsService) update(ctx context.Context, user domain.UserID, mutate func(*domain.UserSettings) bool) (bool, error) {
	settings, err := s.Get(ctx, user)
	if err != nil {
		return false, err
	}
	settings.UserID = user

	if !mutate(&settings) {
		return false, nil
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return false, fmt.Errorf("save settings: %w", err)
	}
	return true, nil
}
