package ports

import (
	"context"

	"github.com/bnema/matchday-bot/internal/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context, user domain.UserID) (domain.UserSettings, error)
	Save(ctx context.Context, settings domain.UserSettings) error
}
