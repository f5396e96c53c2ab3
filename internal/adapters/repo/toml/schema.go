package toml

import (
	"fmt"
	"sort"

	"github.com/bnema/matchday-bot/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int          `toml:"version"`
	Users   []userSchema `toml:"users"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type userSchema struct {
	ID           string          `toml:"id"`
	TrackedTeams []int           `toml:"tracked_teams"`
	Toggles      map[string]bool `toml:"toggles,omitempty"`
}

func toSchema(settings domain.UserSettings) userSchema {
	var toggles map[string]bool
	if len(settings.Toggles) > 0 {
		toggles = make(map[string]bool, len(settings.Toggles))
		for feature, enabled := range settings.Toggles {
			toggles[string(feature)] = enabled
		}
	}

	tracked := append([]int{}, settings.TrackedTeams...)

	return userSchema{
		ID:           string(settings.UserID),
		TrackedTeams: tracked,
		Toggles:      toggles,
	}
}

func fromSchema(user userSchema) domain.UserSettings {
	settings := domain.UserSettings{
		UserID:       domain.UserID(user.ID),
		TrackedTeams: append([]int{}, user.TrackedTeams...),
	}

	if len(user.Toggles) > 0 {
		settings.Toggles = make(map[domain.Feature]bool, len(user.Toggles))
		for feature, enabled := range user.Toggles {
			settings.Toggles[domain.Feature(feature)] = enabled
		}
	}

	return settings
}

func sortUsers(users []userSchema) {
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
}
