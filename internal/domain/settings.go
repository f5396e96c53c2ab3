package domain

import (
	"fmt"
	"slices"
	"strings"
)

type Feature string

const (
	// FeatureCompact hides subtitles on list rows.
	FeatureCompact Feature = "compact"
	// FeatureScores shows final scores in result sub-lists.
	FeatureScores Feature = "scores"
)

var knownFeatures = []Feature{FeatureCompact, FeatureScores}

func ParseFeature(raw string) (Feature, error) {
	feature := Feature(strings.ToLower(strings.TrimSpace(raw)))
	if !slices.Contains(knownFeatures, feature) {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, raw)
	}
	return feature, nil
}

// FeatureDefault is the value used when a user never toggled the feature.
func FeatureDefault(feature Feature) bool {
	return feature == FeatureScores
}

type UserSettings struct {
	UserID       UserID
	TrackedTeams []int
	Toggles      map[Feature]bool
}

func (u UserSettings) Enabled(feature Feature) bool {
	if value, ok := u.Toggles[feature]; ok {
		return value
	}
	return FeatureDefault(feature)
}

// Track adds team once and reports whether it was added.
func (u *UserSettings) Track(team int) bool {
	if slices.Contains(u.TrackedTeams, team) {
		return false
	}
	u.TrackedTeams = append(u.TrackedTeams, team)
	return true
}

func (u *UserSettings) Untrack(team int) bool {
	index := slices.Index(u.TrackedTeams, team)
	if index < 0 {
		return false
	}
	u.TrackedTeams = slices.Delete(u.TrackedTeams, index, index+1)
	return true
}

func (u *UserSettings) SetFeature(feature Feature, enabled bool) {
	if u.Toggles == nil {
		u.Toggles = map[Feature]bool{}
	}
	u.Toggles[feature] = enabled
}
