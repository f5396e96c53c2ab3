package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingsServiceTrackSavesNewTeam(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything, domain.UserID("alice")).Return(domain.UserSettings{UserID: "alice", TrackedTeams: []int{57}}, nil)
	repo.EXPECT().Save(mock.Anything, domain.UserSettings{UserID: "alice", TrackedTeams: []int{57, 65}}).Return(nil)

	added, err := NewSettingsService(repo).Track(context.Background(), "alice", 65)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestSettingsServiceTrackSkipsSaveWhenAlreadyTracked(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything, domain.UserID("alice")).Return(domain.UserSettings{UserID: "alice", TrackedTeams: []int{65}}, nil)

	added, err := NewSettingsService(repo).Track(context.Background(), "alice", 65)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestSettingsServiceTrackRejectsInvalidTeam(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)

	_, err := NewSettingsService(repo).Track(context.Background(), "alice", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestSettingsServiceSetFeatureFillsUserID(t *testing.T) {
	repo := mocks.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything, domain.UserID("bob")).Return(domain.UserSettings{}, nil)
	repo.EXPECT().Save(mock.Anything, domain.UserSettings{
		UserID:  "bob",
		Toggles: map[domain.Feature]bool{domain.FeatureScores: false},
	}).Return(nil)

	require.NoError(t, NewSettingsService(repo).SetFeature(context.Background(), "bob", domain.FeatureScores, false))
}

func TestSettingsServiceWrapsRepositoryErrors(t *testing.T) {
	boom := errors.New("disk full")

	repo := mocks.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything, domain.UserID("alice")).Return(domain.UserSettings{UserID: "alice"}, nil)
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(boom)

	_, err := NewSettingsService(repo).Untrack(context.Background(), "alice", 65)
	require.NoError(t, err, "nothing to remove means nothing to save")

	_, err = NewSettingsService(repo).Track(context.Background(), "alice", 65)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "save settings")
}
