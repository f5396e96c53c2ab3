package chain

import (
	"context"
	"errors"
	"testing"

	envstore "github.com/bnema/matchday-bot/internal/adapters/secrets/env"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	portmocks "github.com/bnema/matchday-bot/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const football = domain.ProviderFootball

func newMockedStore(t *testing.T) (*Store, *portmocks.MockTokenStore, *portmocks.MockTokenStore) {
	t.Helper()

	primary := portmocks.NewMockTokenStore(t)
	fallback := portmocks.NewMockTokenStore(t)
	return NewStore(primary, fallback), primary, fallback
}

func TestStoreTokenUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newMockedStore(t)
	primary.EXPECT().Token(mock.Anything, football).Return("from-env", nil).Once()

	value, err := store.Token(context.Background(), football)
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)
}

func TestStoreTokenFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newMockedStore(t)
	primary.EXPECT().Token(mock.Anything, football).Return("", ports.ErrTokenNotFound).Once()
	fallback.EXPECT().Token(mock.Anything, football).Return("from-file", nil).Once()

	value, err := store.Token(context.Background(), football)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreTokenReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newMockedStore(t)
	primary.EXPECT().Token(mock.Anything, football).Return("", errors.New("env failed")).Once()
	fallback.EXPECT().Token(mock.Anything, football).Return("", errors.New("file failed")).Once()

	_, err := store.Token(context.Background(), football)
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend read failed: env failed")
	assert.ErrorContains(t, err, "fallback backend read failed: file failed")
}

func TestStoreTokenReportsNotFoundWhenNeitherBackendHasOne(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newMockedStore(t)
	primary.EXPECT().Token(mock.Anything, football).Return("", ports.ErrTokenNotFound).Once()
	fallback.EXPECT().Token(mock.Anything, football).Return("", ports.ErrTokenNotFound).Once()

	_, err := store.Token(context.Background(), football)
	require.ErrorIs(t, err, ports.ErrTokenNotFound)
}

func TestStoreTokenStopsOnCanceledContextAndInvalidProvider(t *testing.T) {
	t.Parallel()

	for _, stop := range []error{context.Canceled, domain.ErrInvalidArgument} {
		store, primary, _ := newMockedStore(t)
		primary.EXPECT().Token(mock.Anything, football).Return("", stop).Once()

		_, err := store.Token(context.Background(), football)
		require.ErrorIs(t, err, stop)
	}
}

func TestStoreSetTokenFallsBackWhenPrimaryIsReadOnly(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newMockedStore(t)
	primary.EXPECT().SetToken(mock.Anything, football, "secret").Return(envstore.ErrReadOnly).Once()
	fallback.EXPECT().SetToken(mock.Anything, football, "secret").Return(nil).Once()

	require.NoError(t, store.SetToken(context.Background(), football, "secret"))
}

func TestStoreSetTokenDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newMockedStore(t)
	primary.EXPECT().SetToken(mock.Anything, football, "secret").Return(nil).Once()

	require.NoError(t, store.SetToken(context.Background(), football, "secret"))
}

func TestStoreRemoveTokenReportsBothFailures(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newMockedStore(t)
	primary.EXPECT().RemoveToken(mock.Anything, football).Return(envstore.ErrReadOnly).Once()
	fallback.EXPECT().RemoveToken(mock.Anything, football).Return(errors.New("disk full")).Once()

	err := store.RemoveToken(context.Background(), football)
	require.ErrorIs(t, err, envstore.ErrReadOnly)
	assert.ErrorContains(t, err, "fallback backend remove failed: disk full")
}

func TestStoreProvidersMergesBackends(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newMockedStore(t)
	primary.EXPECT().Providers(mock.Anything).Return([]domain.Provider{"movies", football}, nil).Once()
	fallback.EXPECT().Providers(mock.Anything).Return([]domain.Provider{football, "wiki"}, nil).Once()

	providers, err := store.Providers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Provider{football, "movies", "wiki"}, providers)
}

func TestEnvFirstWithFileFallbackPrefersEnvironment(t *testing.T) {
	store, err := NewEnvFirstWithFileFallback("MATCHDAY", t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SetToken(context.Background(), football, "from-file"))

	value, err := store.Token(context.Background(), football)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)

	t.Setenv("MATCHDAY_PROVIDERS_FOOTBALL_TOKEN", "from-env")
	value, err = store.Token(context.Background(), football)
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	require.NoError(t, store.RemoveToken(context.Background(), football))
	value, err = store.Token(context.Background(), football)
	require.NoError(t, err)
	assert.Equal(t, "from-env", value, "the environment still provides a token")
}
