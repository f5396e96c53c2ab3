package football

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bnema/matchday-bot/internal/adapters/upstream/httpjson"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchesJSON = `{"matches":[
{"id":501,"utcDate":"2026-03-07T15:00:00Z","status":"SCHEDULED","matchday":27,"competition":{"name":"Premier League"},
 "homeTeam":{"id":65,"name":"Manchester City FC","shortName":"Man City","tla":"MCI"},
 "awayTeam":{"id":57,"name":"Arsenal FC","shortName":"Arsenal","tla":"ARS"},
 "score":{"fullTime":{"home":null,"away":null}}},
{"id":502,"utcDate":"2026-02-28T17:30:00Z","status":"FINISHED","matchday":26,"competition":{"name":"Premier League"},
 "homeTeam":{"id":61,"name":"Chelsea FC","shortName":"Chelsea","tla":"CHE"},
 "awayTeam":{"id":65,"name":"Manchester City FC","shortName":"Man City","tla":"MCI"},
 "score":{"fullTime":{"home":1,"away":3}}}
]}`

func TestClientTeamMatchesSendsTokenAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/teams/65/matches", r.URL.Path)
		assert.Equal(t, "SCHEDULED", r.URL.Query().Get("status"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "token-123", r.Header.Get("X-Auth-Token"))
		_, _ = fmt.Fprint(w, matchesJSON)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/v4", "token-123", server.Client())
	matches, err := client.TeamMatches(context.Background(), 65, domain.MatchScheduled, 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	first := matches[0]
	assert.Equal(t, 501, first.ID)
	assert.Equal(t, "Premier League", first.Competition)
	assert.Equal(t, time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC), first.UTCDate)
	assert.Equal(t, "Man City", first.Home.ShortName)
	assert.False(t, first.Score.Known())

	second := matches[1]
	require.True(t, second.Score.Known())
	assert.Equal(t, 1, *second.Score.Home)
	assert.Equal(t, 3, *second.Score.Away)
}

func TestClientStandingsKeepsTotalTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competitions/PL/standings", r.URL.Path)
		_, _ = fmt.Fprint(w, `{"standings":[
{"type":"HOME","table":[{"position":1,"team":{"id":1,"name":"Home Only"},"points":40}]},
{"type":"TOTAL","table":[
 {"position":1,"team":{"id":57,"name":"Arsenal FC","shortName":"Arsenal"},"playedGames":26,"won":18,"draw":5,"lost":3,"points":59,"goalDifference":31},
 {"position":2,"team":{"id":65,"name":"Manchester City FC","shortName":"Man City"},"playedGames":26,"won":17,"draw":5,"lost":4,"points":56,"goalDifference":28}]}]}`)
	}))
	defer server.Close()

	rows, err := NewClient(server.URL, "", server.Client()).Standings(context.Background(), "pl")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Arsenal", rows[0].Team.ShortName)
	assert.Equal(t, 59, rows[0].Points)
}

func TestClientMapsTooManyRequestsToRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "10")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", server.Client()).LiveMatches(context.Background())
	assert.ErrorIs(t, err, ports.ErrRateLimited)
}

func TestClientReturnsStatusErrorOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"team not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", server.Client()).Team(context.Background(), 999)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrRateLimited)

	var statusErr *httpjson.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, err.Error(), "team not found")
}

func TestClientStandingsRequiresCode(t *testing.T) {
	_, err := NewClient("http://unused", "", nil).Standings(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
