package football

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/matchday-bot/internal/adapters/upstream/httpjson"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

const (
	DefaultBaseURL = "https://api.football-data.org/v4"
	authHeader     = "X-Auth-Token"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ ports.FootballAPI = (*Client)(nil)

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: baseURL, token: strings.TrimSpace(token), httpClient: httpClient}
}

func (c *Client) Team(ctx context.Context, id int) (domain.Team, error) {
	var payload teamPayload
	if err := c.get(ctx, "/teams/"+strconv.Itoa(id), nil, &payload); err != nil {
		return domain.Team{}, fmt.Errorf("get team %d: %w", id, err)
	}

	return payload.toDomain(), nil
}

func (c *Client) TeamMatches(ctx context.Context, id int, status domain.MatchStatus, limit int) ([]domain.Match, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var payload matchesPayload
	if err := c.get(ctx, "/teams/"+strconv.Itoa(id)+"/matches", query, &payload); err != nil {
		return nil, fmt.Errorf("get team %d matches: %w", id, err)
	}

	return payload.toDomain(), nil
}

func (c *Client) Standings(ctx context.Context, competition string) ([]domain.Standing, error) {
	code := strings.ToUpper(strings.TrimSpace(competition))
	if code == "" {
		return nil, fmt.Errorf("%w: competition code is empty", domain.ErrInvalidArgument)
	}

	var payload standingsPayload
	if err := c.get(ctx, "/competitions/"+url.PathEscape(code)+"/standings", nil, &payload); err != nil {
		return nil, fmt.Errorf("get %s standings: %w", code, err)
	}

	return payload.toDomain(), nil
}

func (c *Client) LiveMatches(ctx context.Context) ([]domain.Match, error) {
	var payload matchesPayload
	if err := c.get(ctx, "/matches", url.Values{"status": []string{"LIVE"}}, &payload); err != nil {
		return nil, fmt.Errorf("get live matches: %w", err)
	}

	return payload.toDomain(), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	header := http.Header{}
	if c.token != "" {
		header.Set(authHeader, c.token)
	}

	return httpjson.Get(ctx, c.httpClient, httpjson.Request{
		BaseURL: c.baseURL,
		Path:    path,
		Query:   query,
		Header:  header,
	}, out)
}
