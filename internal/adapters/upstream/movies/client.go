package movies

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/matchday-bot/internal/adapters/upstream/httpjson"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
)

const DefaultBaseURL = "https://ophim1.com"

type moviePayload struct {
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	OriginName     string `json:"origin_name"`
	Content        string `json:"content"`
	Year           int    `json:"year"`
	Quality        string `json:"quality"`
	Lang           string `json:"lang"`
	EpisodeCurrent string `json:"episode_current"`
}

type searchPayload struct {
	Data struct {
		Items []moviePayload `json:"items"`
	} `json:"data"`
}

type serverPayload struct {
	ServerName string `json:"server_name"`
	ServerData []struct {
		Name      string `json:"name"`
		LinkEmbed string `json:"link_embed"`
	} `json:"server_data"`
}

type detailPayload struct {
	Movie    moviePayload    `json:"movie"`
	Episodes []serverPayload `json:"episodes"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.MovieCatalog = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: baseURL, httpClient: httpClient}
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	keyword := strings.TrimSpace(query)
	if keyword == "" {
		return nil, fmt.Errorf("%w: search query is empty", domain.ErrInvalidArgument)
	}

	var payload searchPayload
	err := httpjson.Get(ctx, c.httpClient, httpjson.Request{
		BaseURL: c.baseURL,
		Path:    "/v1/api/tim-kiem",
		Query:   url.Values{"keyword": []string{keyword}},
	}, &payload)
	if err != nil {
		return nil, fmt.Errorf("search movies %q: %w", keyword, err)
	}

	movies := make([]domain.Movie, 0, len(payload.Data.Items))
	for _, item := range payload.Data.Items {
		movies = append(movies, item.toDomain())
	}

	return movies, nil
}

func (c *Client) Movie(ctx context.Context, slug string) (domain.Movie, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Movie{}, fmt.Errorf("%w: movie slug is empty", domain.ErrInvalidArgument)
	}

	var payload detailPayload
	err := httpjson.Get(ctx, c.httpClient, httpjson.Request{
		BaseURL: c.baseURL,
		Path:    "/phim/" + url.PathEscape(slug),
	}, &payload)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("get movie %q: %w", slug, err)
	}

	movie := payload.Movie.toDomain()
	for _, server := range payload.Episodes {
		episodes := make([]domain.MovieEpisode, 0, len(server.ServerData))
		for _, episode := range server.ServerData {
			episodes = append(episodes, domain.MovieEpisode{Name: episode.Name, Link: episode.LinkEmbed})
		}
		movie.Servers = append(movie.Servers, domain.MovieServer{
			Name:     strings.TrimSpace(server.ServerName),
			Episodes: episodes,
		})
	}

	return movie, nil
}

func (p moviePayload) toDomain() domain.Movie {
	return domain.Movie{
		Slug:         p.Slug,
		Name:         p.Name,
		OriginName:   p.OriginName,
		Year:         p.Year,
		Quality:      p.Quality,
		Language:     p.Lang,
		Content:      p.Content,
		EpisodeState: p.EpisodeCurrent,
	}
}
