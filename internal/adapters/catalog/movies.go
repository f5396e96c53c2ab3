package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/matchday-bot/internal/domain"
)

const metaSlug = "slug"

func (c *Catalog) SearchMovies(ctx context.Context, query string) (domain.Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Listing{}, fmt.Errorf("%w: search query is empty", domain.ErrInvalidArgument)
	}
	if c.movies == nil {
		return domain.Listing{}, notConfigured("movies")
	}

	key := "movies/search/" + strings.ToLower(query)
	return c.listing(ctx, domain.KindMovies, fmt.Sprintf("Movies matching %q", query), key, func(ctx context.Context) ([]domain.Item, error) {
		movies, err := c.movies.Search(ctx, query)
		if err != nil {
			return nil, err
		}

		items := make([]domain.Item, 0, len(movies))
		for _, movie := range movies {
			items = append(items, movieItem(movie))
		}
		return items, nil
	})
}

func (c *Catalog) movieDetail(ctx context.Context, item domain.Item) (domain.Detail, error) {
	slug := item.MetaValue(metaSlug)
	if slug == "" {
		return domain.Detail{}, fmt.Errorf("%w: movie %q has no slug", domain.ErrInvalidArgument, item.Title)
	}
	if c.movies == nil {
		return domain.Detail{}, notConfigured("movies")
	}

	return c.detail(ctx, "movies/"+slug, func(ctx context.Context) (domain.Detail, error) {
		movie, err := c.movies.Movie(ctx, slug)
		if err != nil {
			return domain.Detail{}, err
		}

		detail := domain.Detail{Item: movieItem(movie), Description: movie.Content}
		for _, server := range movie.Servers {
			group := domain.Group{Name: server.Name}
			for _, episode := range server.Episodes {
				group.Entries = append(group.Entries, domain.Entry{Label: "Episode " + episode.Name, Value: episode.Link})
			}
			detail.Groups = append(detail.Groups, group)
		}
		return detail, nil
	})
}

func movieItem(movie domain.Movie) domain.Item {
	var subtitle []string
	if movie.OriginName != "" && movie.OriginName != movie.Name {
		subtitle = append(subtitle, movie.OriginName)
	}
	if movie.Year > 0 {
		subtitle = append(subtitle, strconv.Itoa(movie.Year))
	}
	if movie.Quality != "" {
		subtitle = append(subtitle, movie.Quality)
	}

	item := domain.Item{
		Key:      movie.Slug,
		Title:    movie.Name,
		Subtitle: strings.Join(subtitle, " · "),
		Meta:     map[string]string{metaSlug: movie.Slug},
	}
	item.Fields = appendField(item.Fields, "Year", yearOrEmpty(movie.Year))
	item.Fields = appendField(item.Fields, "Quality", movie.Quality)
	item.Fields = appendField(item.Fields, "Language", movie.Language)
	item.Fields = appendField(item.Fields, "Episodes", movie.EpisodeState)
	return item
}

func appendField(fields []domain.Field, name, value string) []domain.Field {
	if strings.TrimSpace(value) == "" {
		return fields
	}
	return append(fields, domain.Field{Name: name, Value: value})
}

func yearOrEmpty(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}
