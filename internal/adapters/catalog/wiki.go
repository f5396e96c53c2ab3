package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/matchday-bot/internal/domain"
)

const metaCategory = "category"

// WikiCategories lists the categories of the local snapshot.
func (c *Catalog) WikiCategories() []string {
	if c.wiki == nil {
		return nil
	}
	return c.wiki.Categories()
}

func (c *Catalog) WikiRecords(ctx context.Context, category string) (domain.Listing, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return domain.Listing{}, fmt.Errorf("%w: wiki category is empty", domain.ErrInvalidArgument)
	}
	if c.wiki == nil {
		return domain.Listing{}, notConfigured("wiki")
	}

	return c.listing(ctx, domain.KindWiki, "Wiki: "+category, "wiki/"+category, func(ctx context.Context) ([]domain.Item, error) {
		records, err := c.wiki.Records(ctx, category)
		if err != nil {
			return nil, err
		}

		items := make([]domain.Item, 0, len(records))
		for _, record := range records {
			items = append(items, wikiItem(category, record))
		}
		return items, nil
	})
}

func (c *Catalog) wikiDetail(ctx context.Context, item domain.Item) (domain.Detail, error) {
	category := item.MetaValue(metaCategory)
	if category == "" {
		return domain.Detail{}, fmt.Errorf("%w: wiki record %q has no category", domain.ErrInvalidArgument, item.Title)
	}
	if c.wiki == nil {
		return domain.Detail{}, notConfigured("wiki")
	}

	return c.detail(ctx, "wiki/"+category+"/"+item.Key, func(ctx context.Context) (domain.Detail, error) {
		records, err := c.wiki.Records(ctx, category)
		if err != nil {
			return domain.Detail{}, err
		}

		for _, record := range records {
			if record.Name != item.Key {
				continue
			}

			detail := domain.Detail{Item: item, Description: record.Summary}
			for _, section := range record.Sections {
				group := domain.Group{Name: section.Name}
				for _, line := range section.Lines {
					group.Entries = append(group.Entries, domain.Entry{Label: line})
				}
				detail.Groups = append(detail.Groups, group)
			}
			return detail, nil
		}

		return domain.Detail{}, fmt.Errorf("%w: wiki record %q not found in %s", domain.ErrInvalidArgument, item.Key, category)
	})
}

func wikiItem(category string, record domain.WikiRecord) domain.Item {
	summary, _, _ := strings.Cut(record.Summary, "\n")
	return domain.Item{
		Key:      record.Name,
		Title:    record.Name,
		Subtitle: truncate(summary, 80),
		Fields:   record.Fields,
		Meta:     map[string]string{metaCategory: category},
	}
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
