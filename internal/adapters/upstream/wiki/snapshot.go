package wiki

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports"
	"gopkg.in/yaml.v3"
)

const currentSnapshotVersion = 1

type snapshotFile struct {
	Version    int                       `yaml:"version"`
	Categories map[string][]recordSchema `yaml:"categories"`
}

type recordSchema struct {
	Name     string          `yaml:"name"`
	Summary  string          `yaml:"summary"`
	Fields   []fieldSchema   `yaml:"fields"`
	Sections []sectionSchema `yaml:"sections"`
}

type fieldSchema struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type sectionSchema struct {
	Name  string   `yaml:"name"`
	Lines []string `yaml:"lines"`
}

// Snapshot is a read-only, locally persisted copy of scraped wiki records grouped by category.
type Snapshot struct {
	categories map[string][]domain.WikiRecord
}

var _ ports.WikiSnapshot = (*Snapshot)(nil)

// Load reads the snapshot at path. A missing file yields an empty snapshot.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Snapshot{categories: map[string][]domain.WikiRecord{}}, nil
		}
		return nil, fmt.Errorf("read wiki snapshot: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Snapshot, error) {
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode wiki snapshot: %w", err)
	}
	if file.Version > currentSnapshotVersion {
		return nil, fmt.Errorf("unsupported wiki snapshot version %d (current %d)", file.Version, currentSnapshotVersion)
	}

	categories := make(map[string][]domain.WikiRecord, len(file.Categories))
	for name, records := range file.Categories {
		converted := make([]domain.WikiRecord, 0, len(records))
		for _, record := range records {
			converted = append(converted, record.toDomain())
		}
		categories[normalizeCategory(name)] = converted
	}

	return &Snapshot{categories: categories}, nil
}

func (s *Snapshot) Categories() []string {
	names := make([]string, 0, len(s.categories))
	for name := range s.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Snapshot) Records(ctx context.Context, category string) ([]domain.WikiRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, ok := s.categories[normalizeCategory(category)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown wiki category %q", domain.ErrInvalidArgument, category)
	}

	return records, nil
}

func (r recordSchema) toDomain() domain.WikiRecord {
	record := domain.WikiRecord{Name: r.Name, Summary: strings.TrimSpace(r.Summary)}
	for _, field := range r.Fields {
		record.Fields = append(record.Fields, domain.Field{Name: field.Name, Value: field.Value})
	}
	for _, section := range r.Sections {
		record.Sections = append(record.Sections, domain.WikiSection{Name: section.Name, Lines: section.Lines})
	}
	return record
}

func normalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
