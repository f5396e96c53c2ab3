package application

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/matchday-bot/internal/adapters/cooldown"
	tomlrepo "github.com/bnema/matchday-bot/internal/adapters/repo/toml"
	"github.com/bnema/matchday-bot/internal/adapters/session"
	"github.com/bnema/matchday-bot/internal/domain"
	"github.com/bnema/matchday-bot/internal/ports/portstest"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

const sessionTTL = 10 * time.Minute

type fakeCatalog struct {
	mu          sync.Mutex
	items       []domain.Item
	details     map[string]domain.Detail
	listErr     error
	detailErr   error
	detailLoads int
	lastQuery   string
	lastTeams   []int
}

func (f *fakeCatalog) listing(kind domain.SessionKind, title string) (domain.Listing, error) {
	if f.listErr != nil {
		return domain.Listing{}, f.listErr
	}
	return domain.Listing{Kind: kind, Title: title, Items: f.items}, nil
}

func (f *fakeCatalog) LoadDetail(_ context.Context, _ domain.SessionKind, item domain.Item) (domain.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.detailLoads++
	if f.detailErr != nil {
		return domain.Detail{}, f.detailErr
	}
	if detail, ok := f.details[item.Key]; ok {
		return detail, nil
	}
	return domain.Detail{Item: item}, nil
}

func (f *fakeCatalog) SearchMovies(_ context.Context, query string) (domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = query
	return f.listing(domain.KindMovies, "Movies")
}

func (f *fakeCatalog) TeamFixtures(_ context.Context, teamID int) (domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastTeams = []int{teamID}
	return f.listing(domain.KindFixtures, "Fixtures")
}

func (f *fakeCatalog) Standings(_ context.Context, competition string) (domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = competition
	return f.listing(domain.KindStandings, "Standings")
}

func (f *fakeCatalog) LiveMatches(context.Context) (domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.listing(domain.KindLive, "Live")
}

func (f *fakeCatalog) Dashboard(_ context.Context, teamIDs []int) (domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastTeams = teamIDs
	return f.listing(domain.KindDashboard, "Dashboard")
}

func (f *fakeCatalog) WikiRecords(_ context.Context, category string) (domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = category
	return f.listing(domain.KindWiki, "Wiki")
}

func (f *fakeCatalog) WikiCategories() []string {
	return []string{"characters", "weapons"}
}

type recordingMetrics struct {
	mu          sync.Mutex
	commands    map[string]int
	transitions map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{commands: map[string]int{}, transitions: map[string]int{}}
}

func (m *recordingMetrics) Command(command, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[command+"/"+result]++
}

func (m *recordingMetrics) Transition(action, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[action+"/"+result]++
}

func (m *recordingMetrics) command(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commands[key]
}

func (m *recordingMetrics) transition(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitions[key]
}

type harness struct {
	clock     *portstest.Clock
	store     *session.Store
	catalog   *fakeCatalog
	navigator *Navigator
	bot       *Bot
	settings  *SettingsService
	metrics   *recordingMetrics
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := viper.New()
	cfg.Set(tomlrepo.SettingsPathKey, filepath.Join(t.TempDir(), "settings.toml"))
	repo, err := tomlrepo.NewRepository(cfg)
	require.NoError(t, err)

	h := &harness{
		clock:   portstest.NewClock(testNow),
		catalog: &fakeCatalog{items: testItems(12), details: map[string]domain.Detail{}},
		metrics: newRecordingMetrics(),
	}
	h.store = session.NewStore(sessionTTL, h.clock, nil)
	h.settings = NewSettingsService(repo)
	h.navigator = NewNavigator(h.store, h.catalog, h.clock, nil, h.metrics)
	h.bot = NewBot(h.catalog, h.navigator, h.settings, cooldown.NewGate(nil), h.clock, nil, h.metrics, BotConfig{})
	return h
}

func testItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{Key: fmt.Sprintf("item-%d", i), Title: fmt.Sprintf("Item %d", i+1)}
	}
	return items
}

func testDetail(item domain.Item, groups ...int) domain.Detail {
	detail := domain.Detail{Item: item, Description: "About " + item.Title}
	for g, entries := range groups {
		group := domain.Group{Name: fmt.Sprintf("Server %d", g+1)}
		for e := 0; e < entries; e++ {
			group.Entries = append(group.Entries, domain.Entry{Label: fmt.Sprintf("Ep %d", e+1)})
		}
		detail.Groups = append(detail.Groups, group)
	}
	return detail
}

func findControl(t *testing.T, view domain.View, label string) domain.Control {
	t.Helper()

	for _, control := range view.Controls {
		if control.Label == label {
			return control
		}
	}
	require.FailNowf(t, "control not found", "no control %q in %v", label, controlLabels(view))
	return domain.Control{}
}

func controlLabels(view domain.View) []string {
	labels := make([]string, 0, len(view.Controls))
	for _, control := range view.Controls {
		labels = append(labels, control.Label)
	}
	return labels
}

func primaryControls(view domain.View) int {
	count := 0
	for _, control := range view.Controls {
		if control.Style == domain.ControlPrimary {
			count++
		}
	}
	return count
}

func (h *harness) press(t *testing.T, user domain.UserID, view domain.View, label string) domain.View {
	t.Helper()

	next, _, err := h.navigator.Handle(context.Background(), domain.Callback{Token: findControl(t, view, label).Token, InvokerID: user})
	require.NoError(t, err)
	return next
}
