package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/matchday-bot/internal/adapters/fetch"
	"github.com/bnema/matchday-bot/internal/domain"
)

const (
	metaTeamID  = "team_id"
	metaHomeID  = "home_id"
	metaAwayID  = "away_id"
	metaMatchID = "match_id"

	kickoffLayout = "Mon 02 Jan 15:04 UTC"
)

func (c *Catalog) TeamFixtures(ctx context.Context, teamID int) (domain.Listing, error) {
	if teamID <= 0 {
		return domain.Listing{}, fmt.Errorf("%w: team id must be positive", domain.ErrInvalidArgument)
	}
	if c.football == nil {
		return domain.Listing{}, notConfigured("football")
	}

	team, err := c.team(ctx, teamID)
	if err != nil {
		return domain.Listing{}, err
	}

	key := fmt.Sprintf("football/team/%d/fixtures", teamID)
	return c.listing(ctx, domain.KindFixtures, "Upcoming fixtures: "+team.Name, key, func(ctx context.Context) ([]domain.Item, error) {
		matches, err := c.football.TeamMatches(ctx, teamID, domain.MatchScheduled, c.cfg.MatchLimit)
		if err != nil {
			return nil, err
		}
		return matchItems(matches), nil
	})
}

func (c *Catalog) LiveMatches(ctx context.Context) (domain.Listing, error) {
	if c.football == nil {
		return domain.Listing{}, notConfigured("football")
	}

	return c.listing(ctx, domain.KindLive, "Live matches", "football/live", func(ctx context.Context) ([]domain.Item, error) {
		matches, err := c.football.LiveMatches(ctx)
		if err != nil {
			return nil, err
		}
		return matchItems(matches), nil
	})
}

func (c *Catalog) Standings(ctx context.Context, competition string) (domain.Listing, error) {
	code := strings.ToUpper(strings.TrimSpace(competition))
	if code == "" {
		return domain.Listing{}, fmt.Errorf("%w: competition code is empty", domain.ErrInvalidArgument)
	}
	if c.football == nil {
		return domain.Listing{}, notConfigured("football")
	}

	return c.listing(ctx, domain.KindStandings, "Standings: "+code, "football/standings/"+code, func(ctx context.Context) ([]domain.Item, error) {
		rows, err := c.football.Standings(ctx, code)
		if err != nil {
			return nil, err
		}

		items := make([]domain.Item, 0, len(rows))
		for _, row := range rows {
			items = append(items, standingItem(row))
		}
		return items, nil
	})
}

// Dashboard lists the tracked teams. Each team opens on its upcoming fixtures and recent results.
func (c *Catalog) Dashboard(ctx context.Context, teamIDs []int) (domain.Listing, error) {
	if len(teamIDs) == 0 {
		return domain.Listing{}, fmt.Errorf("%w: no tracked teams", domain.ErrInvalidArgument)
	}
	if c.football == nil {
		return domain.Listing{}, notConfigured("football")
	}

	listing := domain.Listing{Kind: domain.KindDashboard, Title: "Dashboard", FromCache: true}
	for _, id := range teamIDs {
		result, err := fetch.Cached(ctx, c.fetcher, c.teams, teamKey(id), func(ctx context.Context) (domain.Team, error) {
			return c.football.Team(ctx, id)
		})
		if err != nil {
			return domain.Listing{}, err
		}

		listing.FromCache = listing.FromCache && result.FromCache
		listing.Items = append(listing.Items, teamItem(result.Data))
	}

	return listing, nil
}

func (c *Catalog) teamDetail(ctx context.Context, item domain.Item) (domain.Detail, error) {
	teamID, err := metaInt(item, metaTeamID)
	if err != nil {
		return domain.Detail{}, err
	}
	if c.football == nil {
		return domain.Detail{}, notConfigured("football")
	}

	team, err := c.team(ctx, teamID)
	if err != nil {
		return domain.Detail{}, err
	}
	upcoming, err := c.teamMatches(ctx, teamID, domain.MatchScheduled, c.cfg.FormLimit)
	if err != nil {
		return domain.Detail{}, err
	}
	results, err := c.teamMatches(ctx, teamID, domain.MatchFinished, c.cfg.FormLimit)
	if err != nil {
		return domain.Detail{}, err
	}

	detail := domain.Detail{Item: item, Description: teamDescription(team)}
	detail.Groups = append(detail.Groups,
		domain.Group{Name: "Upcoming", Entries: fixtureEntries(teamID, upcoming)},
		domain.Group{Name: "Results", Entries: resultEntries(teamID, results), Scores: true},
	)
	return detail, nil
}

// matchDetail shows the recent form of both sides of a match.
func (c *Catalog) matchDetail(ctx context.Context, item domain.Item) (domain.Detail, error) {
	homeID, err := metaInt(item, metaHomeID)
	if err != nil {
		return domain.Detail{}, err
	}
	awayID, err := metaInt(item, metaAwayID)
	if err != nil {
		return domain.Detail{}, err
	}
	if c.football == nil {
		return domain.Detail{}, notConfigured("football")
	}

	detail := domain.Detail{Item: item, Description: item.Subtitle}
	for _, side := range []struct {
		id   int
		name string
	}{
		{id: homeID, name: item.MetaValue("home_name")},
		{id: awayID, name: item.MetaValue("away_name")},
	} {
		results, err := c.teamMatches(ctx, side.id, domain.MatchFinished, c.cfg.FormLimit)
		if err != nil {
			return domain.Detail{}, err
		}
		detail.Groups = append(detail.Groups, domain.Group{
			Name:    side.name + " form",
			Entries: resultEntries(side.id, results),
			Scores:  true,
		})
	}

	return detail, nil
}

func (c *Catalog) team(ctx context.Context, id int) (domain.Team, error) {
	result, err := fetch.Cached(ctx, c.fetcher, c.teams, teamKey(id), func(ctx context.Context) (domain.Team, error) {
		return c.football.Team(ctx, id)
	})
	return result.Data, err
}

func (c *Catalog) teamMatches(ctx context.Context, id int, status domain.MatchStatus, limit int) ([]domain.Match, error) {
	key := fmt.Sprintf("football/team/%d/matches/%s/%d", id, status, limit)
	result, err := fetch.Cached(ctx, c.fetcher, c.matches, key, func(ctx context.Context) ([]domain.Match, error) {
		return c.football.TeamMatches(ctx, id, status, limit)
	})
	return result.Data, err
}

func teamKey(id int) string {
	return "football/team/" + strconv.Itoa(id)
}

func matchItems(matches []domain.Match) []domain.Item {
	items := make([]domain.Item, 0, len(matches))
	for _, match := range matches {
		items = append(items, matchItem(match))
	}
	return items
}

func matchItem(match domain.Match) domain.Item {
	subtitle := []string{}
	if match.Competition != "" {
		subtitle = append(subtitle, match.Competition)
	}
	if !match.UTCDate.IsZero() {
		subtitle = append(subtitle, match.UTCDate.UTC().Format(kickoffLayout))
	}

	item := domain.Item{
		Key:      "match-" + strconv.Itoa(match.ID),
		Title:    match.Home.Name + " vs " + match.Away.Name,
		Subtitle: strings.Join(subtitle, " · "),
		Meta: map[string]string{
			metaMatchID: strconv.Itoa(match.ID),
			metaHomeID:  strconv.Itoa(match.Home.ID),
			metaAwayID:  strconv.Itoa(match.Away.ID),
			"home_name": match.Home.Name,
			"away_name": match.Away.Name,
		},
	}
	item.Fields = appendField(item.Fields, "Competition", match.Competition)
	if match.Matchday > 0 {
		item.Fields = appendField(item.Fields, "Matchday", strconv.Itoa(match.Matchday))
	}
	item.Fields = appendField(item.Fields, "Status", statusLabel(match.Status))
	if match.Score.Known() {
		item.Fields = appendField(item.Fields, domain.FieldScore, scoreLine(match.Score))
	}
	return item
}

func standingItem(row domain.Standing) domain.Item {
	subtitle := fmt.Sprintf("%d pts · P%d W%d D%d L%d · GD %+d",
		row.Points, row.PlayedGames, row.Won, row.Draw, row.Lost, row.GoalDifference)

	return domain.Item{
		Key:      "team-" + strconv.Itoa(row.Team.ID),
		Title:    fmt.Sprintf("%d. %s", row.Position, row.Team.Name),
		Subtitle: subtitle,
		Fields: []domain.Field{
			{Name: "Points", Value: strconv.Itoa(row.Points)},
			{Name: "Played", Value: strconv.Itoa(row.PlayedGames)},
			{Name: "Record", Value: fmt.Sprintf("%d-%d-%d", row.Won, row.Draw, row.Lost)},
			{Name: "Goal difference", Value: fmt.Sprintf("%+d", row.GoalDifference)},
		},
		Meta: map[string]string{metaTeamID: strconv.Itoa(row.Team.ID)},
	}
}

func teamItem(team domain.Team) domain.Item {
	item := domain.Item{
		Key:      "team-" + strconv.Itoa(team.ID),
		Title:    team.Name,
		Subtitle: team.Venue,
		Meta:     map[string]string{metaTeamID: strconv.Itoa(team.ID)},
	}
	item.Fields = appendField(item.Fields, "Code", team.TLA)
	item.Fields = appendField(item.Fields, "Venue", team.Venue)
	if team.Founded > 0 {
		item.Fields = appendField(item.Fields, "Founded", strconv.Itoa(team.Founded))
	}
	return item
}

func teamDescription(team domain.Team) string {
	parts := []string{team.Name}
	if team.Venue != "" {
		parts = append(parts, team.Venue)
	}
	if team.Founded > 0 {
		parts = append(parts, "founded "+strconv.Itoa(team.Founded))
	}
	return strings.Join(parts, " · ")
}

func fixtureEntries(teamID int, matches []domain.Match) []domain.Entry {
	entries := make([]domain.Entry, 0, len(matches))
	for _, match := range matches {
		entries = append(entries, domain.Entry{
			Label: opponentLabel(teamID, match),
			Value: kickoff(match.UTCDate),
		})
	}
	return entries
}

// resultEntries renders finished matches from the point of view of teamID: "2-1 W".
func resultEntries(teamID int, matches []domain.Match) []domain.Entry {
	entries := make([]domain.Entry, 0, len(matches))
	for _, match := range matches {
		value := "n/a"
		if match.Score.Known() {
			value = scoreLine(match.Score) + " " + outcome(teamID, match)
		}
		entries = append(entries, domain.Entry{Label: opponentLabel(teamID, match), Value: value})
	}
	return entries
}

func opponentLabel(teamID int, match domain.Match) string {
	label := kickoffDate(match.UTCDate)
	if match.Home.ID == teamID {
		return strings.TrimSpace(label + " vs " + match.Away.Name + " (H)")
	}
	return strings.TrimSpace(label + " at " + match.Home.Name + " (A)")
}

func outcome(teamID int, match domain.Match) string {
	own, other := *match.Score.Home, *match.Score.Away
	if match.Away.ID == teamID {
		own, other = other, own
	}

	switch {
	case own > other:
		return "W"
	case own < other:
		return "L"
	default:
		return "D"
	}
}

func scoreLine(score domain.Score) string {
	return fmt.Sprintf("%d-%d", *score.Home, *score.Away)
}

func statusLabel(status domain.MatchStatus) string {
	switch status {
	case domain.MatchScheduled:
		return "Scheduled"
	case domain.MatchLive:
		return "Live"
	case domain.MatchPaused:
		return "Half time"
	case domain.MatchFinished:
		return "Full time"
	default:
		return string(status)
	}
}

func kickoff(at time.Time) string {
	if at.IsZero() {
		return "TBD"
	}
	return at.UTC().Format(kickoffLayout)
}

func kickoffDate(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.UTC().Format("02 Jan")
}

func metaInt(item domain.Item, key string) (int, error) {
	raw := item.MetaValue(key)
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: item %q has no %s", domain.ErrInvalidArgument, item.Key, key)
	}
	return value, nil
}
