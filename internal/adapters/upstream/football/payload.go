package football

import (
	"time"

	"github.com/bnema/matchday-bot/internal/domain"
)

type teamPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Venue     string `json:"venue"`
	Founded   int    `json:"founded"`
}

type scorePayload struct {
	FullTime struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"fullTime"`
}

type matchPayload struct {
	ID          int    `json:"id"`
	UTCDate     string `json:"utcDate"`
	Status      string `json:"status"`
	Matchday    int    `json:"matchday"`
	Competition struct {
		Name string `json:"name"`
	} `json:"competition"`
	HomeTeam teamPayload  `json:"homeTeam"`
	AwayTeam teamPayload  `json:"awayTeam"`
	Score    scorePayload `json:"score"`
}

type matchesPayload struct {
	Matches []matchPayload `json:"matches"`
}

type standingRowPayload struct {
	Position       int         `json:"position"`
	Team           teamPayload `json:"team"`
	PlayedGames    int         `json:"playedGames"`
	Won            int         `json:"won"`
	Draw           int         `json:"draw"`
	Lost           int         `json:"lost"`
	Points         int         `json:"points"`
	GoalDifference int         `json:"goalDifference"`
}

type standingsPayload struct {
	Standings []struct {
		Type  string               `json:"type"`
		Table []standingRowPayload `json:"table"`
	} `json:"standings"`
}

func (p teamPayload) toDomain() domain.Team {
	return domain.Team{
		ID:        p.ID,
		Name:      p.Name,
		ShortName: p.ShortName,
		TLA:       p.TLA,
		Venue:     p.Venue,
		Founded:   p.Founded,
	}
}

func (p matchPayload) toDomain() domain.Match {
	return domain.Match{
		ID:          p.ID,
		Competition: p.Competition.Name,
		Matchday:    p.Matchday,
		UTCDate:     parseTime(p.UTCDate),
		Status:      domain.MatchStatus(p.Status),
		Home:        p.HomeTeam.toDomain(),
		Away:        p.AwayTeam.toDomain(),
		Score: domain.Score{
			Home: p.Score.FullTime.Home,
			Away: p.Score.FullTime.Away,
		},
	}
}

func (p matchesPayload) toDomain() []domain.Match {
	matches := make([]domain.Match, 0, len(p.Matches))
	for _, match := range p.Matches {
		matches = append(matches, match.toDomain())
	}
	return matches
}

// toDomain keeps the TOTAL table; home/away splits are ignored.
func (p standingsPayload) toDomain() []domain.Standing {
	for _, standing := range p.Standings {
		if standing.Type != "" && standing.Type != "TOTAL" {
			continue
		}

		rows := make([]domain.Standing, 0, len(standing.Table))
		for _, row := range standing.Table {
			rows = append(rows, domain.Standing{
				Position:       row.Position,
				Team:           row.Team.toDomain(),
				PlayedGames:    row.PlayedGames,
				Won:            row.Won,
				Draw:           row.Draw,
				Lost:           row.Lost,
				Points:         row.Points,
				GoalDifference: row.GoalDifference,
			})
		}
		return rows
	}

	return nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed.UTC()
}
