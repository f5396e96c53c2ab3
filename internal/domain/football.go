package domain

import "time"

type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchLive      MatchStatus = "IN_PLAY"
	MatchPaused    MatchStatus = "PAUSED"
	MatchFinished  MatchStatus = "FINISHED"
)

type Team struct {
	ID        int
	Name      string
	ShortName string
	TLA       string
	Venue     string
	Founded   int
}

type Score struct {
	Home *int
	Away *int
}

func (s Score) Known() bool {
	return s.Home != nil && s.Away != nil
}

type Match struct {
	ID          int
	Competition string
	Matchday    int
	UTCDate     time.Time
	Status      MatchStatus
	Home        Team
	Away        Team
	Score       Score
}

type Standing struct {
	Position       int
	Team           Team
	PlayedGames    int
	Won            int
	Draw           int
	Lost           int
	Points         int
	GoalDifference int
}
