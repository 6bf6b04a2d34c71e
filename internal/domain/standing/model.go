package standing

import "errors"

// ErrDanglingReference is returned when a snapshot row points at an entity missing from the snapshot.
var ErrDanglingReference = errors.New("dangling reference in snapshot")

const (
	PointsWin  = 3
	PointsDraw = 1
	PointsLoss = 0
)

// TeamStanding is one derived row of the league table.
type TeamStanding struct {
	TeamID         string
	TeamName       string
	LogoURL        string
	Played         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Rank           int
}

// ScorerEntry is one derived row of the top-scorer table.
type ScorerEntry struct {
	PlayerID      string
	PlayerName    string
	TeamID        string
	TeamName      string
	Goals         int
	MatchesPlayed int
	Rank          int
}

type ScorerSummary struct {
	TotalGoals    int
	LeaderName    string
	GoalsPerMatch float64
}
