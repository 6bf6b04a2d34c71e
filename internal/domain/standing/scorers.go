package standing

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

// ScorerInput is the snapshot the top-scorer table is computed from.
type ScorerInput struct {
	Matches []match.Match
	Players []player.Player
	Teams   []team.Team
	Goals   []goalevent.GoalEvent
}

// ComputeTopScorers ranks players by goals scored in finished matches. Goals are credited
// to the team recorded on the goal event, so a player who changed teams gets one entry per
// team, each paired with that team's matches played.
func ComputeTopScorers(in ScorerInput) ([]ScorerEntry, error) {
	matchesByID := make(map[string]match.Match, len(in.Matches))
	teamPlayed := make(map[string]int)
	for _, m := range in.Matches {
		matchesByID[m.ID] = m
		if m.CountsTowardStandings() {
			teamPlayed[m.HomeTeamID]++
			teamPlayed[m.AwayTeamID]++
		}
	}
	playersByID := make(map[string]player.Player, len(in.Players))
	for _, p := range in.Players {
		playersByID[p.ID] = p
	}
	teamsByID := team.Index(in.Teams)

	type scorerKey struct{ playerID, teamID string }
	goals := make(map[scorerKey]int)
	for _, e := range in.Goals {
		m, ok := matchesByID[e.MatchID]
		if !ok {
			return nil, fmt.Errorf("%w: goal event %s references match %s", ErrDanglingReference, e.ID, e.MatchID)
		}
		p, ok := playersByID[e.PlayerID]
		if !ok {
			return nil, fmt.Errorf("%w: goal event %s references player %s", ErrDanglingReference, e.ID, e.PlayerID)
		}
		if !m.CountsTowardStandings() {
			continue
		}
		if _, ok := teamsByID[p.TeamID]; !ok {
			return nil, fmt.Errorf("%w: player %s references team %s", ErrDanglingReference, p.ID, p.TeamID)
		}
		teamID := e.TeamID
		if teamID == "" {
			teamID = p.TeamID
		}
		goals[scorerKey{playerID: e.PlayerID, teamID: teamID}] += e.Count
	}

	out := make([]ScorerEntry, 0, len(goals))
	for key, n := range goals {
		if n <= 0 {
			continue
		}
		p := playersByID[key.playerID]
		t, ok := teamsByID[key.teamID]
		if !ok {
			return nil, fmt.Errorf("%w: goals of player %s reference team %s", ErrDanglingReference, p.ID, key.teamID)
		}
		out = append(out, ScorerEntry{
			PlayerID:      p.ID,
			PlayerName:    p.Name,
			TeamID:        t.ID,
			TeamName:      t.Name,
			Goals:         n,
			MatchesPlayed: teamPlayed[t.ID],
		})
	}

	slices.SortFunc(out, compareScorer)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// GoalTotals is the cumulative goal count per player over finished matches.
func GoalTotals(matches []match.Match, goals []goalevent.GoalEvent) map[string]int {
	finished := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if m.CountsTowardStandings() {
			finished[m.ID] = struct{}{}
		}
	}

	out := make(map[string]int)
	for _, e := range goals {
		if _, ok := finished[e.MatchID]; ok {
			out[e.PlayerID] += e.Count
		}
	}
	return out
}

// SummarizeScorers expects entries in ranked order. GoalsPerMatch is rounded to one decimal.
func SummarizeScorers(entries []ScorerEntry) ScorerSummary {
	var summary ScorerSummary
	if len(entries) == 0 {
		return summary
	}

	played := 0
	for _, e := range entries {
		summary.TotalGoals += e.Goals
		played += e.MatchesPlayed
	}
	summary.LeaderName = entries[0].PlayerName
	if played > 0 {
		summary.GoalsPerMatch = math.Round(float64(summary.TotalGoals)/float64(played)*10) / 10
	}
	return summary
}

func compareScorer(a, b ScorerEntry) int {
	if c := cmp.Compare(b.Goals, a.Goals); c != 0 {
		return c
	}
	if c := strings.Compare(a.PlayerName, b.PlayerName); c != 0 {
		return c
	}
	if c := strings.Compare(a.PlayerID, b.PlayerID); c != 0 {
		return c
	}
	return strings.Compare(a.TeamID, b.TeamID)
}
