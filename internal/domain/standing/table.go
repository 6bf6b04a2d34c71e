package standing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

type Options struct {
	// IncludeAllTeams lists every team of the snapshot, even without a finished match.
	IncludeAllTeams bool
}

// Compute folds finished matches into a ranked table. Output does not depend on input order.
func Compute(matches []match.Match, teams []team.Team, opts Options) ([]TeamStanding, error) {
	teamsByID := team.Index(teams)
	rows := make(map[string]*TeamStanding, len(teams))

	row := func(teamID string) (*TeamStanding, error) {
		if r, ok := rows[teamID]; ok {
			return r, nil
		}
		t, ok := teamsByID[teamID]
		if !ok {
			return nil, fmt.Errorf("%w: team %s", ErrDanglingReference, teamID)
		}
		r := &TeamStanding{TeamID: t.ID, TeamName: t.Name, LogoURL: t.LogoURL}
		rows[teamID] = r
		return r, nil
	}

	if opts.IncludeAllTeams {
		for _, t := range teams {
			if _, err := row(t.ID); err != nil {
				return nil, err
			}
		}
	}

	for _, m := range matches {
		if !m.CountsTowardStandings() {
			continue
		}
		if m.HomeScore == nil || m.AwayScore == nil {
			return nil, fmt.Errorf("%w: finished match %s has no final score", match.ErrInvalidScore, m.ID)
		}
		hs, as := *m.HomeScore, *m.AwayScore
		if hs < 0 || as < 0 {
			return nil, fmt.Errorf("%w: finished match %s has negative score", match.ErrInvalidScore, m.ID)
		}

		home, err := row(m.HomeTeamID)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", m.ID, err)
		}
		away, err := row(m.AwayTeamID)
		if err != nil {
			return nil, fmt.Errorf("match %s: %w", m.ID, err)
		}

		home.record(hs, as)
		away.record(as, hs)
	}

	out := make([]TeamStanding, 0, len(rows))
	for _, r := range rows {
		r.GoalDifference = r.GoalsFor - r.GoalsAgainst
		out = append(out, *r)
	}

	slices.SortFunc(out, compareStanding)
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (s *TeamStanding) record(scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Wins++
		s.Points += PointsWin
	case scored == conceded:
		s.Draws++
		s.Points += PointsDraw
	default:
		s.Losses++
		s.Points += PointsLoss
	}
}

func compareStanding(a, b TeamStanding) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference, a.GoalDifference); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
		return c
	}
	if c := strings.Compare(a.TeamName, b.TeamName); c != 0 {
		return c
	}
	return strings.Compare(a.TeamID, b.TeamID)
}
