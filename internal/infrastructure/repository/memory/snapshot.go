package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

// ReadSnapshot copies all four tables under one read lock.
func (d *Database) ReadSnapshot(_ context.Context) (standing.Snapshot, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return standing.Snapshot{
		Teams:   d.teamsLocked(),
		Players: d.playersLocked(player.Filter{}),
		Matches: d.matchesLocked(match.Filter{}),
		Goals:   d.goalsLocked(goalevent.Filter{}),
	}, nil
}

func (d *Database) teamsLocked() []team.Team {
	out := make([]team.Team, 0, len(d.teams))
	for _, t := range d.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (d *Database) playersLocked(filter player.Filter) []player.Player {
	out := make([]player.Player, 0, len(d.players))
	for _, p := range d.players {
		if filter.TeamID != "" && p.TeamID != filter.TeamID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		if out[i].JerseyNumber != out[j].JerseyNumber {
			return out[i].JerseyNumber < out[j].JerseyNumber
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (d *Database) matchesLocked(filter match.Filter) []match.Match {
	out := make([]match.Match, 0, len(d.matches))
	for _, m := range d.matches {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (d *Database) goalsLocked(filter goalevent.Filter) []goalevent.GoalEvent {
	out := make([]goalevent.GoalEvent, 0, len(d.goals))
	for _, e := range d.goals {
		if filter.MatchID != "" && e.MatchID != filter.MatchID {
			continue
		}
		if filter.PlayerID != "" && e.PlayerID != filter.PlayerID {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out
}
