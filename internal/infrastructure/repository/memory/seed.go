package memory

import (
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

type Seed struct {
	Teams   []team.Team
	Players []player.Player
	Matches []match.Match
	Goals   []goalevent.GoalEvent
}

const (
	TeamGaruda  = "team-garuda"
	TeamHarimau = "team-harimau"
	TeamElang   = "team-elang"
	TeamBadak   = "team-badak"
)

var seedKickoff = time.Date(2026, time.March, 7, 15, 0, 0, 0, time.UTC)

// DefaultSeed is a four-team group with two rounds played, one match live and the rest upcoming.
func DefaultSeed() Seed {
	return Seed{
		Teams:   SeedTeams(),
		Players: SeedPlayers(),
		Matches: SeedMatches(),
		Goals:   SeedGoals(),
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamGaruda, Name: "Garuda FC"},
		{ID: TeamHarimau, Name: "Harimau United"},
		{ID: TeamElang, Name: "Elang Rovers"},
		{ID: TeamBadak, Name: "Badak City"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ply-garuda-01", TeamID: TeamGaruda, Name: "Arif Setiawan", JerseyNumber: 1, Position: player.PositionGoalkeeper},
		{ID: "ply-garuda-04", TeamID: TeamGaruda, Name: "Budi Santoso", JerseyNumber: 4, Position: player.PositionDefender},
		{ID: "ply-garuda-09", TeamID: TeamGaruda, Name: "Dimas Pratama", JerseyNumber: 9, Position: player.PositionForward},
		{ID: "ply-harimau-01", TeamID: TeamHarimau, Name: "Eko Wibowo", JerseyNumber: 1, Position: player.PositionGoalkeeper},
		{ID: "ply-harimau-08", TeamID: TeamHarimau, Name: "Fajar Nugroho", JerseyNumber: 8, Position: player.PositionMidfielder},
		{ID: "ply-harimau-10", TeamID: TeamHarimau, Name: "Gilang Ramadhan", JerseyNumber: 10, Position: player.PositionForward},
		{ID: "ply-elang-01", TeamID: TeamElang, Name: "Hendra Saputra", JerseyNumber: 1, Position: player.PositionGoalkeeper},
		{ID: "ply-elang-07", TeamID: TeamElang, Name: "Irfan Hakim", JerseyNumber: 7, Position: player.PositionMidfielder},
		{ID: "ply-elang-11", TeamID: TeamElang, Name: "Joko Susilo", JerseyNumber: 11, Position: player.PositionForward},
		{ID: "ply-badak-01", TeamID: TeamBadak, Name: "Kurniawan Adi", JerseyNumber: 1, Position: player.PositionGoalkeeper},
		{ID: "ply-badak-05", TeamID: TeamBadak, Name: "Lukman Hidayat", JerseyNumber: 5, Position: player.PositionDefender},
		{ID: "ply-badak-19", TeamID: TeamBadak, Name: "Mulyadi Rahman", JerseyNumber: 19, Position: player.PositionForward},
	}
}

func SeedMatches() []match.Match {
	day := 24 * time.Hour
	return []match.Match{
		seedMatch("match-r1-1", TeamGaruda, TeamHarimau, seedKickoff, match.StatusFinished, match.Score(2), match.Score(1)),
		seedMatch("match-r1-2", TeamElang, TeamBadak, seedKickoff.Add(3*time.Hour), match.StatusFinished, match.Score(0), match.Score(0)),
		seedMatch("match-r2-1", TeamHarimau, TeamElang, seedKickoff.Add(7*day), match.StatusFinished, match.Score(3), match.Score(1)),
		seedMatch("match-r2-2", TeamBadak, TeamGaruda, seedKickoff.Add(7*day+3*time.Hour), match.StatusLive, match.Score(1), match.Score(0)),
		seedMatch("match-r3-1", TeamGaruda, TeamElang, seedKickoff.Add(14*day), match.StatusScheduled, nil, nil),
		seedMatch("match-r3-2", TeamHarimau, TeamBadak, seedKickoff.Add(14*day+3*time.Hour), match.StatusPostponed, nil, nil),
	}
}

func seedMatch(id, home, away string, at time.Time, status match.Status, homeScore, awayScore *int) match.Match {
	return match.Match{
		ID:          id,
		HomeTeamID:  home,
		AwayTeamID:  away,
		ScheduledAt: at,
		Venue:       "Stadion Utama",
		Stage:       match.StageGroup,
		Status:      status,
		HomeScore:   homeScore,
		AwayScore:   awayScore,
		UpdatedAt:   at,
	}
}

// SeedGoals adds up to the seeded scores.
func SeedGoals() []goalevent.GoalEvent {
	day := 24 * time.Hour
	return []goalevent.GoalEvent{
		seedGoal("goal-01", "match-r1-1", "ply-garuda-09", TeamGaruda, 2, seedKickoff.Add(80*time.Minute)),
		seedGoal("goal-02", "match-r1-1", "ply-harimau-10", TeamHarimau, 1, seedKickoff.Add(85*time.Minute)),
		seedGoal("goal-03", "match-r2-1", "ply-harimau-10", TeamHarimau, 2, seedKickoff.Add(7*day+40*time.Minute)),
		seedGoal("goal-04", "match-r2-1", "ply-harimau-08", TeamHarimau, 1, seedKickoff.Add(7*day+60*time.Minute)),
		seedGoal("goal-05", "match-r2-1", "ply-elang-11", TeamElang, 1, seedKickoff.Add(7*day+70*time.Minute)),
		seedGoal("goal-06", "match-r2-2", "ply-badak-19", TeamBadak, 1, seedKickoff.Add(7*day+3*time.Hour+20*time.Minute)),
	}
}

func seedGoal(id, matchID, playerID, teamID string, count int, at time.Time) goalevent.GoalEvent {
	return goalevent.GoalEvent{
		ID:         id,
		MatchID:    matchID,
		PlayerID:   playerID,
		TeamID:     teamID,
		Count:      count,
		RecordedAt: at,
	}
}
