package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/usecase"
)

type teamRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url,max=500"`
}

type playerRequest struct {
	TeamID       string `json:"teamId" validate:"required"`
	Name         string `json:"name" validate:"required,max=100"`
	JerseyNumber int    `json:"jerseyNumber" validate:"required,min=1,max=99"`
	Position     string `json:"position" validate:"required,oneof=goalkeeper defender midfielder forward GOALKEEPER DEFENDER MIDFIELDER FORWARD"`
	PhotoURL     string `json:"photoUrl" validate:"omitempty,url,max=500"`
}

type matchRequest struct {
	HomeTeamID  string    `json:"homeTeamId" validate:"required"`
	AwayTeamID  string    `json:"awayTeamId" validate:"required,nefield=HomeTeamID"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Venue       string    `json:"venue" validate:"max=200"`
	Stage       string    `json:"stage" validate:"omitempty,oneof=group_stage semi_finals final"`
}

type finishMatchRequest struct {
	HomeScore *int `json:"homeScore" validate:"omitempty,min=0"`
	AwayScore *int `json:"awayScore" validate:"omitempty,min=0"`
}

type rescheduleMatchRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
}

type recordGoalRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=20"`
}

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type playerDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	Name         string `json:"name"`
	JerseyNumber int    `json:"jerseyNumber"`
	Position     string `json:"position"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	Goals        int    `json:"goals"`
}

type matchDTO struct {
	ID          string `json:"id"`
	HomeTeamID  string `json:"homeTeamId"`
	AwayTeamID  string `json:"awayTeamId"`
	ScheduledAt string `json:"scheduledAt"`
	Venue       string `json:"venue,omitempty"`
	Stage       string `json:"stage"`
	Status      string `json:"status"`
	HomeScore   *int   `json:"homeScore"`
	AwayScore   *int   `json:"awayScore"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type matchGroupsDTO struct {
	Upcoming  []matchDTO `json:"upcoming"`
	Live      []matchDTO `json:"live"`
	Finished  []matchDTO `json:"finished"`
	Postponed []matchDTO `json:"postponed"`
	Cancelled []matchDTO `json:"cancelled"`
}

type goalEventDTO struct {
	ID         string `json:"id"`
	MatchID    string `json:"matchId"`
	PlayerID   string `json:"playerId"`
	TeamID     string `json:"teamId"`
	Count      int    `json:"count"`
	RecordedAt string `json:"recordedAt"`
}

type recordGoalResponseDTO struct {
	Match matchDTO     `json:"match"`
	Goal  goalEventDTO `json:"goal"`
}

type standingRowDTO struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	LogoURL        string `json:"logoUrl,omitempty"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type standingsDTO struct {
	Version uint64           `json:"version"`
	Rows    []standingRowDTO `json:"rows"`
}

type scorerDTO struct {
	Rank          int    `json:"rank"`
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	TeamID        string `json:"teamId"`
	TeamName      string `json:"teamName"`
	Goals         int    `json:"goals"`
	MatchesPlayed int    `json:"matchesPlayed"`
}

type scorerSummaryDTO struct {
	TotalGoals    int     `json:"totalGoals"`
	Leader        string  `json:"leader,omitempty"`
	GoalsPerMatch float64 `json:"goalsPerMatch"`
}

type topScorersDTO struct {
	Version uint64           `json:"version"`
	Entries []scorerDTO      `json:"entries"`
	Summary scorerSummaryDTO `json:"summary"`
}

type readModelDTO struct {
	Version    uint64 `json:"version"`
	ComputedAt string `json:"computedAt"`
	Teams      int    `json:"teams"`
	Scorers    int    `json:"scorers"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, LogoURL: t.LogoURL}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, t := range items {
		out = append(out, teamToDTO(t))
	}
	return out
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:           p.ID,
		TeamID:       p.TeamID,
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
		Position:     string(p.Position),
		PhotoURL:     p.PhotoURL,
		Goals:        p.Goals,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:          m.ID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		ScheduledAt: formatTime(m.ScheduledAt),
		Venue:       m.Venue,
		Stage:       string(m.Stage),
		Status:      string(m.Status),
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		UpdatedAt:   formatTime(m.UpdatedAt),
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, m := range items {
		out = append(out, matchToDTO(m))
	}
	return out
}

func matchGroupsToDTO(g usecase.MatchGroups) matchGroupsDTO {
	return matchGroupsDTO{
		Upcoming:  matchesToDTO(g.Upcoming),
		Live:      matchesToDTO(g.Live),
		Finished:  matchesToDTO(g.Finished),
		Postponed: matchesToDTO(g.Postponed),
		Cancelled: matchesToDTO(g.Cancelled),
	}
}

func goalEventToDTO(e goalevent.GoalEvent) goalEventDTO {
	return goalEventDTO{
		ID:         e.ID,
		MatchID:    e.MatchID,
		PlayerID:   e.PlayerID,
		TeamID:     e.TeamID,
		Count:      e.Count,
		RecordedAt: formatTime(e.RecordedAt),
	}
}

func standingsToDTO(view usecase.StandingsView) standingsDTO {
	rows := make([]standingRowDTO, 0, len(view.Rows))
	for _, s := range view.Rows {
		rows = append(rows, standingRowToDTO(s))
	}
	return standingsDTO{Version: view.Version, Rows: rows}
}

func standingRowToDTO(s standing.TeamStanding) standingRowDTO {
	return standingRowDTO{
		Rank:           s.Rank,
		TeamID:         s.TeamID,
		TeamName:       s.TeamName,
		LogoURL:        s.LogoURL,
		Played:         s.Played,
		Wins:           s.Wins,
		Draws:          s.Draws,
		Losses:         s.Losses,
		GoalsFor:       s.GoalsFor,
		GoalsAgainst:   s.GoalsAgainst,
		GoalDifference: s.GoalDifference,
		Points:         s.Points,
	}
}

func topScorersToDTO(view usecase.TopScorersView) topScorersDTO {
	entries := make([]scorerDTO, 0, len(view.Entries))
	for _, e := range view.Entries {
		entries = append(entries, scorerDTO{
			Rank:          e.Rank,
			PlayerID:      e.PlayerID,
			PlayerName:    e.PlayerName,
			TeamID:        e.TeamID,
			TeamName:      e.TeamName,
			Goals:         e.Goals,
			MatchesPlayed: e.MatchesPlayed,
		})
	}
	return topScorersDTO{
		Version: view.Version,
		Entries: entries,
		Summary: scorerSummaryDTO{
			TotalGoals:    view.Summary.TotalGoals,
			Leader:        view.Summary.LeaderName,
			GoalsPerMatch: view.Summary.GoalsPerMatch,
		},
	}
}

func readModelToDTO(rm usecase.ReadModel) readModelDTO {
	return readModelDTO{
		Version:    rm.Version,
		ComputedAt: formatTime(rm.ComputedAt),
		Teams:      len(rm.Standings),
		Scorers:    len(rm.TopScorers),
	}
}
