package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
)

type matchTableModel struct {
	ID          int64         `db:"id"`
	PublicID    string        `db:"public_id"`
	HomeTeamID  string        `db:"home_team_public_id"`
	AwayTeamID  string        `db:"away_team_public_id"`
	ScheduledAt time.Time     `db:"scheduled_at"`
	Venue       string        `db:"venue"`
	Stage       string        `db:"stage"`
	Status      string        `db:"status"`
	HomeScore   sql.NullInt64 `db:"home_score"`
	AwayScore   sql.NullInt64 `db:"away_score"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID    string    `db:"public_id"`
	HomeTeamID  string    `db:"home_team_public_id"`
	AwayTeamID  string    `db:"away_team_public_id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Venue       string    `db:"venue"`
	Stage       string    `db:"stage"`
	Status      string    `db:"status"`
	HomeScore   *int      `db:"home_score"`
	AwayScore   *int      `db:"away_score"`
}

type matchUpdateModel struct {
	PublicID    string    `db:"public_id,key"`
	HomeTeamID  string    `db:"home_team_public_id"`
	AwayTeamID  string    `db:"away_team_public_id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Venue       string    `db:"venue"`
	Stage       string    `db:"stage"`
	Status      string    `db:"status"`
	HomeScore   *int      `db:"home_score"`
	AwayScore   *int      `db:"away_score"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type goalEventTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	MatchID    string    `db:"match_public_id"`
	PlayerID   string    `db:"player_public_id"`
	TeamID     string    `db:"team_public_id"`
	Count      int       `db:"goal_count"`
	RecordedAt time.Time `db:"recorded_at"`
}

type goalEventInsertModel struct {
	PublicID   string    `db:"public_id"`
	MatchID    string    `db:"match_public_id"`
	PlayerID   string    `db:"player_public_id"`
	TeamID     string    `db:"team_public_id"`
	Count      int       `db:"goal_count"`
	RecordedAt time.Time `db:"recorded_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:          m.PublicID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		ScheduledAt: m.ScheduledAt,
		Venue:       m.Venue,
		Stage:       match.Stage(m.Stage),
		Status:      match.Status(m.Status),
		HomeScore:   nullInt64ToIntPtr(m.HomeScore),
		AwayScore:   nullInt64ToIntPtr(m.AwayScore),
		UpdatedAt:   m.UpdatedAt,
	}
}

func newMatchInsertModel(m match.Match) matchInsertModel {
	return matchInsertModel{
		PublicID:    m.ID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		ScheduledAt: m.ScheduledAt.UTC(),
		Venue:       m.Venue,
		Stage:       string(m.Stage),
		Status:      string(m.Status),
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
	}
}

func newMatchUpdateModel(m match.Match) matchUpdateModel {
	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return matchUpdateModel{
		PublicID:    m.ID,
		HomeTeamID:  m.HomeTeamID,
		AwayTeamID:  m.AwayTeamID,
		ScheduledAt: m.ScheduledAt.UTC(),
		Venue:       m.Venue,
		Stage:       string(m.Stage),
		Status:      string(m.Status),
		HomeScore:   m.HomeScore,
		AwayScore:   m.AwayScore,
		UpdatedAt:   updatedAt.UTC(),
	}
}

func (m goalEventTableModel) toDomain() goalevent.GoalEvent {
	return goalevent.GoalEvent{
		ID:         m.PublicID,
		MatchID:    m.MatchID,
		PlayerID:   m.PlayerID,
		TeamID:     m.TeamID,
		Count:      m.Count,
		RecordedAt: m.RecordedAt,
	}
}
