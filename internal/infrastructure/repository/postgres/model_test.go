package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	qb "github.com/riskibarqy/tournament-tracker/internal/platform/querybuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchTableModelToDomain(t *testing.T) {
	kickoff := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	row := matchTableModel{
		PublicID:    "m1",
		HomeTeamID:  "t1",
		AwayTeamID:  "t2",
		ScheduledAt: kickoff,
		Stage:       "final",
		Status:      "live",
		HomeScore:   sql.NullInt64{Int64: 2, Valid: true},
	}

	got := row.toDomain()
	assert.Equal(t, match.StatusLive, got.Status)
	assert.Equal(t, match.StageFinal, got.Stage)
	require.NotNil(t, got.HomeScore)
	assert.Equal(t, 2, *got.HomeScore)
	assert.Nil(t, got.AwayScore)
}

func TestMatchUpdateModelQuery(t *testing.T) {
	updatedAt := time.Date(2026, 3, 1, 16, 0, 0, 0, time.UTC)
	m := match.Match{
		ID:          "m1",
		HomeTeamID:  "t1",
		AwayTeamID:  "t2",
		ScheduledAt: updatedAt.Add(-time.Hour),
		Stage:       match.StageGroup,
		Status:      match.StatusFinished,
		HomeScore:   match.Score(1),
		AwayScore:   match.Score(0),
		UpdatedAt:   updatedAt,
	}

	query, args, err := qb.UpdateModel("matches", newMatchUpdateModel(m), "")
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE matches SET home_team_public_id = $1, away_team_public_id = $2, scheduled_at = $3, venue = $4, "+
			"stage = $5, status = $6, home_score = $7, away_score = $8, updated_at = $9 WHERE public_id = $10",
		query)
	require.Len(t, args, 10)
	assert.Equal(t, "finished", args[5])
	assert.Equal(t, "m1", args[9])
}

func TestMatchConditions(t *testing.T) {
	query, args, err := qb.Select("*").From("matches").
		Where(matchConditions(match.Filter{Status: match.StatusFinished, TeamID: "t1"})...).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT * FROM matches WHERE status = $1 AND (home_team_public_id = $2 OR away_team_public_id = $3)", query)
	assert.Equal(t, []any{"finished", "t1", "t1"}, args)
}
