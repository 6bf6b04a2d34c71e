package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecer struct {
	affected int64
	query    string
	args     []any
}

func (e *recordingExecer) ExecContext(_ context.Context, query string, args ...any) (sql.Result, error) {
	e.query, e.args = query, args
	return driver.RowsAffected(e.affected), nil
}

func liveAndFinished() (match.Match, match.Match) {
	at := time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)
	prev := match.Match{
		ID: "m1", HomeTeamID: "t1", AwayTeamID: "t2", ScheduledAt: at, Stage: match.StageGroup,
		Status: match.StatusLive, HomeScore: match.Score(1), AwayScore: match.Score(0),
		UpdatedAt: at.Add(30 * time.Minute),
	}
	next := prev
	next.Status = match.StatusFinished
	next = next.Touch(at.Add(95 * time.Minute))
	return prev, next
}

func TestUpdateMatch_GuardsOnPriorState(t *testing.T) {
	prev, next := liveAndFinished()
	exec := &recordingExecer{affected: 1}

	require.NoError(t, updateMatch(context.Background(), exec, prev, next))

	assert.Contains(t, exec.query, "WHERE public_id = $10 AND status = $11 AND updated_at = $12")
	require.Len(t, exec.args, 12)
	assert.Equal(t, "finished", exec.args[5])
	assert.Equal(t, "m1", exec.args[9])
	assert.Equal(t, "live", exec.args[10])
	assert.Equal(t, prev.UpdatedAt, exec.args[11])
}

func TestUpdateMatch_NoRowsIsStale(t *testing.T) {
	prev, next := liveAndFinished()

	err := updateMatch(context.Background(), &recordingExecer{affected: 0}, prev, next)
	assert.ErrorIs(t, err, match.ErrStale)
}
