package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
)

// SnapshotReader reads the read model source tables in one REPEATABLE READ transaction,
// so every table reflects the same committed state.
type SnapshotReader struct {
	db *sqlx.DB
}

func NewSnapshotReader(db *sqlx.DB) *SnapshotReader {
	return &SnapshotReader{db: db}
}

func (r *SnapshotReader) ReadSnapshot(ctx context.Context) (standing.Snapshot, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return standing.Snapshot{}, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var snap standing.Snapshot
	if snap.Teams, err = selectTeams(ctx, tx); err != nil {
		return standing.Snapshot{}, err
	}
	if snap.Players, err = selectPlayers(ctx, tx, player.Filter{}); err != nil {
		return standing.Snapshot{}, err
	}
	if snap.Matches, err = selectMatches(ctx, tx, match.Filter{}); err != nil {
		return standing.Snapshot{}, err
	}
	if snap.Goals, err = selectGoalEvents(ctx, tx, goalevent.Filter{}); err != nil {
		return standing.Snapshot{}, err
	}

	if err := tx.Commit(); err != nil {
		return standing.Snapshot{}, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return snap, nil
}
