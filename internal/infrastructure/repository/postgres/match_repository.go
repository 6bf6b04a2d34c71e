package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	qb "github.com/riskibarqy/tournament-tracker/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func matchConditions(filter match.Filter) []qb.Condition {
	var out []qb.Condition
	if filter.Status != "" {
		out = append(out, qb.Eq("status", string(filter.Status)))
	}
	if filter.TeamID != "" {
		out = append(out, qb.Or(
			qb.Eq("home_team_public_id", filter.TeamID),
			qb.Eq("away_team_public_id", filter.TeamID),
		))
	}
	return out
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	return selectMatches(ctx, r.db, filter)
}

func selectMatches(ctx context.Context, q sqlx.QueryerContext, filter match.Filter) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(matchConditions(filter)...).
		OrderBy("scheduled_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", newMatchInsertModel(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, prev, next match.Match) error {
	return updateMatch(ctx, r.db, prev, next)
}

func (r *MatchRepository) RecordGoal(ctx context.Context, prev, next match.Match, event goalevent.GoalEvent) error {
	return r.inTx(ctx, "record goal", func(tx *sqlx.Tx) error {
		if err := updateMatch(ctx, tx, prev, next); err != nil {
			return err
		}

		recordedAt := event.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now()
		}
		query, args, err := qb.InsertModel("goal_events", goalEventInsertModel{
			PublicID:   event.ID,
			MatchID:    event.MatchID,
			PlayerID:   event.PlayerID,
			TeamID:     event.TeamID,
			Count:      event.Count,
			RecordedAt: recordedAt.UTC(),
		}, "")
		if err != nil {
			return fmt.Errorf("build insert goal event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert goal event: %w", err)
		}
		return nil
	})
}

func (r *MatchRepository) ResetAttempt(ctx context.Context, prev, next match.Match) error {
	return r.inTx(ctx, "reset match attempt", func(tx *sqlx.Tx) error {
		if err := updateMatch(ctx, tx, prev, next); err != nil {
			return err
		}

		query, args, err := qb.DeleteFrom("goal_events").
			Where(qb.Eq("match_public_id", next.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build delete goal events query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete goal events: %w", err)
		}
		return nil
	})
}

func (r *MatchRepository) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx %s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", op, err)
	}
	return nil
}

// updateMatch writes next only while the row still has prev's status and updated_at.
func updateMatch(ctx context.Context, exec sqlx.ExecerContext, prev, next match.Match) error {
	query, args, err := qb.UpdateModel("matches", newMatchUpdateModel(next), "",
		qb.Eq("status", string(prev.Status)),
		qb.Eq("updated_at", prev.UpdatedAt.UTC()),
	)
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update match: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: match %s is no longer %s as of %s", match.ErrStale, next.ID, prev.Status, prev.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
	return nil
}
