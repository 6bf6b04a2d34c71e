package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	qb "github.com/riskibarqy/tournament-tracker/internal/platform/querybuilder"
)

type GoalEventRepository struct {
	db *sqlx.DB
}

func NewGoalEventRepository(db *sqlx.DB) *GoalEventRepository {
	return &GoalEventRepository{db: db}
}

func (r *GoalEventRepository) List(ctx context.Context, filter goalevent.Filter) ([]goalevent.GoalEvent, error) {
	return selectGoalEvents(ctx, r.db, filter)
}

func selectGoalEvents(ctx context.Context, q sqlx.QueryerContext, filter goalevent.Filter) ([]goalevent.GoalEvent, error) {
	var conditions []qb.Condition
	if filter.MatchID != "" {
		conditions = append(conditions, qb.Eq("match_public_id", filter.MatchID))
	}
	if filter.PlayerID != "" {
		conditions = append(conditions, qb.Eq("player_public_id", filter.PlayerID))
	}

	query, args, err := qb.Select("*").From("goal_events").
		Where(conditions...).
		OrderBy("recorded_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goal events query: %w", err)
	}

	var rows []goalEventTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goal events: %w", err)
	}

	out := make([]goalevent.GoalEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
