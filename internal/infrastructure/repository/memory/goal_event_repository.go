package memory

import (
	"context"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
)

type GoalEventRepository struct {
	db *Database
}

func NewGoalEventRepository(db *Database) *GoalEventRepository {
	return &GoalEventRepository{db: db}
}

func (r *GoalEventRepository) List(_ context.Context, filter goalevent.Filter) ([]goalevent.GoalEvent, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.goalsLocked(filter), nil
}
