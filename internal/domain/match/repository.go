package match

import (
	"context"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, m Match) error
	// Update stores next if the stored match still has prev's status and updated_at,
	// otherwise it returns ErrStale and stores nothing.
	Update(ctx context.Context, prev, next Match) error
	// RecordGoal stores the incremented score and appends the goal event in one unit of work,
	// guarded like Update.
	RecordGoal(ctx context.Context, prev, next Match, event goalevent.GoalEvent) error
	// ResetAttempt stores next and deletes the goal events of the match in one unit of work,
	// guarded like Update.
	ResetAttempt(ctx context.Context, prev, next Match) error
}
