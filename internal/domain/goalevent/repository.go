package goalevent

import "context"

// Repository reads goal events. Events are appended together with the match score, see match.Repository.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]GoalEvent, error)
}
