package changefeed

import (
	"context"
	"time"
)

// Tables whose changes invalidate the read model.
const (
	TableTeams      = "teams"
	TablePlayers    = "players"
	TableMatches    = "matches"
	TableGoalEvents = "goal_events"
)

var WatchedTables = []string{TableTeams, TablePlayers, TableMatches, TableGoalEvents}

type Operation string

const (
	OperationInsert Operation = "INSERT"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
	// OperationResync is emitted after a reconnect, when events may have been missed.
	OperationResync Operation = "RESYNC"
)

// Notification tells subscribers that a row of a watched table changed.
type Notification struct {
	Table      string
	Operation  Operation
	RowID      string
	ReceivedAt time.Time
}

// Source delivers change notifications until ctx is done, then closes the channel.
type Source interface {
	Subscribe(ctx context.Context, tables []string) (<-chan Notification, error)
}
