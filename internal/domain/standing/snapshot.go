package standing

import (
	"context"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

// Snapshot is the source data of one read model computation.
type Snapshot struct {
	Teams   []team.Team
	Players []player.Player
	Matches []match.Match
	Goals   []goalevent.GoalEvent
}

// SnapshotReader loads every source table from one consistent view of storage, so rows
// never reference entities written after an earlier table was read.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context) (Snapshot, error)
}
