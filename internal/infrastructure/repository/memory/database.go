package memory

import (
	"sync"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

// Publisher receives a notification for every committed write.
type Publisher interface {
	Publish(table string, op changefeed.Operation, rowID string)
}

type change struct {
	table string
	op    changefeed.Operation
	rowID string
}

// Database holds every table behind one lock so multi-table writes stay atomic.
type Database struct {
	mu        sync.RWMutex
	teams     map[string]team.Team
	players   map[string]player.Player
	matches   map[string]match.Match
	goals     []goalevent.GoalEvent
	publisher Publisher
}

func NewDatabase(seed Seed, publisher Publisher) *Database {
	db := &Database{
		teams:     make(map[string]team.Team, len(seed.Teams)),
		players:   make(map[string]player.Player, len(seed.Players)),
		matches:   make(map[string]match.Match, len(seed.Matches)),
		goals:     append([]goalevent.GoalEvent(nil), seed.Goals...),
		publisher: publisher,
	}
	for _, t := range seed.Teams {
		db.teams[t.ID] = t
	}
	for _, p := range seed.Players {
		db.players[p.ID] = p
	}
	for _, m := range seed.Matches {
		db.matches[m.ID] = m
	}
	return db
}

// publish runs after the lock is released.
func (d *Database) publish(changes ...change) {
	if d.publisher == nil {
		return
	}
	for _, c := range changes {
		d.publisher.Publish(c.table, c.op, c.rowID)
	}
}
