package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
)

type PlayerRepository struct {
	db *Database
}

func NewPlayerRepository(db *Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.playersLocked(filter), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.db.mu.Lock()
	if _, exists := r.db.players[p.ID]; exists {
		r.db.mu.Unlock()
		return fmt.Errorf("insert player: id %s already exists", p.ID)
	}
	if err := r.checkLocked(p); err != nil {
		r.db.mu.Unlock()
		return err
	}
	p.Goals = 0
	r.db.players[p.ID] = p
	r.db.mu.Unlock()

	r.db.publish(change{changefeed.TablePlayers, changefeed.OperationInsert, p.ID})
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.db.mu.Lock()
	if _, exists := r.db.players[p.ID]; !exists {
		r.db.mu.Unlock()
		return fmt.Errorf("update player: not found")
	}
	if err := r.checkLocked(p); err != nil {
		r.db.mu.Unlock()
		return err
	}
	p.Goals = 0
	r.db.players[p.ID] = p
	r.db.mu.Unlock()

	r.db.publish(change{changefeed.TablePlayers, changefeed.OperationUpdate, p.ID})
	return nil
}

func (r *PlayerRepository) checkLocked(p player.Player) error {
	if _, ok := r.db.teams[p.TeamID]; !ok {
		return fmt.Errorf("player team %s does not exist", p.TeamID)
	}
	for _, existing := range r.db.players {
		if existing.ID != p.ID && existing.TeamID == p.TeamID && existing.JerseyNumber == p.JerseyNumber {
			return fmt.Errorf("%w: team=%s jersey=%d", player.ErrDuplicateJersey, p.TeamID, p.JerseyNumber)
		}
	}
	return nil
}
