package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

type TeamRepository struct {
	db *Database
}

func NewTeamRepository(db *Database) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.teamsLocked(), nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	r.db.mu.Lock()
	if _, exists := r.db.teams[t.ID]; exists {
		r.db.mu.Unlock()
		return fmt.Errorf("insert team: id %s already exists", t.ID)
	}
	if r.nameTakenLocked(t) {
		r.db.mu.Unlock()
		return fmt.Errorf("%w: %s", team.ErrDuplicateName, t.Name)
	}
	r.db.teams[t.ID] = t
	r.db.mu.Unlock()

	r.db.publish(change{changefeed.TableTeams, changefeed.OperationInsert, t.ID})
	return nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	r.db.mu.Lock()
	if _, exists := r.db.teams[t.ID]; !exists {
		r.db.mu.Unlock()
		return fmt.Errorf("update team: not found")
	}
	if r.nameTakenLocked(t) {
		r.db.mu.Unlock()
		return fmt.Errorf("%w: %s", team.ErrDuplicateName, t.Name)
	}
	r.db.teams[t.ID] = t
	r.db.mu.Unlock()

	r.db.publish(change{changefeed.TableTeams, changefeed.OperationUpdate, t.ID})
	return nil
}

// Delete cascades to the team's players and refuses while matches reference it.
func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.db.mu.Lock()
	if _, exists := r.db.teams[teamID]; !exists {
		r.db.mu.Unlock()
		return nil
	}
	for _, m := range r.db.matches {
		if m.Involves(teamID) {
			r.db.mu.Unlock()
			return fmt.Errorf("%w: %s", team.ErrInUse, teamID)
		}
	}

	changes := []change{{changefeed.TableTeams, changefeed.OperationDelete, teamID}}
	delete(r.db.teams, teamID)
	for id, p := range r.db.players {
		if p.TeamID == teamID {
			delete(r.db.players, id)
			changes = append(changes, change{changefeed.TablePlayers, changefeed.OperationDelete, id})
		}
	}
	r.db.mu.Unlock()

	r.db.publish(changes...)
	return nil
}

func (r *TeamRepository) nameTakenLocked(t team.Team) bool {
	for _, existing := range r.db.teams {
		if existing.ID != t.ID && strings.EqualFold(existing.Name, t.Name) {
			return true
		}
	}
	return false
}
