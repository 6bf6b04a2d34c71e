package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
)

type MatchRepository struct {
	db *Database
}

func NewMatchRepository(db *Database) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.db.matchesLocked(filter), nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.matches[matchID]
	return m, ok, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.db.mu.Lock()
	if _, exists := r.db.matches[m.ID]; exists {
		r.db.mu.Unlock()
		return fmt.Errorf("insert match: id %s already exists", m.ID)
	}
	if err := r.checkTeamsLocked(m); err != nil {
		r.db.mu.Unlock()
		return err
	}
	r.db.matches[m.ID] = m
	r.db.mu.Unlock()

	r.db.publish(change{changefeed.TableMatches, changefeed.OperationInsert, m.ID})
	return nil
}

func (r *MatchRepository) Update(_ context.Context, prev, next match.Match) error {
	r.db.mu.Lock()
	if err := r.swapLocked(prev, next); err != nil {
		r.db.mu.Unlock()
		return err
	}
	r.db.mu.Unlock()

	r.db.publish(change{changefeed.TableMatches, changefeed.OperationUpdate, next.ID})
	return nil
}

func (r *MatchRepository) RecordGoal(_ context.Context, prev, next match.Match, event goalevent.GoalEvent) error {
	r.db.mu.Lock()
	if _, ok := r.db.players[event.PlayerID]; !ok {
		r.db.mu.Unlock()
		return fmt.Errorf("insert goal event: player %s does not exist", event.PlayerID)
	}
	if err := r.swapLocked(prev, next); err != nil {
		r.db.mu.Unlock()
		return err
	}
	r.db.goals = append(r.db.goals, event)
	r.db.mu.Unlock()

	r.db.publish(
		change{changefeed.TableMatches, changefeed.OperationUpdate, next.ID},
		change{changefeed.TableGoalEvents, changefeed.OperationInsert, event.ID},
	)
	return nil
}

func (r *MatchRepository) ResetAttempt(_ context.Context, prev, next match.Match) error {
	r.db.mu.Lock()
	if err := r.swapLocked(prev, next); err != nil {
		r.db.mu.Unlock()
		return err
	}
	changes := []change{{changefeed.TableMatches, changefeed.OperationUpdate, next.ID}}
	kept := r.db.goals[:0]
	for _, e := range r.db.goals {
		if e.MatchID == next.ID {
			changes = append(changes, change{changefeed.TableGoalEvents, changefeed.OperationDelete, e.ID})
			continue
		}
		kept = append(kept, e)
	}
	r.db.goals = kept
	r.db.mu.Unlock()

	r.db.publish(changes...)
	return nil
}

// swapLocked replaces the stored match when it still matches prev.
func (r *MatchRepository) swapLocked(prev, next match.Match) error {
	stored, exists := r.db.matches[next.ID]
	if !exists {
		return fmt.Errorf("update match: not found")
	}
	if stored.Status != prev.Status || !stored.UpdatedAt.Equal(prev.UpdatedAt) {
		return fmt.Errorf("%w: match %s is %s as of %s", match.ErrStale, next.ID, stored.Status, stored.UpdatedAt.Format(time.RFC3339Nano))
	}
	if err := r.checkTeamsLocked(next); err != nil {
		return err
	}
	r.db.matches[next.ID] = next
	return nil
}

func (r *MatchRepository) checkTeamsLocked(m match.Match) error {
	for _, teamID := range []string{m.HomeTeamID, m.AwayTeamID} {
		if _, ok := r.db.teams[teamID]; !ok {
			return fmt.Errorf("match team %s does not exist", teamID)
		}
	}
	return nil
}
