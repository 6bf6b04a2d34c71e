package goalevent

import (
	"fmt"
	"time"
)

// GoalEvent records goals scored by one player in one match.
type GoalEvent struct {
	ID         string
	MatchID    string
	PlayerID   string
	TeamID     string
	Count      int
	RecordedAt time.Time
}

func (e GoalEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("goal event id is required")
	}
	if e.MatchID == "" {
		return fmt.Errorf("goal event match id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("goal event player id is required")
	}
	if e.TeamID == "" {
		return fmt.Errorf("goal event team id is required")
	}
	if e.Count < 1 {
		return fmt.Errorf("goal event count must be at least 1")
	}
	return nil
}

type Filter struct {
	MatchID  string
	PlayerID string
}
