package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
)

var ErrDuplicateJersey = errors.New("jersey number already taken in team")

type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionForward    Position = "forward"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

const (
	MinJerseyNumber = 1
	MaxJerseyNumber = 99
)

// Player is a squad member of one team. Goals is derived from finished matches and never stored.
type Player struct {
	ID           string
	TeamID       string
	Name         string
	JerseyNumber int
	Position     Position
	PhotoURL     string
	Goals        int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.JerseyNumber < MinJerseyNumber || p.JerseyNumber > MaxJerseyNumber {
		return fmt.Errorf("jersey number must be between %d and %d", MinJerseyNumber, MaxJerseyNumber)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.PhotoURL != "" && !team.IsAbsoluteHTTPURL(p.PhotoURL) {
		return fmt.Errorf("player photo url must be an absolute http(s) url")
	}

	return nil
}

type Filter struct {
	TeamID string
}
