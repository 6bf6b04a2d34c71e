package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
)

// Details are the admin-editable fields of a match.
type Details struct {
	HomeTeamID  string
	AwayTeamID  string
	ScheduledAt time.Time
	Venue       string
	Stage       Stage
}

// Transitions return the updated match by value. On error the zero Match is returned
// and the receiver is left as it was.

func (m Match) Start(now time.Time) (Match, error) {
	if m.Status != StatusScheduled {
		return Match{}, m.transitionErr(StatusLive)
	}
	m.Status = StatusLive
	m.HomeScore = Score(0)
	m.AwayScore = Score(0)
	m.UpdatedAt = now
	return m, nil
}

// RecordGoal increments the score of the given side on a live match.
func (m Match) RecordGoal(side Side) (Match, error) {
	if m.Status != StatusLive {
		return Match{}, fmt.Errorf("%w: cannot record goal on %s match %s", ErrInvalidTransition, m.Status, m.ID)
	}
	home, away := scoreOrZero(m.HomeScore), scoreOrZero(m.AwayScore)
	switch side {
	case SideHome:
		home++
	case SideAway:
		away++
	default:
		return Match{}, fmt.Errorf("%w: unknown side %q", ErrInvalidDetails, side)
	}
	m.HomeScore, m.AwayScore = Score(home), Score(away)
	return m, nil
}

// Finish closes a live match, or back-fills a scheduled one. On a live match a nil
// argument keeps the current score for that side.
func (m Match) Finish(home, away *int) (Match, error) {
	switch m.Status {
	case StatusLive:
		if home == nil {
			home = m.HomeScore
		}
		if away == nil {
			away = m.AwayScore
		}
	case StatusScheduled:
	default:
		return Match{}, m.transitionErr(StatusFinished)
	}

	if home == nil || away == nil {
		return Match{}, fmt.Errorf("%w: both final scores are required for match %s", ErrInvalidScore, m.ID)
	}
	if *home < 0 || *away < 0 {
		return Match{}, fmt.Errorf("%w: scores must be non-negative, got %d-%d", ErrInvalidScore, *home, *away)
	}

	m.Status = StatusFinished
	m.HomeScore, m.AwayScore = Score(*home), Score(*away)
	return m, nil
}

// RecordedGoals sums goal events of m per side. Events for other teams are ignored.
func (m Match) RecordedGoals(events []goalevent.GoalEvent) (home, away int) {
	for _, e := range events {
		if e.MatchID != m.ID {
			continue
		}
		switch side, _ := m.SideOf(e.TeamID); side {
		case SideHome:
			home += e.Count
		case SideAway:
			away += e.Count
		}
	}
	return home, away
}

// CheckRecordedGoals rejects a score lower than the goals already credited to players.
func (m Match) CheckRecordedGoals(events []goalevent.GoalEvent) error {
	home, away := m.RecordedGoals(events)
	if home == 0 && away == 0 {
		return nil
	}
	if scoreOrZero(m.HomeScore) < home || scoreOrZero(m.AwayScore) < away {
		return fmt.Errorf("%w: score %d-%d is below the %d-%d goals recorded for match %s",
			ErrInvalidScore, scoreOrZero(m.HomeScore), scoreOrZero(m.AwayScore), home, away, m.ID)
	}
	return nil
}

// Reopen moves a finished match back to live so corrections can be recorded.
func (m Match) Reopen() (Match, error) {
	if m.Status != StatusFinished {
		return Match{}, m.transitionErr(StatusLive)
	}
	m.Status = StatusLive
	return m, nil
}

func (m Match) Postpone() (Match, error) {
	if m.Status != StatusScheduled && m.Status != StatusLive {
		return Match{}, m.transitionErr(StatusPostponed)
	}
	m.Status = StatusPostponed
	return m, nil
}

func (m Match) Cancel() (Match, error) {
	switch m.Status {
	case StatusScheduled, StatusLive, StatusPostponed:
		m.Status = StatusCancelled
		return m, nil
	default:
		return Match{}, m.transitionErr(StatusCancelled)
	}
}

// Reschedule returns a postponed match to scheduled at a new time. The earlier attempt is
// abandoned: its partial score is cleared here and the repository drops its goal events.
func (m Match) Reschedule(at time.Time) (Match, error) {
	if m.Status != StatusPostponed {
		return Match{}, m.transitionErr(StatusScheduled)
	}
	if at.IsZero() {
		return Match{}, fmt.Errorf("%w: scheduled time is required", ErrInvalidDetails)
	}
	m.Status = StatusScheduled
	m.ScheduledAt = at
	m.HomeScore, m.AwayScore = nil, nil
	return m, nil
}

// UpdateDetails edits teams, time, venue and stage while the match has not been played.
func (m Match) UpdateDetails(d Details) (Match, error) {
	if m.Status != StatusScheduled && m.Status != StatusPostponed {
		return Match{}, fmt.Errorf("%w: match %s is %s", ErrNotEditable, m.ID, m.Status)
	}
	updated := m.apply(d)
	if err := updated.Validate(); err != nil {
		return Match{}, err
	}
	return updated, nil
}

func (m Match) apply(d Details) Match {
	m.HomeTeamID = strings.TrimSpace(d.HomeTeamID)
	m.AwayTeamID = strings.TrimSpace(d.AwayTeamID)
	m.ScheduledAt = d.ScheduledAt
	m.Venue = strings.TrimSpace(d.Venue)
	m.Stage = d.Stage
	if m.Stage == "" {
		m.Stage = StageGroup
	}
	return m
}

func (m Match) transitionErr(to Status) error {
	return fmt.Errorf("%w: %s -> %s for match %s", ErrInvalidTransition, m.Status, to, m.ID)
}

func scoreOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
