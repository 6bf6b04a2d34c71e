package match

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidScore      = errors.New("invalid match score")
	ErrInvalidTransition = errors.New("invalid match status transition")
	ErrNotEditable       = errors.New("match details are not editable in current status")
	ErrSameTeams         = errors.New("home and away team must differ")
	ErrInvalidDetails    = errors.New("invalid match details")
	// ErrStale is returned by writes whose expected prior state no longer matches storage.
	ErrStale = errors.New("match changed since it was read")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

type Stage string

const (
	StageGroup      Stage = "group_stage"
	StageSemiFinals Stage = "semi_finals"
	StageFinal      Stage = "final"
)

func (s Stage) Valid() bool {
	switch s {
	case StageGroup, StageSemiFinals, StageFinal:
		return true
	default:
		return false
	}
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Match is a single fixture between two teams.
// HomeScore and AwayScore are nil until the match starts or is back-filled.
type Match struct {
	ID          string
	HomeTeamID  string
	AwayTeamID  string
	ScheduledAt time.Time
	Venue       string
	Stage       Stage
	Status      Status
	HomeScore   *int
	AwayScore   *int
	UpdatedAt   time.Time
}

// New builds a scheduled match.
func New(id string, d Details) (Match, error) {
	m := Match{ID: id, Status: StatusScheduled}
	m = m.apply(d)
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidDetails)
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("%w: both teams are required", ErrInvalidDetails)
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("%w: team %s", ErrSameTeams, m.HomeTeamID)
	}
	if m.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduled time is required", ErrInvalidDetails)
	}
	if !m.Stage.Valid() {
		return fmt.Errorf("%w: unknown stage %q", ErrInvalidDetails, m.Stage)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidDetails, m.Status)
	}
	if m.Status == StatusFinished && (m.HomeScore == nil || m.AwayScore == nil) {
		return fmt.Errorf("%w: finished match %s has no final score", ErrInvalidScore, m.ID)
	}
	if (m.HomeScore != nil && *m.HomeScore < 0) || (m.AwayScore != nil && *m.AwayScore < 0) {
		return fmt.Errorf("%w: negative score on match %s", ErrInvalidScore, m.ID)
	}
	return nil
}

// CountsTowardStandings reports whether the match feeds standings and scorer tables.
func (m Match) CountsTowardStandings() bool {
	return m.Status == StatusFinished
}

// Involves reports whether teamID plays in the match.
func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// SideOf returns the side teamID plays on.
func (m Match) SideOf(teamID string) (Side, bool) {
	switch teamID {
	case "":
		return "", false
	case m.HomeTeamID:
		return SideHome, true
	case m.AwayTeamID:
		return SideAway, true
	default:
		return "", false
	}
}

type Filter struct {
	Status Status
	TeamID string
}

func (f Filter) Matches(m Match) bool {
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.TeamID != "" && !m.Involves(f.TeamID) {
		return false
	}
	return true
}

// Touch stamps m with now at storage precision, always later than its previous stamp
// so a compare-and-set on UpdatedAt sees every write.
func (m Match) Touch(now time.Time) Match {
	stamp := now.UTC().Truncate(time.Microsecond)
	if prev := m.UpdatedAt.UTC().Truncate(time.Microsecond); !stamp.After(prev) {
		stamp = prev.Add(time.Microsecond)
	}
	m.UpdatedAt = stamp
	return m
}

func Score(v int) *int {
	return &v
}
