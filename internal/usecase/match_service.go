package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/platform/id"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
)

type MatchInput struct {
	HomeTeamID  string
	AwayTeamID  string
	ScheduledAt time.Time
	Venue       string
	Stage       match.Stage
}

type FinishInput struct {
	HomeScore *int
	AwayScore *int
}

type GoalInput struct {
	PlayerID string
	Count    int
}

// MatchGroups mirrors the public matches page.
type MatchGroups struct {
	Upcoming  []match.Match
	Live      []match.Match
	Finished  []match.Match
	Postponed []match.Match
	Cancelled []match.Match
}

type MatchService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	goalRepo   goalevent.Repository
	ids        id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	goalRepo goalevent.Repository,
	ids id.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		goalRepo:   goalRepo,
		ids:        ids,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// List returns matches ordered by kickoff.
func (s *MatchService) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	slices.SortFunc(items, byKickoff)
	return items, nil
}

// Grouped splits matches by status. Finished matches are most recent first.
func (s *MatchService) Grouped(ctx context.Context) (MatchGroups, error) {
	items, err := s.List(ctx, match.Filter{})
	if err != nil {
		return MatchGroups{}, err
	}

	out := MatchGroups{
		Upcoming:  []match.Match{},
		Live:      []match.Match{},
		Finished:  []match.Match{},
		Postponed: []match.Match{},
		Cancelled: []match.Match{},
	}
	for _, m := range items {
		switch m.Status {
		case match.StatusScheduled:
			out.Upcoming = append(out.Upcoming, m)
		case match.StatusLive:
			out.Live = append(out.Live, m)
		case match.StatusFinished:
			out.Finished = append(out.Finished, m)
		case match.StatusPostponed:
			out.Postponed = append(out.Postponed, m)
		case match.StatusCancelled:
			out.Cancelled = append(out.Cancelled, m)
		}
	}
	slices.Reverse(out.Finished)
	return out, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchService) Create(ctx context.Context, in MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return match.Match{}, err
	}
	if err = s.ensureTeams(ctx, in.HomeTeamID, in.AwayTeamID); err != nil {
		return match.Match{}, err
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	item, err := match.New(matchID, details(in))
	if err != nil {
		err = classify(err)
		return match.Match{}, err
	}
	item = item.Touch(s.now())

	if cerr := s.matchRepo.Create(ctx, item); cerr != nil {
		err = fmt.Errorf("create match: %w", classify(cerr))
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", item.ID,
		"home_team_id", item.HomeTeamID,
		"away_team_id", item.AwayTeamID,
		"stage", item.Stage,
	)
	return item, nil
}

func (s *MatchService) UpdateDetails(ctx context.Context, matchID string, in MatchInput) (match.Match, error) {
	if err := requireAdmin(ctx); err != nil {
		return match.Match{}, err
	}
	if err := s.ensureTeams(ctx, in.HomeTeamID, in.AwayTeamID); err != nil {
		return match.Match{}, err
	}
	return s.transition(ctx, "UpdateDetails", matchID, func(m match.Match) (match.Match, error) {
		return m.UpdateDetails(details(in))
	}, s.matchRepo.Update)
}

func (s *MatchService) Start(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "Start", matchID, func(m match.Match) (match.Match, error) {
		return m.Start(s.now())
	}, s.matchRepo.Update)
}

// Finish closes the match. An explicit final score may not be lower than the goals already
// credited to players of either side.
func (s *MatchService) Finish(ctx context.Context, matchID string, in FinishInput) (match.Match, error) {
	return s.transition(ctx, "Finish", matchID, func(m match.Match) (match.Match, error) {
		next, err := m.Finish(in.HomeScore, in.AwayScore)
		if err != nil {
			return match.Match{}, err
		}
		events, err := s.goalRepo.List(ctx, goalevent.Filter{MatchID: m.ID})
		if err != nil {
			return match.Match{}, fmt.Errorf("list goal events: %w", err)
		}
		if err := next.CheckRecordedGoals(events); err != nil {
			return match.Match{}, err
		}
		return next, nil
	}, s.matchRepo.Update)
}

func (s *MatchService) Postpone(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "Postpone", matchID, match.Match.Postpone, s.matchRepo.Update)
}

func (s *MatchService) Cancel(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "Cancel", matchID, match.Match.Cancel, s.matchRepo.Update)
}

// Reopen moves a finished match back to live; its goals leave the aggregates until it is finished again.
func (s *MatchService) Reopen(ctx context.Context, matchID string) (match.Match, error) {
	return s.transition(ctx, "Reopen", matchID, match.Match.Reopen, s.matchRepo.Update)
}

// Reschedule abandons a postponed attempt: the score is cleared and its goal events are
// deleted together with the status change, so a restart begins at 0-0 with no credited goals.
func (s *MatchService) Reschedule(ctx context.Context, matchID string, at time.Time) (match.Match, error) {
	return s.transition(ctx, "Reschedule", matchID, func(m match.Match) (match.Match, error) {
		return m.Reschedule(at.UTC())
	}, s.matchRepo.ResetAttempt)
}

// RecordGoal credits goals to a player of one of the two sides of a live match.
func (s *MatchService) RecordGoal(ctx context.Context, matchID string, in GoalInput) (match.Match, goalevent.GoalEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordGoal")
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return match.Match{}, goalevent.GoalEvent{}, err
	}
	if in.Count == 0 {
		in.Count = 1
	}
	if in.Count < 1 {
		err = fmt.Errorf("%w: goal count must be positive", ErrInvalidInput)
		return match.Match{}, goalevent.GoalEvent{}, err
	}

	current, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, goalevent.GoalEvent{}, err
	}

	playerID := strings.TrimSpace(in.PlayerID)
	scorer, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		err = fmt.Errorf("get player: %w", err)
		return match.Match{}, goalevent.GoalEvent{}, err
	}
	if !exists {
		err = fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		return match.Match{}, goalevent.GoalEvent{}, err
	}
	side, ok := current.SideOf(scorer.TeamID)
	if !ok {
		err = fmt.Errorf("%w: player %s does not play for either team of match %s", ErrInvalidInput, scorer.ID, current.ID)
		return match.Match{}, goalevent.GoalEvent{}, err
	}

	next := current
	for i := 0; i < in.Count; i++ {
		if next, err = next.RecordGoal(side); err != nil {
			err = classify(err)
			return match.Match{}, goalevent.GoalEvent{}, err
		}
	}
	next = next.Touch(s.now())

	eventID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, goalevent.GoalEvent{}, fmt.Errorf("generate goal event id: %w", err)
	}
	event := goalevent.GoalEvent{
		ID:         eventID,
		MatchID:    next.ID,
		PlayerID:   scorer.ID,
		TeamID:     scorer.TeamID,
		Count:      in.Count,
		RecordedAt: next.UpdatedAt,
	}
	if err = s.matchRepo.RecordGoal(ctx, current, next, event); err != nil {
		err = fmt.Errorf("record goal: %w", classify(err))
		return match.Match{}, goalevent.GoalEvent{}, err
	}

	s.logger.InfoContext(ctx, "goal recorded",
		"match_id", next.ID,
		"player_id", scorer.ID,
		"count", in.Count,
		"home_score", *next.HomeScore,
		"away_score", *next.AwayScore,
	)
	return next, event, nil
}

// transition applies one lifecycle step. store receives the match as read, so a write that
// raced with another one fails with match.ErrStale instead of overwriting it.
func (s *MatchService) transition(
	ctx context.Context,
	op string,
	matchID string,
	apply func(match.Match) (match.Match, error),
	store func(ctx context.Context, prev, next match.Match) error,
) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService."+op)
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return match.Match{}, err
	}
	current, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	next, err := apply(current)
	if err != nil {
		err = classify(err)
		return match.Match{}, err
	}
	next = next.Touch(s.now())

	if err = store(ctx, current, next); err != nil {
		err = fmt.Errorf("update match: %w", classify(err))
		return match.Match{}, err
	}

	s.logger.InfoContext(ctx, "match updated",
		"match_id", next.ID,
		"operation", op,
		"from", current.Status,
		"to", next.Status,
	)
	return next, nil
}

func (s *MatchService) ensureTeams(ctx context.Context, teamIDs ...string) error {
	for _, teamID := range teamIDs {
		teamID = strings.TrimSpace(teamID)
		if teamID == "" {
			return fmt.Errorf("%w: home and away team are required", ErrInvalidInput)
		}
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}
	return nil
}

func details(in MatchInput) match.Details {
	return match.Details{
		HomeTeamID:  in.HomeTeamID,
		AwayTeamID:  in.AwayTeamID,
		ScheduledAt: in.ScheduledAt.UTC(),
		Venue:       in.Venue,
		Stage:       in.Stage,
	}
}

func byKickoff(a, b match.Match) int {
	if c := a.ScheduledAt.Compare(b.ScheduledAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
