package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/platform/id"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
)

type TeamInput struct {
	Name    string
	LogoURL string
}

type TeamService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
	ids       id.Generator
	logger    *logging.Logger
}

func NewTeamService(teamRepo team.Repository, matchRepo match.Repository, ids id.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		ids:       ids,
		logger:    logger,
	}
}

// List returns teams ordered by name.
func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	slices.SortFunc(items, func(a, b team.Team) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) Create(ctx context.Context, in TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return team.Team{}, err
	}

	teamID, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	item := team.Team{
		ID:      teamID,
		Name:    strings.TrimSpace(in.Name),
		LogoURL: strings.TrimSpace(in.LogoURL),
	}
	if verr := item.Validate(); verr != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, verr)
		return team.Team{}, err
	}

	if cerr := s.teamRepo.Create(ctx, item); cerr != nil {
		err = fmt.Errorf("create team: %w", classify(cerr))
		return team.Team{}, err
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "name", item.Name)
	return item, nil
}

// Update renames a team or changes its logo.
func (s *TeamService) Update(ctx context.Context, teamID string, in TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return team.Team{}, err
	}

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	item.Name = strings.TrimSpace(in.Name)
	item.LogoURL = strings.TrimSpace(in.LogoURL)
	if verr := item.Validate(); verr != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, verr)
		return team.Team{}, err
	}

	if uerr := s.teamRepo.Update(ctx, item); uerr != nil {
		err = fmt.Errorf("update team: %w", classify(uerr))
		return team.Team{}, err
	}
	return item, nil
}

// Delete refuses while any match still references the team.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return err
	}
	if _, err = s.Get(ctx, teamID); err != nil {
		return err
	}

	refs, err := s.matchRepo.List(ctx, match.Filter{TeamID: teamID})
	if err != nil {
		err = fmt.Errorf("list team matches: %w", err)
		return err
	}
	if len(refs) > 0 {
		err = fmt.Errorf("%w: %w: team=%s matches=%d", ErrConflict, team.ErrInUse, teamID, len(refs))
		return err
	}

	if derr := s.teamRepo.Delete(ctx, teamID); derr != nil {
		err = fmt.Errorf("delete team: %w", classify(derr))
		return err
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", teamID)
	return nil
}
