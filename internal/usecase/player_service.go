package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/platform/id"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
)

type PlayerInput struct {
	TeamID       string
	Name         string
	JerseyNumber int
	Position     player.Position
	PhotoURL     string
}

// ReadModelReader is the read side consumed by query services.
type ReadModelReader interface {
	Current(ctx context.Context) (ReadModel, error)
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	readModel  ReadModelReader
	ids        id.Generator
	logger     *logging.Logger
}

func NewPlayerService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	readModel ReadModelReader,
	ids id.Generator,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		readModel:  readModel,
		ids:        ids,
		logger:     logger,
	}
}

// List returns players annotated with goals from finished matches,
// ordered by team, jersey number and id.
func (s *PlayerService) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	filter.TeamID = strings.TrimSpace(filter.TeamID)
	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	if err := s.annotateGoals(ctx, items); err != nil {
		return nil, err
	}
	slices.SortFunc(items, func(a, b player.Player) int {
		if c := strings.Compare(a.TeamID, b.TeamID); c != 0 {
			return c
		}
		if a.JerseyNumber != b.JerseyNumber {
			return a.JerseyNumber - b.JerseyNumber
		}
		return strings.Compare(a.ID, b.ID)
	})
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	item, err := s.get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	items := []player.Player{item}
	if err := s.annotateGoals(ctx, items); err != nil {
		return player.Player{}, err
	}
	return items[0], nil
}

func (s *PlayerService) Create(ctx context.Context, in PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return player.Player{}, err
	}
	if err = s.ensureTeam(ctx, in.TeamID); err != nil {
		return player.Player{}, err
	}

	playerID, err := s.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	item := applyPlayerInput(player.Player{ID: playerID}, in)
	if verr := item.Validate(); verr != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, verr)
		return player.Player{}, err
	}

	if cerr := s.playerRepo.Create(ctx, item); cerr != nil {
		err = fmt.Errorf("create player: %w", classify(cerr))
		return player.Player{}, err
	}

	s.logger.InfoContext(ctx, "player created", "player_id", item.ID, "team_id", item.TeamID, "jersey", item.JerseyNumber)
	return item, nil
}

// Update may move the player to another team; the jersey must stay unique there.
func (s *PlayerService) Update(ctx context.Context, playerID string, in PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	var err error
	defer func() { endSpan(span, err) }()

	if err = requireAdmin(ctx); err != nil {
		return player.Player{}, err
	}
	current, err := s.get(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if err = s.ensureTeam(ctx, in.TeamID); err != nil {
		return player.Player{}, err
	}

	item := applyPlayerInput(current, in)
	item.Goals = 0
	if verr := item.Validate(); verr != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidInput, verr)
		return player.Player{}, err
	}

	if uerr := s.playerRepo.Update(ctx, item); uerr != nil {
		err = fmt.Errorf("update player: %w", classify(uerr))
		return player.Player{}, err
	}
	return item, nil
}

func (s *PlayerService) get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func (s *PlayerService) ensureTeam(ctx context.Context, teamID string) error {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}

func (s *PlayerService) annotateGoals(ctx context.Context, items []player.Player) error {
	if s.readModel == nil || len(items) == 0 {
		return nil
	}
	rm, err := s.readModel.Current(ctx)
	if err != nil {
		return fmt.Errorf("load read model: %w", err)
	}
	for i := range items {
		items[i].Goals = rm.PlayerGoals[items[i].ID]
	}
	return nil
}

func applyPlayerInput(p player.Player, in PlayerInput) player.Player {
	p.TeamID = strings.TrimSpace(in.TeamID)
	p.Name = strings.TrimSpace(in.Name)
	p.JerseyNumber = in.JerseyNumber
	p.Position = player.Position(strings.ToLower(strings.TrimSpace(string(in.Position))))
	p.PhotoURL = strings.TrimSpace(in.PhotoURL)
	return p
}
