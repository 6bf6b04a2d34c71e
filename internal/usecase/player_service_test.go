package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	playermock "github.com/riskibarqy/tournament-tracker/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/tournament-tracker/internal/mocks/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/platform/id"
)

func TestPlayerService_ListAnnotatesGoals(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	rm := staticReadModel{rm: ReadModel{PlayerGoals: map[string]int{"p2": 3}}}
	service := NewPlayerService(playerRepo, teammock.NewRepository(t), rm, &id.Sequence{}, nil)

	playerRepo.
		On("List", mock.Anything, player.Filter{TeamID: "t1"}).
		Return([]player.Player{
			{ID: "p2", TeamID: "t1", Name: "Ana", JerseyNumber: 10},
			{ID: "p1", TeamID: "t1", Name: "Bruno", JerseyNumber: 1},
		}, nil).
		Once()

	got, err := service.List(t.Context(), player.Filter{TeamID: " t1 "})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, 0, got[0].Goals)
	assert.Equal(t, 3, got[1].Goals)
}

func TestPlayerService_ListReadModelFailure(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	rm := staticReadModel{err: ErrDependencyUnavailable}
	service := NewPlayerService(playerRepo, teammock.NewRepository(t), rm, &id.Sequence{}, nil)

	playerRepo.On("List", mock.Anything, player.Filter{}).Return([]player.Player{{ID: "p1"}}, nil).Once()

	_, err := service.List(t.Context(), player.Filter{})
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestPlayerService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     PlayerInput
		setup     func(*playermock.Repository, *teammock.Repository)
		targetErr error
	}{
		{
			name:  "created",
			input: PlayerInput{TeamID: "t1", Name: "Rafi", JerseyNumber: 9, Position: "Forward"},
			setup: func(p *playermock.Repository, tr *teammock.Repository) {
				tr.On("GetByID", mock.Anything, "t1").Return(team.Team{ID: "t1"}, true, nil).Once()
				p.On("Create", mock.Anything, player.Player{ID: "p1", TeamID: "t1", Name: "Rafi", JerseyNumber: 9, Position: player.PositionForward}).Return(nil).Once()
			},
		},
		{
			name:  "unknown team",
			input: PlayerInput{TeamID: "t9", Name: "Rafi", JerseyNumber: 9, Position: player.PositionForward},
			setup: func(_ *playermock.Repository, tr *teammock.Repository) {
				tr.On("GetByID", mock.Anything, "t9").Return(team.Team{}, false, nil).Once()
			},
			targetErr: ErrNotFound,
		},
		{
			name:  "jersey out of range",
			input: PlayerInput{TeamID: "t1", Name: "Rafi", JerseyNumber: 100, Position: player.PositionForward},
			setup: func(_ *playermock.Repository, tr *teammock.Repository) {
				tr.On("GetByID", mock.Anything, "t1").Return(team.Team{ID: "t1"}, true, nil).Once()
			},
			targetErr: ErrInvalidInput,
		},
		{
			name:  "jersey already taken",
			input: PlayerInput{TeamID: "t1", Name: "Rafi", JerseyNumber: 9, Position: player.PositionForward},
			setup: func(p *playermock.Repository, tr *teammock.Repository) {
				tr.On("GetByID", mock.Anything, "t1").Return(team.Team{ID: "t1"}, true, nil).Once()
				p.On("Create", mock.Anything, mock.Anything).Return(player.ErrDuplicateJersey).Once()
			},
			targetErr: ErrConflict,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			playerRepo := playermock.NewRepository(t)
			teamRepo := teammock.NewRepository(t)
			tc.setup(playerRepo, teamRepo)
			service := NewPlayerService(playerRepo, teamRepo, nil, &id.Sequence{Prefix: "p"}, nil)

			got, err := service.Create(adminCtx(), tc.input)
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "p1", got.ID)
		})
	}
}

func TestPlayerService_UpdateMovesTeam(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	service := NewPlayerService(playerRepo, teamRepo, nil, &id.Sequence{}, nil)

	playerRepo.On("GetByID", mock.Anything, "p1").
		Return(player.Player{ID: "p1", TeamID: "t1", Name: "Rafi", JerseyNumber: 9, Position: player.PositionForward}, true, nil).
		Once()
	teamRepo.On("GetByID", mock.Anything, "t2").Return(team.Team{ID: "t2"}, true, nil).Once()
	playerRepo.On("Update", mock.Anything, player.Player{ID: "p1", TeamID: "t2", Name: "Rafi", JerseyNumber: 7, Position: player.PositionMidfielder}).
		Return(nil).
		Once()

	got, err := service.Update(adminCtx(), "p1", PlayerInput{TeamID: "t2", Name: "Rafi", JerseyNumber: 7, Position: player.PositionMidfielder})
	require.NoError(t, err)
	assert.Equal(t, "t2", got.TeamID)
}

func TestPlayerService_UpdateRequiresAdmin(t *testing.T) {
	t.Parallel()

	service := NewPlayerService(playermock.NewRepository(t), teammock.NewRepository(t), nil, &id.Sequence{}, nil)

	_, err := service.Update(viewerCtx(), "p1", PlayerInput{})
	assert.ErrorIs(t, err, ErrForbidden)
}
