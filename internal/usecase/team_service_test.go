package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	matchmock "github.com/riskibarqy/tournament-tracker/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/tournament-tracker/internal/mocks/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/platform/id"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
)

func TestTeamService_Create(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, matchmock.NewRepository(t), &id.Sequence{Prefix: "team-"}, logging.NewNop())

	teamRepo.
		On("Create", mock.Anything, team.Team{ID: "team-1", Name: "Falcons", LogoURL: "https://cdn.example.com/f.png"}).
		Return(nil).
		Once()

	got, err := service.Create(adminCtx(), TeamInput{Name: "  Falcons ", LogoURL: "https://cdn.example.com/f.png"})
	require.NoError(t, err)
	assert.Equal(t, "team-1", got.ID)
	assert.Equal(t, "Falcons", got.Name)
}

func TestTeamService_CreateRequiresAdmin(t *testing.T) {
	t.Parallel()

	service := NewTeamService(teammock.NewRepository(t), matchmock.NewRepository(t), &id.Sequence{}, nil)

	_, err := service.Create(viewerCtx(), TeamInput{Name: "Falcons"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.Create(t.Context(), TeamInput{Name: "Falcons"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTeamService_CreateValidation(t *testing.T) {
	t.Parallel()

	service := NewTeamService(teammock.NewRepository(t), matchmock.NewRepository(t), &id.Sequence{}, nil)

	_, err := service.Create(adminCtx(), TeamInput{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Create(adminCtx(), TeamInput{Name: "Falcons", LogoURL: "logo.png"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTeamService_CreateDuplicateName(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, matchmock.NewRepository(t), &id.Sequence{}, nil)

	teamRepo.On("Create", mock.Anything, mock.AnythingOfType("team.Team")).Return(team.ErrDuplicateName).Once()

	_, err := service.Create(adminCtx(), TeamInput{Name: "Falcons"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, team.ErrDuplicateName)
}

func TestTeamService_Update(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, matchmock.NewRepository(t), &id.Sequence{}, nil)

	teamRepo.On("GetByID", mock.Anything, "t1").Return(team.Team{ID: "t1", Name: "Falcons"}, true, nil).Once()
	teamRepo.On("Update", mock.Anything, team.Team{ID: "t1", Name: "Golden Falcons"}).Return(nil).Once()

	got, err := service.Update(adminCtx(), "t1", TeamInput{Name: "Golden Falcons"})
	require.NoError(t, err)
	assert.Equal(t, "Golden Falcons", got.Name)
}

func TestTeamService_DeleteReferencedTeam(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	service := NewTeamService(teamRepo, matchRepo, &id.Sequence{}, nil)

	teamRepo.On("GetByID", mock.Anything, "t1").Return(team.Team{ID: "t1", Name: "Falcons"}, true, nil).Once()
	matchRepo.On("List", mock.Anything, match.Filter{TeamID: "t1"}).Return([]match.Match{scheduled("m1", "t1", "t2")}, nil).Once()

	err := service.Delete(adminCtx(), "t1")
	assert.ErrorIs(t, err, ErrConflict)
	teamRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTeamService_Delete(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	service := NewTeamService(teamRepo, matchRepo, &id.Sequence{}, nil)

	teamRepo.On("GetByID", mock.Anything, "t1").Return(team.Team{ID: "t1"}, true, nil).Once()
	matchRepo.On("List", mock.Anything, match.Filter{TeamID: "t1"}).Return(nil, nil).Once()
	teamRepo.On("Delete", mock.Anything, "t1").Return(nil).Once()

	require.NoError(t, service.Delete(adminCtx(), "t1"))
}

func TestTeamService_GetNotFound(t *testing.T) {
	t.Parallel()

	teamRepo := teammock.NewRepository(t)
	service := NewTeamService(teamRepo, matchmock.NewRepository(t), &id.Sequence{}, nil)

	teamRepo.On("GetByID", mock.Anything, "missing").Return(team.Team{}, false, nil).Once()

	_, err := service.Get(t.Context(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
