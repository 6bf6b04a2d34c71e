package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
)

func TestStandingService(t *testing.T) {
	t.Parallel()

	rm := ReadModel{
		Version:          7,
		Standings:        []standing.TeamStanding{{TeamID: "t1", Rank: 1}},
		AllTeamStandings: []standing.TeamStanding{{TeamID: "t1", Rank: 1}, {TeamID: "t2", Rank: 2}},
		TopScorers:       []standing.ScorerEntry{{PlayerID: "p1", Goals: 2, Rank: 1}},
		ScorerSummary:    standing.ScorerSummary{TotalGoals: 2, LeaderName: "Ana"},
	}
	service := NewStandingService(staticReadModel{rm: rm})

	table, err := service.Standings(t.Context(), false)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), table.Version)
	assert.Len(t, table.Rows, 1)

	full, err := service.Standings(t.Context(), true)
	require.NoError(t, err)
	assert.Len(t, full.Rows, 2)

	scorers, err := service.TopScorers(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Ana", scorers.Summary.LeaderName)
	assert.Len(t, scorers.Entries, 1)
}

func TestStandingService_ReadModelError(t *testing.T) {
	t.Parallel()

	service := NewStandingService(staticReadModel{err: ErrDependencyUnavailable})

	_, err := service.Standings(t.Context(), false)
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
	_, err = service.TopScorers(t.Context())
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}
