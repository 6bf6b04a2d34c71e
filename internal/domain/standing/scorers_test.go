package standing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
)

func scorerFixture() ScorerInput {
	return ScorerInput{
		Teams: teams("Falcons", "Hawks"),
		Players: []player.Player{
			{ID: "p1", TeamID: "t1", Name: "Bruno"},
			{ID: "p2", TeamID: "t1", Name: "Ana"},
			{ID: "p3", TeamID: "t2", Name: "Caio"},
			{ID: "p4", TeamID: "t2", Name: "Dani"},
		},
		Matches: []match.Match{
			finished("m1", "t1", "t2", 3, 1),
			finished("m2", "t2", "t1", 1, 1),
		},
		Goals: []goalevent.GoalEvent{
			{ID: "g1", MatchID: "m1", PlayerID: "p1", TeamID: "t1", Count: 2},
			{ID: "g2", MatchID: "m1", PlayerID: "p2", TeamID: "t1", Count: 1},
			{ID: "g3", MatchID: "m1", PlayerID: "p3", TeamID: "t2", Count: 1},
			{ID: "g4", MatchID: "m2", PlayerID: "p3", TeamID: "t2", Count: 1},
			{ID: "g5", MatchID: "m2", PlayerID: "p2", TeamID: "t1", Count: 1},
		},
	}
}

func TestComputeTopScorers(t *testing.T) {
	got, err := ComputeTopScorers(scorerFixture())
	require.NoError(t, err)

	want := []ScorerEntry{
		{PlayerID: "p2", PlayerName: "Ana", TeamID: "t1", TeamName: "Falcons", Goals: 2, MatchesPlayed: 2, Rank: 1},
		{PlayerID: "p1", PlayerName: "Bruno", TeamID: "t1", TeamName: "Falcons", Goals: 2, MatchesPlayed: 2, Rank: 2},
		{PlayerID: "p3", PlayerName: "Caio", TeamID: "t2", TeamName: "Hawks", Goals: 2, MatchesPlayed: 2, Rank: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("scorers mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeTopScorers_Empty(t *testing.T) {
	got, err := ComputeTopScorers(ScorerInput{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComputeTopScorers_ReopenedMatchDropsOut(t *testing.T) {
	in := scorerFixture()
	in.Matches[0].Status = match.StatusLive

	got, err := ComputeTopScorers(in)
	require.NoError(t, err)

	goals := map[string]int{}
	for _, e := range got {
		goals[e.PlayerID] = e.Goals
		assert.Equal(t, 1, e.MatchesPlayed)
	}
	assert.Equal(t, map[string]int{"p2": 1, "p3": 1}, goals)

	in.Goals = append(in.Goals, goalevent.GoalEvent{ID: "g6", MatchID: "m1", PlayerID: "p4", TeamID: "t2", Count: 1})
	in.Matches[0].Status = match.StatusFinished
	got, err = ComputeTopScorers(in)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestComputeTopScorers_IDTieBreak(t *testing.T) {
	in := ScorerInput{
		Teams:   teams("Falcons", "Hawks"),
		Players: []player.Player{{ID: "p9", TeamID: "t1", Name: "Lee"}, {ID: "p2", TeamID: "t2", Name: "Lee"}},
		Matches: []match.Match{finished("m1", "t1", "t2", 1, 1)},
		Goals: []goalevent.GoalEvent{
			{ID: "g1", MatchID: "m1", PlayerID: "p9", TeamID: "t1", Count: 1},
			{ID: "g2", MatchID: "m1", PlayerID: "p2", TeamID: "t2", Count: 1},
		},
	}

	got, err := ComputeTopScorers(in)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].PlayerID)
	assert.Equal(t, 2, got[1].Rank)
}

func TestComputeTopScorers_DanglingReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScorerInput)
	}{
		{name: "unknown match", mutate: func(in *ScorerInput) { in.Goals[0].MatchID = "m404" }},
		{name: "unknown player", mutate: func(in *ScorerInput) { in.Goals[0].PlayerID = "p404" }},
		{name: "unknown team", mutate: func(in *ScorerInput) { in.Players[0].TeamID = "t404" }},
		{name: "unknown goal team", mutate: func(in *ScorerInput) { in.Goals[0].TeamID = "t404" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := scorerFixture()
			tc.mutate(&in)

			got, err := ComputeTopScorers(in)
			assert.ErrorIs(t, err, ErrDanglingReference)
			assert.Nil(t, got)
		})
	}
}

func TestComputeTopScorers_TransferredPlayerKeepsGoalsWithTeam(t *testing.T) {
	in := scorerFixture()
	in.Teams = teams("Falcons", "Hawks", "Owls")
	in.Matches = append(in.Matches, finished("m3", "t3", "t2", 1, 0))
	// Bruno moved from the Falcons to the Owls after m1.
	in.Players[0].TeamID = "t3"
	in.Goals = append(in.Goals, goalevent.GoalEvent{ID: "g6", MatchID: "m3", PlayerID: "p1", TeamID: "t3", Count: 1})

	got, err := ComputeTopScorers(in)
	require.NoError(t, err)

	var bruno []ScorerEntry
	for _, e := range got {
		if e.PlayerID == "p1" {
			bruno = append(bruno, e)
		}
	}
	want := []ScorerEntry{
		{PlayerID: "p1", PlayerName: "Bruno", TeamID: "t1", TeamName: "Falcons", Goals: 2, MatchesPlayed: 2, Rank: 2},
		{PlayerID: "p1", PlayerName: "Bruno", TeamID: "t3", TeamName: "Owls", Goals: 1, MatchesPlayed: 1, Rank: 4},
	}
	if diff := cmp.Diff(want, bruno); diff != "" {
		t.Fatalf("transferred player entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, GoalTotals(in.Matches, in.Goals)["p1"])
}

func TestGoalTotals(t *testing.T) {
	in := scorerFixture()
	in.Matches[1].Status = match.StatusLive

	got := GoalTotals(in.Matches, in.Goals)

	assert.Equal(t, map[string]int{"p1": 2, "p2": 1, "p3": 1}, got)
}

func TestSummarizeScorers(t *testing.T) {
	entries, err := ComputeTopScorers(scorerFixture())
	require.NoError(t, err)

	got := SummarizeScorers(entries)

	assert.Equal(t, ScorerSummary{TotalGoals: 6, LeaderName: "Ana", GoalsPerMatch: 1}, got)
	assert.Equal(t, ScorerSummary{}, SummarizeScorers(nil))
}
