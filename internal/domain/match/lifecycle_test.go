package match

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kickoff = time.Date(2026, 5, 2, 15, 0, 0, 0, time.UTC)

func scheduledMatch(t *testing.T) Match {
	t.Helper()
	m, err := New("m1", Details{HomeTeamID: "t1", AwayTeamID: "t2", ScheduledAt: kickoff, Venue: "Main Field"})
	require.NoError(t, err)
	return m
}

func withStatus(m Match, status Status, home, away *int) Match {
	m.Status = status
	m.HomeScore, m.AwayScore = home, away
	return m
}

func TestNew(t *testing.T) {
	m, err := New("m1", Details{HomeTeamID: "t1", AwayTeamID: "t2", ScheduledAt: kickoff})
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, m.Status)
	assert.Equal(t, StageGroup, m.Stage)
	assert.Nil(t, m.HomeScore)

	_, err = New("m1", Details{HomeTeamID: "t1", AwayTeamID: "t1", ScheduledAt: kickoff})
	assert.ErrorIs(t, err, ErrSameTeams)

	_, err = New("m1", Details{HomeTeamID: "t1", AwayTeamID: "t2"})
	assert.ErrorIs(t, err, ErrInvalidDetails)

	_, err = New("m1", Details{HomeTeamID: "t1", AwayTeamID: "t2", ScheduledAt: kickoff, Stage: "quarter"})
	assert.ErrorIs(t, err, ErrInvalidDetails)
}

func TestTransitions(t *testing.T) {
	now := kickoff.Add(time.Minute)
	tests := []struct {
		name       string
		from       Status
		home, away *int
		apply      func(Match) (Match, error)
		wantStatus Status
		wantErr    error
		wantHome   *int
		wantAway   *int
	}{
		{name: "start scheduled", from: StatusScheduled, apply: func(m Match) (Match, error) { return m.Start(now) }, wantStatus: StatusLive, wantHome: Score(0), wantAway: Score(0)},
		{name: "start live", from: StatusLive, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.Start(now) }, wantErr: ErrInvalidTransition},
		{name: "start finished", from: StatusFinished, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.Start(now) }, wantErr: ErrInvalidTransition},
		{name: "goal home", from: StatusLive, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.RecordGoal(SideHome) }, wantStatus: StatusLive, wantHome: Score(2), wantAway: Score(0)},
		{name: "goal away", from: StatusLive, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.RecordGoal(SideAway) }, wantStatus: StatusLive, wantHome: Score(1), wantAway: Score(1)},
		{name: "goal on finished is immutable", from: StatusFinished, home: Score(2), away: Score(0), apply: func(m Match) (Match, error) { return m.RecordGoal(SideHome) }, wantErr: ErrInvalidTransition},
		{name: "goal bad side", from: StatusLive, home: Score(0), away: Score(0), apply: func(m Match) (Match, error) { return m.RecordGoal("left") }, wantErr: ErrInvalidDetails},
		{name: "finish live keeps score", from: StatusLive, home: Score(3), away: Score(1), apply: func(m Match) (Match, error) { return m.Finish(nil, nil) }, wantStatus: StatusFinished, wantHome: Score(3), wantAway: Score(1)},
		{name: "finish live overrides score", from: StatusLive, home: Score(3), away: Score(1), apply: func(m Match) (Match, error) { return m.Finish(Score(2), nil) }, wantStatus: StatusFinished, wantHome: Score(2), wantAway: Score(1)},
		{name: "backfill scheduled", from: StatusScheduled, apply: func(m Match) (Match, error) { return m.Finish(Score(1), Score(1)) }, wantStatus: StatusFinished, wantHome: Score(1), wantAway: Score(1)},
		{name: "backfill without home score", from: StatusScheduled, apply: func(m Match) (Match, error) { return m.Finish(nil, Score(1)) }, wantErr: ErrInvalidScore},
		{name: "finish negative", from: StatusLive, home: Score(0), away: Score(0), apply: func(m Match) (Match, error) { return m.Finish(Score(-1), nil) }, wantErr: ErrInvalidScore},
		{name: "finish postponed", from: StatusPostponed, apply: func(m Match) (Match, error) { return m.Finish(Score(1), Score(0)) }, wantErr: ErrInvalidTransition},
		{name: "reopen finished", from: StatusFinished, home: Score(2), away: Score(2), apply: func(m Match) (Match, error) { return m.Reopen() }, wantStatus: StatusLive, wantHome: Score(2), wantAway: Score(2)},
		{name: "reopen live", from: StatusLive, home: Score(0), away: Score(0), apply: func(m Match) (Match, error) { return m.Reopen() }, wantErr: ErrInvalidTransition},
		{name: "postpone scheduled", from: StatusScheduled, apply: func(m Match) (Match, error) { return m.Postpone() }, wantStatus: StatusPostponed},
		{name: "postpone live", from: StatusLive, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.Postpone() }, wantStatus: StatusPostponed, wantHome: Score(1), wantAway: Score(0)},
		{name: "postpone finished", from: StatusFinished, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.Postpone() }, wantErr: ErrInvalidTransition},
		{name: "cancel postponed", from: StatusPostponed, apply: func(m Match) (Match, error) { return m.Cancel() }, wantStatus: StatusCancelled},
		{name: "cancel finished", from: StatusFinished, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.Cancel() }, wantErr: ErrInvalidTransition},
		{name: "cancel cancelled", from: StatusCancelled, apply: func(m Match) (Match, error) { return m.Cancel() }, wantErr: ErrInvalidTransition},
		{name: "reschedule postponed", from: StatusPostponed, home: Score(1), away: Score(0), apply: func(m Match) (Match, error) { return m.Reschedule(kickoff.Add(48 * time.Hour)) }, wantStatus: StatusScheduled},
		{name: "reschedule scheduled", from: StatusScheduled, apply: func(m Match) (Match, error) { return m.Reschedule(kickoff) }, wantErr: ErrInvalidTransition},
		{name: "reschedule cancelled", from: StatusCancelled, apply: func(m Match) (Match, error) { return m.Reschedule(kickoff) }, wantErr: ErrInvalidTransition},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			original := withStatus(scheduledMatch(t), tc.from, tc.home, tc.away)

			got, err := tc.apply(original)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, Match{}, got)
				assert.Equal(t, tc.from, original.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.Equal(t, tc.wantHome, got.HomeScore)
			assert.Equal(t, tc.wantAway, got.AwayScore)
			assert.Equal(t, tc.from, original.Status)
		})
	}
}

func TestFinishWithoutHomeScoreKeepsStatus(t *testing.T) {
	m := withStatus(scheduledMatch(t), StatusLive, nil, Score(2))

	_, err := m.Finish(nil, nil)

	require.True(t, errors.Is(err, ErrInvalidScore))
	assert.Equal(t, StatusLive, m.Status)
}

func TestRecordGoalDoesNotMutateReceiverScore(t *testing.T) {
	m, err := scheduledMatch(t).Start(kickoff)
	require.NoError(t, err)

	next, err := m.RecordGoal(SideHome)
	require.NoError(t, err)

	assert.Equal(t, 0, *m.HomeScore)
	assert.Equal(t, 1, *next.HomeScore)
}

func TestUpdateDetails(t *testing.T) {
	m := scheduledMatch(t)
	later := kickoff.Add(24 * time.Hour)

	updated, err := m.UpdateDetails(Details{HomeTeamID: "t3", AwayTeamID: "t2", ScheduledAt: later, Venue: " North ", Stage: StageFinal})
	require.NoError(t, err)
	assert.Equal(t, "t3", updated.HomeTeamID)
	assert.Equal(t, "North", updated.Venue)
	assert.Equal(t, StageFinal, updated.Stage)
	assert.Equal(t, later, updated.ScheduledAt)

	_, err = m.UpdateDetails(Details{HomeTeamID: "t2", AwayTeamID: "t2", ScheduledAt: later})
	assert.ErrorIs(t, err, ErrSameTeams)

	live, err := m.Start(kickoff)
	require.NoError(t, err)
	_, err = live.UpdateDetails(Details{HomeTeamID: "t1", AwayTeamID: "t2", ScheduledAt: later})
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestCountsTowardStandings(t *testing.T) {
	for _, s := range []Status{StatusScheduled, StatusLive, StatusPostponed, StatusCancelled} {
		assert.False(t, Match{Status: s}.CountsTowardStandings(), s)
	}
	assert.True(t, Match{Status: StatusFinished}.CountsTowardStandings())
}

func TestFilterMatches(t *testing.T) {
	m := withStatus(scheduledMatch(t), StatusFinished, Score(1), Score(0))

	assert.True(t, Filter{}.Matches(m))
	assert.True(t, Filter{Status: StatusFinished, TeamID: "t2"}.Matches(m))
	assert.False(t, Filter{Status: StatusLive}.Matches(m))
	assert.False(t, Filter{TeamID: "t9"}.Matches(m))
}

func TestCheckRecordedGoals(t *testing.T) {
	events := []goalevent.GoalEvent{
		{MatchID: "m1", TeamID: "t1", Count: 2},
		{MatchID: "m1", TeamID: "t2", Count: 1},
		{MatchID: "m2", TeamID: "t1", Count: 5},
		{MatchID: "m1", TeamID: "t9", Count: 4},
	}
	m := scheduledMatch(t)

	home, away := m.RecordedGoals(events)
	assert.Equal(t, 2, home)
	assert.Equal(t, 1, away)

	assert.NoError(t, withStatus(m, StatusFinished, Score(2), Score(1)).CheckRecordedGoals(events))
	assert.NoError(t, withStatus(m, StatusFinished, Score(3), Score(1)).CheckRecordedGoals(events))
	assert.ErrorIs(t, withStatus(m, StatusFinished, Score(1), Score(1)).CheckRecordedGoals(events), ErrInvalidScore)
	assert.ErrorIs(t, withStatus(m, StatusFinished, Score(2), Score(0)).CheckRecordedGoals(events), ErrInvalidScore)
	assert.NoError(t, withStatus(m, StatusFinished, Score(0), Score(0)).CheckRecordedGoals(nil))
}

func TestRescheduleClearsPartialScore(t *testing.T) {
	live, err := scheduledMatch(t).Start(kickoff)
	require.NoError(t, err)
	live, err = live.RecordGoal(SideHome)
	require.NoError(t, err)
	postponed, err := live.Postpone()
	require.NoError(t, err)
	assert.Equal(t, 1, *postponed.HomeScore)

	rescheduled, err := postponed.Reschedule(kickoff.Add(48 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, rescheduled.Status)
	assert.Nil(t, rescheduled.HomeScore)
	assert.Nil(t, rescheduled.AwayScore)

	restarted, err := rescheduled.Start(kickoff.Add(48 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, *restarted.HomeScore)
}

func TestTouchIsMonotonic(t *testing.T) {
	m := Match{UpdatedAt: kickoff.Add(1500 * time.Nanosecond)}

	later := m.Touch(kickoff.Add(time.Second))
	assert.True(t, later.UpdatedAt.Equal(kickoff.Add(time.Second)))

	same := m.Touch(kickoff)
	assert.True(t, same.UpdatedAt.Equal(kickoff.Add(2*time.Microsecond)))
	assert.Zero(t, same.UpdatedAt.Nanosecond()%int(time.Microsecond))
}
