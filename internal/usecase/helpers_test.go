package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/user"
)

var kickoff = time.Date(2026, 6, 6, 16, 0, 0, 0, time.UTC)

func adminCtx() context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{Subject: "ops", Role: user.RoleAdmin})
}

func viewerCtx() context.Context {
	return user.WithPrincipal(context.Background(), user.Principal{Subject: "fan", Role: user.RoleViewer})
}

func scheduled(id, home, away string) match.Match {
	return match.Match{
		ID: id, HomeTeamID: home, AwayTeamID: away,
		ScheduledAt: kickoff, Stage: match.StageGroup, Status: match.StatusScheduled,
	}
}

func finishedMatch(id, home, away string, hs, as int) match.Match {
	m := scheduled(id, home, away)
	m.Status = match.StatusFinished
	m.HomeScore, m.AwayScore = match.Score(hs), match.Score(as)
	return m
}

type recordingMetrics struct {
	mu            sync.Mutex
	results       map[string]int
	notifications map[string]int
	lastVersion   uint64
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{results: map[string]int{}, notifications: map[string]int{}}
}

func (m *recordingMetrics) RecomputeFinished(result string, _ time.Duration) {
	m.mu.Lock()
	m.results[result]++
	m.mu.Unlock()
}

func (m *recordingMetrics) AppliedVersion(v uint64) {
	m.mu.Lock()
	m.lastVersion = v
	m.mu.Unlock()
}

func (m *recordingMetrics) NotificationReceived(table string) {
	m.mu.Lock()
	m.notifications[table]++
	m.mu.Unlock()
}

func (m *recordingMetrics) result(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.results[name]
}

type staticReadModel struct {
	rm  ReadModel
	err error
}

func (s staticReadModel) Current(context.Context) (ReadModel, error) {
	return s.rm, s.err
}
