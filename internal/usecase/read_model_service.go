package usecase

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
	"github.com/riskibarqy/tournament-tracker/internal/platform/resilience"
)

const (
	RecomputeApplied    = "applied"
	RecomputeDiscarded  = "discarded"
	RecomputeSuperseded = "superseded"
	RecomputeFailed     = "failed"
)

// ReadModel is the derived public view. Version identifies the invalidation it was computed for.
type ReadModel struct {
	Version          uint64
	ComputedAt       time.Time
	Standings        []standing.TeamStanding
	AllTeamStandings []standing.TeamStanding
	TopScorers       []standing.ScorerEntry
	ScorerSummary    standing.ScorerSummary
	PlayerGoals      map[string]int
}

func (m ReadModel) Clone() ReadModel {
	m.Standings = slices.Clone(m.Standings)
	m.AllTeamStandings = slices.Clone(m.AllTeamStandings)
	m.TopScorers = slices.Clone(m.TopScorers)
	m.PlayerGoals = maps.Clone(m.PlayerGoals)
	return m
}

// ReadModelMetrics receives recompute outcomes. Implemented by observability.
type ReadModelMetrics interface {
	RecomputeFinished(result string, elapsed time.Duration)
	AppliedVersion(version uint64)
	NotificationReceived(table string)
}

type noopReadModelMetrics struct{}

func (noopReadModelMetrics) RecomputeFinished(string, time.Duration) {}
func (noopReadModelMetrics) AppliedVersion(uint64)                   {}
func (noopReadModelMetrics) NotificationReceived(string)             {}

type ReadModelConfig struct {
	// Snapshots, when set, loads all source tables from one consistent view. Without it the
	// tables are listed concurrently through the repositories.
	Snapshots      standing.SnapshotReader
	Workers        int
	ReleaseTimeout time.Duration
	Breaker        *resilience.Breaker
	Metrics        ReadModelMetrics
	Logger         *logging.Logger
}

// ReadModelService keeps standings and top scorers in step with the source tables.
// Every invalidation bumps a version counter; a recompute result is applied only when
// its version is newer than the applied one, so a slow stale run never wins.
type ReadModelService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	goalRepo   goalevent.Repository
	snapshots  standing.SnapshotReader

	breaker        *resilience.Breaker
	metrics        ReadModelMetrics
	logger         *logging.Logger
	pool           *ants.Pool
	releaseTimeout time.Duration
	now            func() time.Time

	flight    resilience.SingleFlight
	requested atomic.Uint64

	mu         sync.RWMutex
	applied    ReadModel
	hasApplied bool

	listenersMu sync.Mutex
	listeners   map[int]func(ReadModel)
	nextID      int
}

func NewReadModelService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	goalRepo goalevent.Repository,
	cfg ReadModelConfig,
) (*ReadModelService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noopReadModelMetrics{}
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}
	releaseTimeout := cfg.ReleaseTimeout
	if releaseTimeout <= 0 {
		releaseTimeout = 5 * time.Second
	}

	workerPool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		logger.Error("read model worker panic", "panic", v)
	}))
	if err != nil {
		return nil, fmt.Errorf("create read model worker pool: %w", err)
	}

	return &ReadModelService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		goalRepo:       goalRepo,
		snapshots:      cfg.Snapshots,
		breaker:        cfg.Breaker,
		metrics:        metrics,
		logger:         logger,
		pool:           workerPool,
		releaseTimeout: releaseTimeout,
		now:            func() time.Time { return time.Now().UTC() },
		listeners:      make(map[int]func(ReadModel)),
	}, nil
}

// InvalidateAndRecompute marks the current read model stale and rebuilds it before returning.
// When a newer invalidation is applied first, that newer model is returned instead.
func (s *ReadModelService) InvalidateAndRecompute(ctx context.Context) (ReadModel, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReadModelService.InvalidateAndRecompute")
	var err error
	defer func() { endSpan(span, err) }()

	version := s.requested.Add(1)
	rm, err := s.recompute(ctx, version)
	return rm, err
}

// Refresh is the admin entry point for a forced rebuild.
func (s *ReadModelService) Refresh(ctx context.Context) (ReadModel, error) {
	if err := requireAdmin(ctx); err != nil {
		return ReadModel{}, err
	}
	return s.InvalidateAndRecompute(ctx)
}

// Trigger marks the read model stale and schedules a rebuild on the worker pool.
// Queued rebuilds whose version has been overtaken are skipped.
func (s *ReadModelService) Trigger(ctx context.Context) uint64 {
	version := s.requested.Add(1)
	bg := context.WithoutCancel(ctx)

	err := s.pool.Submit(func() {
		if version < s.requested.Load() {
			s.metrics.RecomputeFinished(RecomputeSuperseded, 0)
			return
		}
		if _, err := s.recompute(bg, version); err != nil {
			s.logger.WarnContext(bg, "async read model recompute failed", "version", version, "error", err)
		}
	})
	if err != nil {
		s.logger.WarnContext(ctx, "read model recompute not scheduled, next read rebuilds", "version", version, "error", err)
	}
	return version
}

// Current returns the applied read model when it is up to date, otherwise rebuilds it.
func (s *ReadModelService) Current(ctx context.Context) (ReadModel, error) {
	latest := s.requested.Load()

	s.mu.RLock()
	applied, ok := s.applied, s.hasApplied
	s.mu.RUnlock()
	if ok && applied.Version >= latest {
		return applied.Clone(), nil
	}

	return s.recompute(ctx, latest)
}

// Version is the latest requested version.
func (s *ReadModelService) Version() uint64 {
	return s.requested.Load()
}

// Subscribe registers fn to run after each applied read model. The returned func unregisters it.
func (s *ReadModelService) Subscribe(fn func(ReadModel)) func() {
	s.listenersMu.Lock()
	listenerID := s.nextID
	s.nextID++
	s.listeners[listenerID] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, listenerID)
		s.listenersMu.Unlock()
	}
}

// Close waits for scheduled rebuilds, bounded by the release timeout.
func (s *ReadModelService) Close() error {
	if err := s.pool.ReleaseTimeout(s.releaseTimeout); err != nil {
		return fmt.Errorf("release read model worker pool: %w", err)
	}
	return nil
}

func (s *ReadModelService) recompute(ctx context.Context, version uint64) (ReadModel, error) {
	rm, err, _ := resilience.Do(&s.flight, strconv.FormatUint(version, 10), func() (ReadModel, error) {
		return s.build(context.WithoutCancel(ctx), version)
	})
	if err != nil {
		return ReadModel{}, err
	}
	return rm.Clone(), nil
}

func (s *ReadModelService) build(ctx context.Context, version uint64) (ReadModel, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReadModelService.build")
	var err error
	defer func() { endSpan(span, err) }()

	start := time.Now()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		s.metrics.RecomputeFinished(RecomputeFailed, time.Since(start))
		return ReadModel{}, err
	}

	rm, err := computeReadModel(snap, version, s.now())
	if err != nil {
		s.metrics.RecomputeFinished(RecomputeFailed, time.Since(start))
		s.logger.ErrorContext(ctx, "read model recompute rejected snapshot", "version", version, "error", err)
		err = classify(err)
		return ReadModel{}, err
	}

	current, applied := s.apply(rm)
	if !applied {
		s.metrics.RecomputeFinished(RecomputeDiscarded, time.Since(start))
		s.logger.DebugContext(ctx, "stale read model discarded", "version", version, "applied_version", current.Version)
		return current, nil
	}

	s.metrics.RecomputeFinished(RecomputeApplied, time.Since(start))
	s.metrics.AppliedVersion(version)
	s.logger.DebugContext(ctx, "read model applied",
		"version", version,
		"teams", len(rm.AllTeamStandings),
		"scorers", len(rm.TopScorers),
		"elapsed", time.Since(start),
	)
	s.notify(rm)
	return rm, nil
}

func (s *ReadModelService) apply(rm ReadModel) (ReadModel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasApplied && rm.Version <= s.applied.Version {
		return s.applied, false
	}
	s.applied = rm
	s.hasApplied = true
	return rm, true
}

func (s *ReadModelService) notify(rm ReadModel) {
	s.listenersMu.Lock()
	fns := make([]func(ReadModel), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(rm.Clone())
	}
}

// loadSnapshot reads the four source tables; any failure fails the whole load.
func (s *ReadModelService) loadSnapshot(ctx context.Context) (standing.Snapshot, error) {
	var snap standing.Snapshot
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		if s.snapshots != nil {
			var err error
			snap, err = s.snapshots.ReadSnapshot(ctx)
			return err
		}
		return s.listConcurrently(ctx, &snap)
	})
	if err != nil {
		return standing.Snapshot{}, fmt.Errorf("%w: load read model snapshot: %w", ErrDependencyUnavailable, err)
	}
	return snap, nil
}

func (s *ReadModelService) listConcurrently(ctx context.Context, snap *standing.Snapshot) error {
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		snap.Teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx, player.Filter{})
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		snap.Players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.matchRepo.List(ctx, match.Filter{})
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		snap.Matches = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.goalRepo.List(ctx, goalevent.Filter{})
		if err != nil {
			return fmt.Errorf("list goal events: %w", err)
		}
		snap.Goals = items
		return nil
	})
	return p.Wait()
}

func computeReadModel(snap standing.Snapshot, version uint64, now time.Time) (ReadModel, error) {
	table, err := standing.Compute(snap.Matches, snap.Teams, standing.Options{})
	if err != nil {
		return ReadModel{}, fmt.Errorf("compute standings: %w", err)
	}
	fullTable, err := standing.Compute(snap.Matches, snap.Teams, standing.Options{IncludeAllTeams: true})
	if err != nil {
		return ReadModel{}, fmt.Errorf("compute standings for all teams: %w", err)
	}
	scorers, err := standing.ComputeTopScorers(standing.ScorerInput{
		Matches: snap.Matches,
		Players: snap.Players,
		Teams:   snap.Teams,
		Goals:   snap.Goals,
	})
	if err != nil {
		return ReadModel{}, fmt.Errorf("compute top scorers: %w", err)
	}

	return ReadModel{
		Version:          version,
		ComputedAt:       now,
		Standings:        table,
		AllTeamStandings: fullTable,
		TopScorers:       scorers,
		ScorerSummary:    standing.SummarizeScorers(scorers),
		PlayerGoals:      standing.GoalTotals(snap.Matches, snap.Goals),
	}, nil
}
