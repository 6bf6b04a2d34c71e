package cache

import (
	"context"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	basecache "github.com/riskibarqy/tournament-tracker/internal/platform/cache"
)

// Keys are prefixed with the table name so a change notification drops exactly that table.
func tableKey(table string, parts ...string) string {
	key := table + ":"
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

// Invalidator drops cached reads per table. It satisfies usecase.CacheInvalidator.
type Invalidator struct {
	cache *basecache.Store
}

func NewInvalidator(cache *basecache.Store) *Invalidator {
	return &Invalidator{cache: cache}
}

func (i *Invalidator) InvalidateTable(ctx context.Context, table string) {
	i.cache.DeletePrefix(ctx, table+":")
}

func (i *Invalidator) InvalidateAll(ctx context.Context) {
	i.cache.Clear(ctx)
}

type cachedByID[T any] struct {
	value  T
	exists bool
}

func loadByID[T any](ctx context.Context, s *basecache.Store, key string, get func(context.Context) (T, bool, error)) (T, bool, error) {
	cached, err := basecache.Load(ctx, s, key, func(ctx context.Context) (cachedByID[T], error) {
		v, ok, err := get(ctx)
		if err != nil {
			return cachedByID[T]{}, err
		}
		return cachedByID[T]{value: v, exists: ok}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return cached.value, cached.exists, nil
}

func loadList[T any](ctx context.Context, s *basecache.Store, key string, list func(context.Context) ([]T, error)) ([]T, error) {
	items, err := basecache.Load(ctx, s, key, func(ctx context.Context) ([]T, error) {
		items, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]T(nil), items...), nil
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return loadList(ctx, r.cache, tableKey(changefeed.TableTeams, "list"), r.next.List)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return loadByID(ctx, r.cache, tableKey(changefeed.TableTeams, "id", teamID), func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	defer r.invalidate(ctx)
	return r.next.Create(ctx, t)
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	defer r.invalidate(ctx)
	return r.next.Update(ctx, t)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, teamID)
}

// Deleting a team cascades to its players.
func (r *TeamRepository) invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, tableKey(changefeed.TableTeams))
	r.cache.DeletePrefix(ctx, tableKey(changefeed.TablePlayers))
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	return loadList(ctx, r.cache, tableKey(changefeed.TablePlayers, "list", filter.TeamID), func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	return loadByID(ctx, r.cache, tableKey(changefeed.TablePlayers, "id", playerID), func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetByID(ctx, playerID)
	})
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	defer r.cache.DeletePrefix(ctx, tableKey(changefeed.TablePlayers))
	return r.next.Create(ctx, p)
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	defer r.cache.DeletePrefix(ctx, tableKey(changefeed.TablePlayers))
	return r.next.Update(ctx, p)
}

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	key := tableKey(changefeed.TableMatches, "list", string(filter.Status), filter.TeamID)
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]match.Match, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return loadByID(ctx, r.cache, tableKey(changefeed.TableMatches, "id", matchID), func(ctx context.Context) (match.Match, bool, error) {
		return r.next.GetByID(ctx, matchID)
	})
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	defer r.cache.DeletePrefix(ctx, tableKey(changefeed.TableMatches))
	return r.next.Create(ctx, m)
}

// Writes drop cached matches even when they fail, so a stale-write conflict is followed
// by a fresh read.
func (r *MatchRepository) Update(ctx context.Context, prev, next match.Match) error {
	defer r.cache.DeletePrefix(ctx, tableKey(changefeed.TableMatches))
	return r.next.Update(ctx, prev, next)
}

func (r *MatchRepository) RecordGoal(ctx context.Context, prev, next match.Match, event goalevent.GoalEvent) error {
	defer r.dropMatchesAndGoals(ctx)
	return r.next.RecordGoal(ctx, prev, next, event)
}

func (r *MatchRepository) ResetAttempt(ctx context.Context, prev, next match.Match) error {
	defer r.dropMatchesAndGoals(ctx)
	return r.next.ResetAttempt(ctx, prev, next)
}

func (r *MatchRepository) dropMatchesAndGoals(ctx context.Context) {
	r.cache.DeletePrefix(ctx, tableKey(changefeed.TableMatches))
	r.cache.DeletePrefix(ctx, tableKey(changefeed.TableGoalEvents))
}

type GoalEventRepository struct {
	next  goalevent.Repository
	cache *basecache.Store
}

func NewGoalEventRepository(next goalevent.Repository, cache *basecache.Store) *GoalEventRepository {
	return &GoalEventRepository{next: next, cache: cache}
}

func (r *GoalEventRepository) List(ctx context.Context, filter goalevent.Filter) ([]goalevent.GoalEvent, error) {
	key := tableKey(changefeed.TableGoalEvents, "list", filter.MatchID, filter.PlayerID)
	return loadList(ctx, r.cache, key, func(ctx context.Context) ([]goalevent.GoalEvent, error) {
		return r.next.List(ctx, filter)
	})
}
