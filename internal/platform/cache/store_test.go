package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadUsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) ([]string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []string{"team-a", "team-b"}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := Load(context.Background(), store, "teams:list", loader)
			if err != nil {
				errCh <- err
				return
			}
			if len(v) != 2 {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestStore_LoadFailureIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("transient")
		}
		return 42, nil
	}

	_, err := Load(context.Background(), store, "k", loader)
	require.Error(t, err)

	v, err := Load(context.Background(), store, "k", loader)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestStore_DeletePrefixAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(0)
	store.Set(ctx, "players:list", 1)
	store.Set(ctx, "players:team:a", 2)
	store.Set(ctx, "teams:list", 3)

	store.DeletePrefix(ctx, "players:")
	_, ok := store.Get(ctx, "players:team:a")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "teams:list")
	assert.True(t, ok)

	store.Clear(ctx)
	assert.Zero(t, store.Stats().Entries)
}

func TestStore_EntriesExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(10 * time.Millisecond)
	store.Set(ctx, "k", "v")

	time.Sleep(20 * time.Millisecond)
	_, ok := store.Get(ctx, "k")

	assert.False(t, ok)
	assert.Equal(t, uint64(1), store.Stats().Misses)
}

var errUnexpectedValue = errors.New("unexpected loaded value")
