package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlight_DoCollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := Do(&g, "readmodel:7", func() (int, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return 7, nil
			})
			if err != nil || v != 7 {
				t.Errorf("unexpected result %d, %v", v, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), counter.Load())
	assert.Zero(t, g.InFlight())
}

func TestSingleFlight_DoPropagatesError(t *testing.T) {
	var g SingleFlight
	boom := errors.New("boom")

	_, err, shared := g.Do("k", func() (any, error) { return nil, boom })

	require.ErrorIs(t, err, boom)
	assert.False(t, shared)
}

func TestSingleFlight_ForgetStartsNewExecution(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32

	go func() {
		_, _, _ = g.Do("k", func() (any, error) {
			calls.Add(1)
			close(started)
			<-release
			return nil, nil
		})
	}()
	<-started

	g.Forget("k")
	_, _, shared := g.Do("k", func() (any, error) {
		calls.Add(1)
		return nil, nil
	})
	close(release)

	assert.False(t, shared)
	assert.Equal(t, int32(2), calls.Load())
}
