package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	changefeedmock "github.com/riskibarqy/tournament-tracker/internal/mocks/domain/changefeed"
)

type countingTrigger struct {
	mu    sync.Mutex
	calls int
}

func (c *countingTrigger) Trigger(context.Context) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return uint64(c.calls)
}

func (c *countingTrigger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type recordingInvalidator struct {
	mu     sync.Mutex
	tables []string
	all    int
}

func (r *recordingInvalidator) InvalidateTable(_ context.Context, table string) {
	r.mu.Lock()
	r.tables = append(r.tables, table)
	r.mu.Unlock()
}

func (r *recordingInvalidator) InvalidateAll(context.Context) {
	r.mu.Lock()
	r.all++
	r.mu.Unlock()
}

func TestChangeFeedConsumer_Run(t *testing.T) {
	t.Parallel()

	source := changefeedmock.NewSource(t)
	trigger := &countingTrigger{}
	invalidator := &recordingInvalidator{}
	metrics := newRecordingMetrics()
	consumer := NewChangeFeedConsumer(source, trigger, metrics, nil, invalidator)

	ch := make(chan changefeed.Notification, 4)
	source.On("Subscribe", mock.Anything, changefeed.WatchedTables).Return((<-chan changefeed.Notification)(ch), nil).Once()

	ch <- changefeed.Notification{Table: changefeed.TableMatches, Operation: changefeed.OperationUpdate, RowID: "m1"}
	ch <- changefeed.Notification{Table: "audit_log", Operation: changefeed.OperationInsert}
	ch <- changefeed.Notification{Table: changefeed.TablePlayers, Operation: changefeed.OperationInsert, RowID: "p1"}
	ch <- changefeed.Notification{Operation: changefeed.OperationResync}
	close(ch)

	err := consumer.Run(t.Context())
	assert.ErrorIs(t, err, ErrDependencyUnavailable)

	assert.Equal(t, 3, trigger.count())
	assert.Equal(t, []string{changefeed.TableMatches, changefeed.TablePlayers}, invalidator.tables)
	assert.Equal(t, 1, invalidator.all)
	assert.Equal(t, 1, metrics.notifications[changefeed.TableMatches])
}

func TestChangeFeedConsumer_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	source := changefeedmock.NewSource(t)
	consumer := NewChangeFeedConsumer(source, &countingTrigger{}, nil, nil)
	ch := make(chan changefeed.Notification)
	source.On("Subscribe", mock.Anything, mock.Anything).Return((<-chan changefeed.Notification)(ch), nil).Once()

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}
}

func TestChangeFeedConsumer_SubscribeFailure(t *testing.T) {
	t.Parallel()

	source := changefeedmock.NewSource(t)
	consumer := NewChangeFeedConsumer(source, &countingTrigger{}, nil, nil)
	source.On("Subscribe", mock.Anything, mock.Anything).Return(nil, errors.New("listen failed")).Once()

	err := consumer.Run(t.Context())
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}
