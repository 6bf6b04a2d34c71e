package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListener struct {
	notifications chan *pq.Notification
	listenErr     error
	listened      string
	closed        chan struct{}
}

func newFakeListener() *fakeListener {
	return &fakeListener{
		notifications: make(chan *pq.Notification, 8),
		closed:        make(chan struct{}),
	}
}

func (f *fakeListener) Listen(channel string) error {
	f.listened = channel
	return f.listenErr
}

func (f *fakeListener) NotificationChannel() <-chan *pq.Notification { return f.notifications }

func (f *fakeListener) Ping() error { return nil }

func (f *fakeListener) Close() error {
	close(f.closed)
	return nil
}

func newTestSource(l *fakeListener) *Source {
	s := NewSource(Config{DSN: "postgres://localhost/tournament"}, logging.NewNop())
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	s.newListener = func(Config, *logging.Logger) listener { return l }
	return s
}

func receive(t *testing.T, ch <-chan changefeed.Notification) changefeed.Notification {
	t.Helper()
	select {
	case n, ok := <-ch:
		require.True(t, ok, "channel closed")
		return n
	case <-time.After(time.Second):
		t.Fatal("expected notification")
		return changefeed.Notification{}
	}
}

func TestDecodePayload(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		want    changefeed.Notification
		wantErr bool
	}{
		{
			name: "update",
			raw:  `{"table":"matches","operation":"UPDATE","row_id":"m1"}`,
			want: changefeed.Notification{Table: "matches", Operation: changefeed.OperationUpdate, RowID: "m1", ReceivedAt: at},
		},
		{
			name: "lowercase operation",
			raw:  `{"table":"goal_events","operation":"insert","row_id":"g1"}`,
			want: changefeed.Notification{Table: "goal_events", Operation: changefeed.OperationInsert, RowID: "g1", ReceivedAt: at},
		},
		{name: "not json", raw: `matches:UPDATE`, wantErr: true},
		{name: "missing table", raw: `{"operation":"DELETE"}`, wantErr: true},
		{name: "truncate", raw: `{"table":"teams","operation":"TRUNCATE"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodePayload(tc.raw, at)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSource_ForwardsWatchedTablesAndResync(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := newFakeListener()
	s := newTestSource(l)

	ch, err := s.Subscribe(ctx, []string{changefeed.TableMatches})
	require.NoError(t, err)
	assert.Equal(t, DefaultChannel, l.listened)

	l.notifications <- &pq.Notification{Channel: DefaultChannel, Extra: `{"table":"teams","operation":"INSERT","row_id":"t1"}`}
	l.notifications <- &pq.Notification{Channel: DefaultChannel, Extra: `garbage`}
	l.notifications <- &pq.Notification{Channel: DefaultChannel, Extra: `{"table":"matches","operation":"UPDATE","row_id":"m1"}`}
	l.notifications <- nil

	first := receive(t, ch)
	assert.Equal(t, changefeed.TableMatches, first.Table)
	assert.Equal(t, "m1", first.RowID)

	second := receive(t, ch)
	assert.Equal(t, changefeed.OperationResync, second.Operation)
	assert.Empty(t, second.Table)

	cancel()
	select {
	case <-l.closed:
	case <-time.After(time.Second):
		t.Fatal("listener not closed")
	}
}

func TestSource_SubscribeErrors(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		s := NewSource(Config{}, logging.NewNop())
		_, err := s.Subscribe(context.Background(), changefeed.WatchedTables)
		require.Error(t, err)
	})

	t.Run("listen failure closes listener", func(t *testing.T) {
		l := newFakeListener()
		l.listenErr = errors.New("connection refused")
		s := newTestSource(l)

		_, err := s.Subscribe(context.Background(), changefeed.WatchedTables)
		require.Error(t, err)
		assert.ErrorContains(t, err, "connection refused")

		select {
		case <-l.closed:
		default:
			t.Fatal("listener left open")
		}
	})
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{MinReconnect: 5 * time.Second, MaxReconnect: time.Second}.normalize()
	assert.Equal(t, DefaultChannel, cfg.Channel)
	assert.Equal(t, time.Minute, cfg.MaxReconnect)
	assert.Equal(t, defaultPingInterval, cfg.PingInterval)
}
