package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
)

const (
	DefaultChannel      = "tournament_changes"
	defaultMinReconnect = time.Second
	defaultMaxReconnect = time.Minute
	defaultPingInterval = 90 * time.Second
	notificationBuffer  = 64
)

type Config struct {
	DSN          string
	Channel      string
	MinReconnect time.Duration
	MaxReconnect time.Duration
	PingInterval time.Duration
}

func (c Config) normalize() Config {
	if strings.TrimSpace(c.Channel) == "" {
		c.Channel = DefaultChannel
	}
	if c.MinReconnect <= 0 {
		c.MinReconnect = defaultMinReconnect
	}
	if c.MaxReconnect < c.MinReconnect {
		c.MaxReconnect = defaultMaxReconnect
		if c.MaxReconnect < c.MinReconnect {
			c.MaxReconnect = c.MinReconnect
		}
	}
	if c.PingInterval <= 0 {
		c.PingInterval = defaultPingInterval
	}
	return c
}

type listener interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Source turns pg_notify payloads written by the changefeed triggers into notifications.
type Source struct {
	cfg         Config
	logger      *logging.Logger
	now         func() time.Time
	newListener func(cfg Config, logger *logging.Logger) listener
}

func NewSource(cfg Config, logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{
		cfg:         cfg.normalize(),
		logger:      logger.Named("changefeed"),
		now:         time.Now,
		newListener: newPQListener,
	}
}

func newPQListener(cfg Config, logger *logging.Logger) listener {
	return pq.NewListener(cfg.DSN, cfg.MinReconnect, cfg.MaxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			logger.Info("changefeed listener connected", "channel", cfg.Channel)
		case pq.ListenerEventDisconnected:
			logger.Warn("changefeed listener disconnected", "channel", cfg.Channel, "error", err)
		case pq.ListenerEventReconnected:
			logger.Info("changefeed listener reconnected", "channel", cfg.Channel)
		case pq.ListenerEventConnectionAttemptFailed:
			logger.Warn("changefeed listener connection attempt failed", "channel", cfg.Channel, "error", err)
		}
	})
}

func (s *Source) Subscribe(ctx context.Context, tables []string) (<-chan changefeed.Notification, error) {
	if strings.TrimSpace(s.cfg.DSN) == "" {
		return nil, crerr.New("changefeed dsn is required")
	}

	l := s.newListener(s.cfg, s.logger)
	if err := l.Listen(s.cfg.Channel); err != nil {
		_ = l.Close()
		return nil, crerr.Wrapf(err, "listen on channel %q", s.cfg.Channel)
	}

	watched := make(map[string]struct{}, len(tables))
	for _, table := range tables {
		watched[table] = struct{}{}
	}

	out := make(chan changefeed.Notification, notificationBuffer)
	go s.run(ctx, l, watched, out)
	return out, nil
}

func (s *Source) run(ctx context.Context, l listener, watched map[string]struct{}, out chan<- changefeed.Notification) {
	defer close(out)
	defer func() {
		if err := l.Close(); err != nil {
			s.logger.Warn("close changefeed listener failed", "error", err)
		}
	}()

	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Ping(); err != nil {
				s.logger.Warn("changefeed listener ping failed", "error", err)
			}
		case raw, ok := <-l.NotificationChannel():
			if !ok {
				s.logger.Warn("changefeed listener notification channel closed")
				return
			}
			var n changefeed.Notification
			if raw == nil {
				// pq delivers nil after a reconnect; anything sent meanwhile is lost.
				n = changefeed.Notification{Operation: changefeed.OperationResync, ReceivedAt: s.now()}
			} else {
				decoded, err := decodePayload(raw.Extra, s.now())
				if err != nil {
					s.logger.Warn("drop malformed changefeed payload", "channel", raw.Channel, "error", err)
					continue
				}
				if _, ok := watched[decoded.Table]; !ok {
					continue
				}
				n = decoded
			}

			select {
			case out <- n:
			case <-ctx.Done():
				return
			}
		}
	}
}

type payload struct {
	Table     string `json:"table"`
	Operation string `json:"operation"`
	RowID     string `json:"row_id"`
}

func decodePayload(raw string, receivedAt time.Time) (changefeed.Notification, error) {
	var p payload
	if err := sonic.UnmarshalString(raw, &p); err != nil {
		return changefeed.Notification{}, crerr.Wrap(err, "decode changefeed payload")
	}
	if strings.TrimSpace(p.Table) == "" {
		return changefeed.Notification{}, crerr.Newf("changefeed payload %q has no table", raw)
	}

	op := changefeed.Operation(strings.ToUpper(strings.TrimSpace(p.Operation)))
	switch op {
	case changefeed.OperationInsert, changefeed.OperationUpdate, changefeed.OperationDelete:
	default:
		return changefeed.Notification{}, crerr.Newf("changefeed payload has unsupported operation %q", p.Operation)
	}

	return changefeed.Notification{
		Table:      p.Table,
		Operation:  op,
		RowID:      p.RowID,
		ReceivedAt: receivedAt,
	}, nil
}
