package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
)

const defaultBuffer = 64

// Broker fans repository writes out to in-process subscribers.
type Broker struct {
	mu     sync.RWMutex
	subs   map[int]*subscription
	nextID int
	buffer int
	now    func() time.Time
}

type subscription struct {
	ch     chan changefeed.Notification
	tables map[string]struct{}
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Broker{
		subs:   make(map[int]*subscription),
		buffer: buffer,
		now:    time.Now,
	}
}

func (b *Broker) Subscribe(ctx context.Context, tables []string) (<-chan changefeed.Notification, error) {
	sub := &subscription{
		ch:     make(chan changefeed.Notification, b.buffer),
		tables: make(map[string]struct{}, len(tables)),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(sub.ch)
		b.mu.Unlock()
	}()

	return sub.ch, nil
}

// Publish never blocks. A full subscriber buffer drops the notification: the
// queued ones are consumed after this write and already cause a fresh recompute.
func (b *Broker) Publish(table string, op changefeed.Operation, rowID string) {
	n := changefeed.Notification{
		Table:      table,
		Operation:  op,
		RowID:      rowID,
		ReceivedAt: b.now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if _, ok := sub.tables[table]; !ok {
			continue
		}
		select {
		case sub.ch <- n:
		default:
		}
	}
}

func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
