package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
)

// ReadModelTrigger schedules an asynchronous rebuild.
type ReadModelTrigger interface {
	Trigger(ctx context.Context) uint64
}

// CacheInvalidator drops cached reads for a changed table. Resync notifications clear everything.
type CacheInvalidator interface {
	InvalidateTable(ctx context.Context, table string)
	InvalidateAll(ctx context.Context)
}

// ChangeFeedConsumer turns change notifications into read model invalidations.
type ChangeFeedConsumer struct {
	source    changefeed.Source
	trigger   ReadModelTrigger
	caches    []CacheInvalidator
	metrics   ReadModelMetrics
	logger    *logging.Logger
	tables    []string
	watchable map[string]struct{}
}

func NewChangeFeedConsumer(
	source changefeed.Source,
	trigger ReadModelTrigger,
	metrics ReadModelMetrics,
	logger *logging.Logger,
	caches ...CacheInvalidator,
) *ChangeFeedConsumer {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = noopReadModelMetrics{}
	}
	watchable := make(map[string]struct{}, len(changefeed.WatchedTables))
	for _, t := range changefeed.WatchedTables {
		watchable[t] = struct{}{}
	}
	return &ChangeFeedConsumer{
		source:    source,
		trigger:   trigger,
		caches:    caches,
		metrics:   metrics,
		logger:    logger,
		tables:    changefeed.WatchedTables,
		watchable: watchable,
	}
}

// Run blocks until ctx is done or the source closes its channel.
func (c *ChangeFeedConsumer) Run(ctx context.Context) error {
	ch, err := c.source.Subscribe(ctx, c.tables)
	if err != nil {
		return fmt.Errorf("%w: subscribe change feed: %w", ErrDependencyUnavailable, err)
	}
	c.logger.InfoContext(ctx, "change feed consumer started", "tables", c.tables)

	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-ch:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: change feed closed", ErrDependencyUnavailable)
			}
			c.Handle(ctx, n)
		}
	}
}

// Handle applies one notification. Unwatched tables are ignored.
func (c *ChangeFeedConsumer) Handle(ctx context.Context, n changefeed.Notification) {
	if n.Operation == changefeed.OperationResync {
		for _, cache := range c.caches {
			cache.InvalidateAll(ctx)
		}
		c.metrics.NotificationReceived(string(changefeed.OperationResync))
		version := c.trigger.Trigger(ctx)
		c.logger.InfoContext(ctx, "change feed resync, read model invalidated", "version", version)
		return
	}

	if _, ok := c.watchable[n.Table]; !ok {
		c.logger.DebugContext(ctx, "ignore change notification", "table", n.Table)
		return
	}

	c.metrics.NotificationReceived(n.Table)
	for _, cache := range c.caches {
		cache.InvalidateTable(ctx, n.Table)
	}
	version := c.trigger.Trigger(ctx)
	c.logger.DebugContext(ctx, "read model invalidated",
		"table", n.Table,
		"operation", n.Operation,
		"row_id", n.RowID,
		"version", version,
	)
}
