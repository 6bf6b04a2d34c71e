package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-tracker/internal/config"
	"github.com/riskibarqy/tournament-tracker/internal/domain/changefeed"
	"github.com/riskibarqy/tournament-tracker/internal/domain/goalevent"
	"github.com/riskibarqy/tournament-tracker/internal/domain/match"
	"github.com/riskibarqy/tournament-tracker/internal/domain/player"
	"github.com/riskibarqy/tournament-tracker/internal/domain/standing"
	"github.com/riskibarqy/tournament-tracker/internal/domain/team"
	memfeed "github.com/riskibarqy/tournament-tracker/internal/infrastructure/changefeed/memory"
	pgfeed "github.com/riskibarqy/tournament-tracker/internal/infrastructure/changefeed/postgres"
	"github.com/riskibarqy/tournament-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-tracker/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// storage bundles the source-of-truth repositories with the change feed that watches them.
type storage struct {
	teams     team.Repository
	players   player.Repository
	matches   match.Repository
	goals     goalevent.Repository
	snapshots standing.SnapshotReader
	source    changefeed.Source
	broker    *memfeed.Broker
	close     func() error
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return openMemoryStorage(logger), nil
	case config.StoragePostgres:
		return openPostgresStorage(ctx, cfg, logger)
	default:
		return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openMemoryStorage(logger *logging.Logger) storage {
	broker := memfeed.NewBroker(0)
	db := memory.NewDatabase(memory.DefaultSeed(), broker)
	logger.Info("storage ready", "driver", config.StorageMemory)

	return storage{
		teams:     memory.NewTeamRepository(db),
		players:   memory.NewPlayerRepository(db),
		matches:   memory.NewMatchRepository(db),
		goals:     memory.NewGoalEventRepository(db),
		snapshots: db,
		source:    broker,
		broker:    broker,
		close:     func() error { return nil },
	}
}

func openPostgresStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := openDB(ctx, dsn, cfg.DBMaxOpenConns)
	if err != nil {
		return storage{}, err
	}
	logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(dsn))

	source := pgfeed.NewSource(pgfeed.Config{
		DSN:          dsn,
		Channel:      cfg.ChangefeedChannel,
		MinReconnect: cfg.ChangefeedMinReconnect,
		MaxReconnect: cfg.ChangefeedMaxReconnect,
	}, logger.Named("changefeed"))

	return storage{
		teams:     postgres.NewTeamRepository(db),
		players:   postgres.NewPlayerRepository(db),
		matches:   postgres.NewMatchRepository(db),
		goals:     postgres.NewGoalEventRepository(db),
		snapshots: postgres.NewSnapshotReader(db),
		source:    source,
		close:     db.Close,
	}, nil
}

func openDB(ctx context.Context, dsn string, maxOpenConns int) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
