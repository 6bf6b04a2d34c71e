package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/tournament-tracker/internal/config"
	"github.com/riskibarqy/tournament-tracker/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-tracker/internal/interfaces/httpapi"
	"github.com/riskibarqy/tournament-tracker/internal/interfaces/realtime"
	"github.com/riskibarqy/tournament-tracker/internal/observability"
	basecache "github.com/riskibarqy/tournament-tracker/internal/platform/cache"
	idgen "github.com/riskibarqy/tournament-tracker/internal/platform/id"
	"github.com/riskibarqy/tournament-tracker/internal/platform/logging"
	"github.com/riskibarqy/tournament-tracker/internal/platform/resilience"
	"github.com/riskibarqy/tournament-tracker/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server, the change feed consumer and the read model they feed.
type App struct {
	logger    *logging.Logger
	storage   storage
	readModel *usecase.ReadModelService
	consumer  *usecase.ChangeFeedConsumer
	hub       *realtime.Hub
	handler   http.Handler
	server    *http.Server
	stopFeed  func()
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var (
		metricsHandler http.Handler
		rmMetrics      usecase.ReadModelMetrics
	)
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics()
		rmMetrics = metrics
		metricsHandler = metrics.Handler()
	}

	breaker := resilience.NewBreaker(cfg.ReadModelBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("read model circuit state changed", "from", from, "to", to)
	})

	// The read model loads from the source of truth; caching its inputs could resurrect stale rows.
	readModel, err := usecase.NewReadModelService(store.teams, store.players, store.matches, store.goals, usecase.ReadModelConfig{
		Snapshots:      store.snapshots,
		Workers:        cfg.ReadModelWorkers,
		ReleaseTimeout: cfg.ReadModelReleaseTimeout,
		Breaker:        breaker,
		Metrics:        rmMetrics,
		Logger:         logger.Named("readmodel"),
	})
	if err != nil {
		_ = store.close()
		return nil, err
	}

	teams, players, matches := store.teams, store.players, store.matches
	var invalidators []usecase.CacheInvalidator
	if cfg.CacheEnabled {
		cacheStore := basecache.NewStore(cfg.CacheTTL)
		teams = cache.NewTeamRepository(store.teams, cacheStore)
		players = cache.NewPlayerRepository(store.players, cacheStore)
		matches = cache.NewMatchRepository(store.matches, cacheStore)
		invalidators = append(invalidators, cache.NewInvalidator(cacheStore))
	}

	ids := idgen.NewUUIDGenerator()
	teamSvc := usecase.NewTeamService(teams, matches, ids, logger)
	playerSvc := usecase.NewPlayerService(players, teams, readModel, ids, logger)
	matchSvc := usecase.NewMatchService(matches, teams, players, store.goals, ids, logger)
	standingSvc := usecase.NewStandingService(readModel)

	consumer := usecase.NewChangeFeedConsumer(store.source, readModel, rmMetrics, logger.Named("changefeed"), invalidators...)

	hub := realtime.NewHub(realtime.HubConfig{AllowedOrigins: cfg.CORSAllowedOrigins}, logger)
	stopFeed := readModel.Subscribe(hub.OnReadModel)

	handler := httpapi.NewHandler(teamSvc, playerSvc, matchSvc, standingSvc, readModel, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		AdminToken:         cfg.AdminToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            metricsHandler,
		Live:               hub,
	}, logger)
	if cfg.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN is empty, admin routes will answer 503")
	}

	return &App{
		logger:    logger,
		storage:   store,
		readModel: readModel,
		consumer:  consumer,
		hub:       hub,
		handler:   router,
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		stopFeed: stopFeed,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP and consumes the change feed until ctx is done or either fails.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		if err := a.consumer.Run(ctx); err != nil {
			return fmt.Errorf("change feed consumer: %w", err)
		}
		return nil
	})

	p.Go(func(context.Context) error {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	p.Go(func(ctx context.Context) error {
		<-ctx.Done()
		a.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		a.logger.Info("http server stopped")
		return nil
	})

	// Build the first read model in the background so the first reader does not pay for it.
	a.readModel.Trigger(ctx)

	return p.Wait()
}

// Close releases the worker pool and the storage. Call it after Run returns.
func (a *App) Close() error {
	a.stopFeed()
	return errors.Join(a.readModel.Close(), a.storage.close())
}
