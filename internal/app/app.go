package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/algoquest/internal/config"
	"github.com/gokatarajesh/algoquest/internal/game"
	"github.com/gokatarajesh/algoquest/internal/logging"
	"github.com/gokatarajesh/algoquest/internal/question"
	"github.com/gokatarajesh/algoquest/internal/quiz"
	"github.com/gokatarajesh/algoquest/internal/server"
	"github.com/gokatarajesh/algoquest/internal/session"
	"github.com/gokatarajesh/algoquest/internal/shuffle"
	"github.com/gokatarajesh/algoquest/internal/stats"
	ws "github.com/gokatarajesh/algoquest/pkg/http/ws"
)

// Application aggregates shared infrastructure (stores, banks, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool    *pgxpool.Pool
	redis   *redis.Client
	closers []io.Closer
	http    *http.Server
}

// New loads the question banks, connects the stores and builds the HTTP server.
// A bank that cannot be loaded aborts startup.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	banks, err := question.LoadBanks(ctx, cfg.Banks.Dir)
	if err != nil {
		return nil, fmt.Errorf("load question banks: %w", err)
	}
	counts := banks.Counts()
	logger.Info().
		Int("signal", counts.Signal).
		Int("pattern", counts.Pattern).
		Int("scenario", counts.Scenario).
		Int("complexity", counts.Complexity).
		Msg("question banks loaded")

	a := &Application{cfg: cfg, logger: logger}

	a.redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	a.closers = append(a.closers, a.redis)

	statsStore, err := a.openStatsStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	statsSvc := stats.NewService(statsStore, logger)
	deps := game.Deps{
		Banks:       banks,
		Sessions:    session.NewManager(session.NewRedisStore(a.redis, cfg.Session.KeyPrefix), cfg.Session.TTL, logger),
		Stats:       statsSvc,
		Scoring:     quiz.DefaultScoringConfig(),
		FinishDelay: cfg.Session.FinishDelay,
		Source:      shuffle.Global,
		Logger:      logger,
	}

	hub := ws.NewHub(logger.With().Str("component", "ws_hub").Logger())
	quizWS := game.NewHandler(deps, hub, server.NewWSUpgrader(cfg.CORS.AllowedOrigins), logger)

	a.http = server.NewHTTPServer(cfg, logger, a.pool, a.redis, server.Routes{
		QuizWS: quizWS.HandleWebSocket,
		Stats:  stats.NewHTTPHandler(statsSvc, logger).HandleGet,
		Banks:  question.CountsHandler(banks),
	})
	return a, nil
}

func (a *Application) openStatsStore(ctx context.Context) (stats.Store, error) {
	switch a.cfg.Stats.Backend {
	case config.StatsBackendSQLite:
		store, err := stats.OpenSQLite(ctx, a.cfg.Stats.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite stats: %w", err)
		}
		a.closers = append(a.closers, store)
		a.logger.Info().Str("path", a.cfg.Stats.SQLitePath).Msg("stats stored in sqlite")
		return store, nil
	default:
		pool, err := pgxpool.New(ctx, a.cfg.Postgres.DSN()+" pool_max_conns=10")
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		a.logger.Info().Str("host", a.cfg.Postgres.Host).Msg("stats stored in postgres")
		return stats.NewPostgresStore(pool), nil
	}
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error().Err(err).Msg("close error")
		}
	}
}
