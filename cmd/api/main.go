package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/repository/memstore"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	readiness := map[string]handlers.Pinger{}
	var store repository.Store
	if pg.Enabled() {
		store = repository.NewPostgresStore(pg.Pool)
		readiness["postgres"] = pg
	} else {
		store = memstore.New()
	}
	if redis.Client != nil {
		readiness["redis"] = redis
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartEventRecorder(dispatcher, metrics, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	activities := service.NewActivityService(service.ActivityDependencies{Store: store, Logger: logger})
	services := httptransport.Services{
		Auth: service.NewAuthService(service.AuthDependencies{
			Store:              store,
			Tokens:             tokens,
			Hasher:             auth.NewHasher(cfg.Auth.BcryptCost),
			Limiter:            auth.NewLoginLimiter(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger),
			AllowedEmailDomain: cfg.Auth.AllowedEmailDomain,
			Logger:             logger,
		}),
		Users: service.NewUserService(service.UserDependencies{Store: store, Dispatcher: dispatcher, Logger: logger}),
		Tickets: service.NewTicketService(service.TicketDependencies{
			Store:      store,
			Activities: activities,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		Feedback:   service.NewFeedbackService(service.FeedbackDependencies{Store: store, Dispatcher: dispatcher, Logger: logger}),
		Activities: activities,
	}

	app := httptransport.NewApp(httptransport.AppOptions{
		Name:      cfg.App.Name,
		Version:   cfg.App.Version,
		Timeout:   cfg.App.RequestTimeout(),
		Logger:    logger,
		Metrics:   metrics,
		Services:  services,
		Verifier:  tokens,
		UserStore: store.Users(),
		Readiness: readiness,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
