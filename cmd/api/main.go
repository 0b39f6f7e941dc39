package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/condo-service/internal/api/http"
	"github.com/spec-kit/condo-service/internal/api/http/handlers"
	"github.com/spec-kit/condo-service/internal/auth"
	"github.com/spec-kit/condo-service/internal/cache"
	"github.com/spec-kit/condo-service/internal/config"
	"github.com/spec-kit/condo-service/internal/events"
	"github.com/spec-kit/condo-service/internal/observability"
	"github.com/spec-kit/condo-service/internal/persistence"
	"github.com/spec-kit/condo-service/internal/repository"
	"github.com/spec-kit/condo-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo  repository.UserRepository
		condoRepo repository.CondominioRepository
		storage   *handlers.Check
	)
	if pg.Enabled() {
		userRepo = repository.NewUserRepository(pg.Pool)
		condoRepo = repository.NewCondominioRepository(pg.Pool)
		storage = &handlers.Check{Name: "postgres", Ping: pg.Ping}
	} else {
		userRepo = repository.NewMemoryUserRepository()
		condoRepo = repository.NewMemoryCondominioRepository()
	}

	var readiness []handlers.Check
	if redis.Client != nil {
		readiness = append(readiness, handlers.Check{Name: "redis", Ping: redis.Ping})
	}

	dispatcher := events.NewInMemoryDispatcher()
	service.NewAuditService(dispatcher, logger).RegisterHandlers()

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Hasher:     authService.Hasher(),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	condoService := service.NewCondominioService(service.CondominioDependencies{
		CondominioRepo: condoRepo,
		Cache:          cache.NewRedisCondominioCache(redis.Client, cfg.Redis.CacheTTL(), logger),
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App.Name, logger)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, logger, storage, readiness...),
		Auth:        handlers.NewAuthHandler(authService),
		Users:       handlers.NewUsersHandler(userService),
		Condominios: handlers.NewCondominiosHandler(condoService),
		Metrics:     handlers.NewMetricsHandler(metrics),
		Gate:        auth.NewGate(authService.TokenManager(), userRepo),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
