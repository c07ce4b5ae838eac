package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/thewhitewolf2411/TaskManager/internal/api/http"
	"github.com/thewhitewolf2411/TaskManager/internal/api/http/handlers"
	"github.com/thewhitewolf2411/TaskManager/internal/auth"
	"github.com/thewhitewolf2411/TaskManager/internal/config"
	"github.com/thewhitewolf2411/TaskManager/internal/events"
	"github.com/thewhitewolf2411/TaskManager/internal/observability"
	"github.com/thewhitewolf2411/TaskManager/internal/persistence"
	"github.com/thewhitewolf2411/TaskManager/internal/repository"
	"github.com/thewhitewolf2411/TaskManager/internal/service"
	"github.com/thewhitewolf2411/TaskManager/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	revokedRepo := repository.NewRevokedTokenRepository(pool)
	loginLogRepo := repository.NewLoginLogRepository(pool)

	revocationList := auth.NewRedisRevocationList(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, loginLogRepo, logger)

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:         userRepo,
		RevokedTokenRepo: revokedRepo,
		RevocationList:   revocationList,
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}

	userService := service.NewUserService(userRepo)
	authMiddleware := auth.NewMiddleware(authService.TokenManager(), revocationList, logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	validate := validator.New()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Auth:           handlers.NewAuthHandler(authService, validate),
		Users:          handlers.NewUsersHandler(userService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
