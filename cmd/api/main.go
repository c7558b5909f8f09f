package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/loan-platform/internal/api/http"
	"github.com/spec-kit/loan-platform/internal/api/http/handlers"
	"github.com/spec-kit/loan-platform/internal/auth"
	"github.com/spec-kit/loan-platform/internal/config"
	"github.com/spec-kit/loan-platform/internal/events"
	"github.com/spec-kit/loan-platform/internal/observability"
	"github.com/spec-kit/loan-platform/internal/persistence"
	"github.com/spec-kit/loan-platform/internal/repository"
	"github.com/spec-kit/loan-platform/internal/service"
	"github.com/spec-kit/loan-platform/internal/storage"
	"github.com/spec-kit/loan-platform/internal/worker"
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
	if err := persistence.SeedAdmins(ctx, pg.PoolHandle(), cfg.Seed, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("failed to seed admin accounts", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store, err := storage.NewStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("failed to init upload store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	appRepo := repository.NewApplicationRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	trafficRepo := repository.NewTrafficRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: userRepo})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		UserRepo:   userRepo,
		TicketRepo: ticketRepo,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Assignment: assignmentService,
		Dispatcher: dispatcher,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: appRepo,
		Tickets:         ticketService,
		Store:           store,
		Dispatcher:      dispatcher,
	})
	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		TrafficRepo:     trafficRepo,
		TicketRepo:      ticketRepo,
		ApplicationRepo: appRepo,
		Cache:           redis.Client,
		Logger:          logger,
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Use(httptransport.TrafficRecorder(trafficRepo, authMiddleware, logger))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Public:         handlers.NewPublicHandler(analyticsService),
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
