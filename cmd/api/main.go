package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/api/http/handlers"
	"github.com/spec-kit/support-gateway/internal/auth"
	"github.com/spec-kit/support-gateway/internal/config"
	"github.com/spec-kit/support-gateway/internal/events"
	"github.com/spec-kit/support-gateway/internal/fetch"
	"github.com/spec-kit/support-gateway/internal/observability"
	"github.com/spec-kit/support-gateway/internal/repository"
	"github.com/spec-kit/support-gateway/internal/search"
	"github.com/spec-kit/support-gateway/internal/service"
	"github.com/spec-kit/support-gateway/internal/worker"

	httptransport "github.com/spec-kit/support-gateway/internal/api/http"
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

	metrics := observability.NewMetrics()

	cache := fetch.NewPageCache(cfg.Cache, logger)
	defer cache.Close()

	fetcher := fetch.NewFetcher(cfg.Fetcher, cache, logger)
	gateway := search.NewGateway(cfg.Search, logger)

	dispatcher := events.NewInMemoryDispatcher()
	escalationRepo := repository.NewMemoryEscalationRepository()

	supportService := service.NewSupportService(escalationRepo, dispatcher, logger)
	searchService := service.NewSearchService(gateway, cfg.Search.MaxResults)
	supervisorService := service.NewSupervisorService(service.SupervisorDependencies{
		Escalations:   escalationRepo,
		Support:       supportService,
		Search:        searchService,
		Dispatcher:    dispatcher,
		Logger:        logger,
		DefaultEngine: cfg.Search.DefaultEngine,
	})
	escalationService := service.NewEscalationService(escalationRepo, dispatcher)
	summaryService := service.NewSummaryService(fetcher)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(cfg.Auth.ServiceToken, tokenManager)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(),
		Tools:          handlers.NewToolsHandler(supervisorService, summaryService, metrics, cfg.Auth.Identity),
		Escalations:    handlers.NewEscalationsHandler(escalationService, metrics),
		Auth:           handlers.NewAuthHandler(tokenManager),
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
