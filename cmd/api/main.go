package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Potism/studiomain/internal/api/http"
	"github.com/Potism/studiomain/internal/api/http/handlers"
	"github.com/Potism/studiomain/internal/auth"
	"github.com/Potism/studiomain/internal/cache"
	"github.com/Potism/studiomain/internal/config"
	"github.com/Potism/studiomain/internal/events"
	"github.com/Potism/studiomain/internal/mail"
	"github.com/Potism/studiomain/internal/observability"
	"github.com/Potism/studiomain/internal/persistence"
	"github.com/Potism/studiomain/internal/repository"
	"github.com/Potism/studiomain/internal/service"
	"github.com/Potism/studiomain/internal/storage"
	"github.com/Potism/studiomain/internal/worker"
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

	blobs, err := storage.NewFSBlobStore(cfg.Storage.Root, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal("failed to init blob storage", zap.Error(err))
	}

	var mailer *mail.Client
	if cfg.Mail.APIKey != "" {
		mailer, err = mail.NewClient(cfg.Mail)
		if err != nil {
			logger.Fatal("failed to init mail client", zap.Error(err))
		}
	} else {
		logger.Warn("MAIL_API_KEY not provided; contact notifications disabled")
	}

	pool := pg.PoolHandle()
	identityRepo := repository.NewIdentityRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	portfolioRepo := repository.NewPortfolioRepository(pool)
	contactRepo := repository.NewContactRepository(pool)

	responseCache := cache.New(redis.Client, time.Duration(cfg.Auth.CacheTTLSeconds)*time.Second)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		IdentityRepo: identityRepo,
		AdminRepo:    adminRepo,
	}, logger)
	contentService := service.NewContentService(contentRepo, responseCache, dispatcher, logger)
	portfolioService := service.NewPortfolioService(portfolioRepo, blobs, responseCache, dispatcher, logger)
	contactService := service.NewContactService(contactRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail)
	worker.StartNotificationWorker(notificationService)

	sessions := auth.NewMiddleware(authService.Gate(), "/admin/login")

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	app.Static(cfg.Storage.PublicBaseURL, blobs.Root())

	secureCookies := cfg.App.Env == "production"
	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService, secureCookies)
	contentHandler := handlers.NewContentHandler(contentService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	contactHandler := handlers.NewContactHandler(contactService)
	adminPages := handlers.NewAdminPagesHandler()

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     healthHandler,
		Auth:       authHandler,
		Content:    contentHandler,
		Portfolio:  portfolioHandler,
		Contact:    contactHandler,
		AdminPages: adminPages,
		Sessions:   sessions,
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
