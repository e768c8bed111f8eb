package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Behnamfe76/officedesk/internal/api/http"
	"github.com/Behnamfe76/officedesk/internal/api/http/handlers"
	"github.com/Behnamfe76/officedesk/internal/auth"
	"github.com/Behnamfe76/officedesk/internal/config"
	"github.com/Behnamfe76/officedesk/internal/events"
	"github.com/Behnamfe76/officedesk/internal/identity"
	"github.com/Behnamfe76/officedesk/internal/observability"
	"github.com/Behnamfe76/officedesk/internal/persistence"
	"github.com/Behnamfe76/officedesk/internal/report"
	"github.com/Behnamfe76/officedesk/internal/repository"
	"github.com/Behnamfe76/officedesk/internal/repository/memstore"
	"github.com/Behnamfe76/officedesk/internal/service"
	"github.com/Behnamfe76/officedesk/internal/worker"
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

	var (
		store      *repository.Store
		projection report.Projection
	)
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewPostgresStore(pool)
		reportingDB, err := persistence.NewReportingDB(pg, logger)
		if err != nil {
			logger.Fatal("failed to open reporting db", zap.Error(err))
		}
		projection = report.NewProjection(reportingDB)
	} else {
		store = memstore.New().Store()
		projection = report.NewStoreProjection(store)
	}

	var (
		redis       *persistence.Redis
		unreadCache service.UnreadCache
	)
	if cfg.Redis.Addr != "" {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		unreadCache = persistence.NewUnreadCache(redis.Client, cfg.Notification.UnreadCacheTTL(), logger)
	}

	provider, err := identity.NewProvider(cfg.Identity, logger)
	if err != nil {
		logger.Fatal("failed to init identity provider", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	deps := service.Dependencies{Store: store, Dispatcher: dispatcher, Logger: logger}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLMinutes)
	authService := service.NewAuthService(provider, tokens, logger)
	leaveService := service.NewLeaveService(deps, provider)
	bookingService := service.NewBookingService(deps)
	fleetService := service.NewFleetService(deps, bookingService)
	ticketService := service.NewTicketService(deps)
	helpdeskAdmin := service.NewHelpdeskAdminService(deps)
	notificationService := service.NewNotificationService(deps, unreadCache)
	reportService := report.NewService(projection, logger)

	worker.StartNotificationWorker(dispatcher, notificationService, metrics)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService, leaveService, notificationService),
		Leave:          handlers.NewLeaveHandler(leaveService),
		Bookings:       handlers.NewBookingHandler(bookingService),
		Fleet:          handlers.NewFleetHandler(fleetService, bookingService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		HelpdeskAdmin:  handlers.NewHelpdeskAdminHandler(helpdeskAdmin),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
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
