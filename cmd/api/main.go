package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/soporte-service/internal/api/http"
	"github.com/spec-kit/soporte-service/internal/api/http/handlers"
	"github.com/spec-kit/soporte-service/internal/auth"
	"github.com/spec-kit/soporte-service/internal/config"
	"github.com/spec-kit/soporte-service/internal/events"
	"github.com/spec-kit/soporte-service/internal/observability"
	"github.com/spec-kit/soporte-service/internal/persistence"
	"github.com/spec-kit/soporte-service/internal/repository"
	"github.com/spec-kit/soporte-service/internal/service"
	"github.com/spec-kit/soporte-service/internal/store"
	"github.com/spec-kit/soporte-service/internal/worker"
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
	workItemRepo := repository.NewWorkItemRepository(pool)
	directoryRepo := repository.NewDirectoryRepository(pool)
	operatorRepo := repository.NewOperatorRepository(pool)

	st := store.New(cfg.Engine.JournalBuffer)
	if cfg.Engine.WarmLoad && pool != nil {
		if err := worker.WarmLoad(ctx, workItemRepo, st, logger); err != nil {
			logger.Fatal("failed to warm store from snapshots", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	relay := events.NewStreamRelay(redis.Client, cfg.Redis.EventStream, logger)
	relay.Register(dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	if changes := st.Changes(); changes != nil && pool != nil {
		writer := worker.NewDurableWriter(workItemRepo, logger)
		go writer.Run(ctx, changes)
	}

	directoryService := service.NewDirectoryService(directoryRepo, redis.Client, cfg.Redis.DirectoryTTL(), logger)
	propagation := service.NewPropagationEngine(st, directoryService, dispatcher, metrics, logger)

	ticketService := service.NewTicketService(st, directoryService, dispatcher, metrics)
	averiaService := service.NewAveriaService(st, dispatcher, metrics)
	visitaService := service.NewVisitaService(st, directoryService, dispatcher, metrics)
	derivacionService := service.NewDerivacionService(st, directoryService, propagation, dispatcher, metrics)
	sesionService := service.NewSesionService(st, directoryService, propagation, dispatcher, metrics)
	postVentaService := service.NewPostVentaService(st, directoryService, dispatcher, metrics)

	authService := service.NewAuthService(cfg.Auth, operatorRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), operatorRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:        handlers.NewMetricsHandler(metrics),
		Operators:      handlers.NewOperatorsHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Averias:        handlers.NewAveriasHandler(averiaService),
		Visitas:        handlers.NewVisitasHandler(visitaService),
		Derivaciones:   handlers.NewDerivacionesHandler(derivacionService),
		Sesiones:       handlers.NewSesionesHandler(sesionService),
		PostVentas:     handlers.NewPostVentasHandler(postVentaService),
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
