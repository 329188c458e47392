package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gatewatch/console-api/internal/auth"
	"github.com/gatewatch/console-api/internal/config"
	"github.com/gatewatch/console-api/internal/database"
	"github.com/gatewatch/console-api/internal/http/handler"
	"github.com/gatewatch/console-api/internal/http/middleware"
	"github.com/gatewatch/console-api/internal/http/router"
	"github.com/gatewatch/console-api/internal/jobs"
	"github.com/gatewatch/console-api/internal/logger"
	"github.com/gatewatch/console-api/internal/repository"
	"github.com/gatewatch/console-api/internal/service"
	"github.com/gatewatch/console-api/internal/unifi"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Open the local state database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate state database: %w", err)
	}

	// State persistence
	stateRepo := repository.NewStateRepository(db)

	// Authentication
	verifier := auth.NewStaticVerifier(&cfg.Auth)
	tokens := auth.NewTokenManager(&cfg.Auth, cfg.App.Name)
	authMiddleware := auth.NewMiddleware(tokens, log)

	// Stores: load persisted state before serving
	registry := service.NewGatewayRegistry(stateRepo, log)
	if err := registry.Load(ctx); err != nil {
		return fmt.Errorf("failed to load gateway registry: %w", err)
	}
	userStore := service.NewUserStore(stateRepo, verifier, &cfg.Auth, log)
	if err := userStore.Load(ctx); err != nil {
		return fmt.Errorf("failed to load user store: %w", err)
	}

	// Connectivity prober
	prober := unifi.NewClient(&cfg.Probe)

	dashboardService := service.NewDashboardService(log)

	// Middleware and handlers
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	gatewayHandler := handler.NewGatewayHandler(registry, prober, log)
	authHandler := handler.NewAuthHandler(userStore, tokens, log)
	userHandler := handler.NewUserHandler(userStore, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		gatewayHandler,
		authHandler,
		userHandler,
		dashboardHandler,
	)

	// Background gateway status polling
	var scheduler *jobs.Scheduler
	if cfg.StatusPoll.Enabled {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterStatusPollJob(
			scheduler,
			registry,
			prober,
			log,
			cfg.StatusPoll.Cron,
			cfg.StatusPoll.TimeoutDuration(),
		); err != nil {
			log.Error("Failed to register status poll job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with gateway status poll",
				zap.String("cron_expr", cfg.StatusPoll.Cron),
				zap.Duration("timeout", cfg.StatusPoll.TimeoutDuration()),
			)
		}
	} else {
		log.Info("Gateway status polling disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
