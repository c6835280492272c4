package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crestline-build/bidtrack-api/docs"
	"github.com/crestline-build/bidtrack-api/internal/auth"
	"github.com/crestline-build/bidtrack-api/internal/config"
	"github.com/crestline-build/bidtrack-api/internal/database"
	"github.com/crestline-build/bidtrack-api/internal/http/handler"
	"github.com/crestline-build/bidtrack-api/internal/http/middleware"
	"github.com/crestline-build/bidtrack-api/internal/http/router"
	"github.com/crestline-build/bidtrack-api/internal/jobs"
	"github.com/crestline-build/bidtrack-api/internal/logger"
	"github.com/crestline-build/bidtrack-api/internal/realtime"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"github.com/crestline-build/bidtrack-api/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title BidTrack API
// @version 1.0
// @description Bid and project tracking API for construction estimating and project management

// @contact.name API Support
// @contact.email support@crestline.build

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "bidtrack-staging.crestline.build"
	case "production":
		docs.SwaggerInfo.Host = "api.crestline.build"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run auto migration: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	vendorRepo := repository.NewVendorRepository(db)
	contactRepo := repository.NewContactRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	projectVendorRepo := repository.NewProjectVendorRepository(db)
	phaseRepo := repository.NewPhaseRepository(db)
	financialRepo := repository.NewFinancialRepository(db)
	estResponseRepo := repository.NewEstResponseRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	projectDataRepo := repository.NewProjectDataRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// Live in-memory mirror of the watched tables. Warmed from the database
	// at startup; the change feed keeps it in sync while the listener runs,
	// and the dashboard reads from it either way.
	store := realtime.NewStore(vendorRepo, log)
	refresher := realtime.NewStoreRefresher(db, store, log)
	if err := refresher.Warm(ctx); err != nil {
		return fmt.Errorf("failed to warm realtime store: %w", err)
	}

	// Initialize services
	vendorService := service.NewVendorService(db, vendorRepo, contactRepo, log)
	projectService := service.NewProjectService(projectRepo, projectVendorRepo, phaseRepo, financialRepo, estResponseRepo, noteRepo, projectDataRepo, log)
	bidVendorService := service.NewBidVendorService(projectVendorRepo, vendorRepo, projectRepo, phaseRepo, financialRepo, estResponseRepo, log)
	noteService := service.NewNoteService(noteRepo, projectRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	fileService := service.NewFileService(fileRepo, fileStorage, log)
	dashboardService := service.NewDashboardService(store, phaseRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// Initialize handlers
	projectHandler := handler.NewProjectHandler(projectService, log)
	vendorHandler := handler.NewVendorHandler(vendorService, log)
	bidVendorHandler := handler.NewBidVendorHandler(bidVendorService, log)
	noteHandler := handler.NewNoteHandler(noteService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	fileHandler := handler.NewFileHandler(fileService, &cfg.Storage, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		registry,
		authMiddleware,
		rateLimiter,
		metrics,
		projectHandler,
		vendorHandler,
		bidVendorHandler,
		noteHandler,
		notificationHandler,
		fileHandler,
		dashboardHandler,
	)

	// Realtime change feed: keep the store in sync via LISTEN/NOTIFY
	var (
		listener   *realtime.Listener
		reconciler *realtime.Reconciler
	)
	if cfg.Realtime.Enabled {
		reconciler = realtime.NewReconciler(&cfg.Realtime, refresher, log)
		store.Register(reconciler)

		listener = realtime.NewListener(cfg.Database.ConnectionString(), &cfg.Realtime, reconciler, log)
		if err := listener.Start(ctx); err != nil {
			return fmt.Errorf("failed to start realtime listener: %w", err)
		}
		log.Info("realtime listener started",
			zap.String("channel", cfg.Realtime.Channel),
			zap.String("strategy", cfg.Realtime.Strategy))
	} else {
		log.Info("realtime change feed disabled")
	}

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.FollowUpReminderEnabled {
		scheduler = jobs.NewScheduler(log)

		reminderJob := jobs.NewFollowUpReminderJob(
			phaseRepo,
			projectVendorRepo,
			projectRepo,
			vendorRepo,
			notificationRepo,
			notificationService,
			log,
			cfg.Jobs.FollowUpReminderTimeoutDuration(),
		)
		if err := jobs.RegisterFollowUpReminderJob(scheduler, reminderJob, cfg.Jobs.FollowUpReminderCron); err != nil {
			log.Error("failed to register follow-up reminder job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("scheduler started with follow-up reminder job",
				zap.String("cron_expr", cfg.Jobs.FollowUpReminderCron),
				zap.Duration("timeout", cfg.Jobs.FollowUpReminderTimeoutDuration()),
			)
		}
	} else {
		log.Info("follow-up reminder job disabled")
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
		log.Info("server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("scheduler stopped")
		}

		// Stop the change feed before the server so no events arrive
		// during teardown
		if listener != nil {
			if err := listener.Close(); err != nil {
				log.Warn("error closing realtime listener", zap.Error(err))
			}
		}
		if reconciler != nil {
			reconciler.Close()
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("server stopped gracefully")
	}

	return nil
}
