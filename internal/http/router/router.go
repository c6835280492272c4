package router

import (
	"encoding/json"
	"net/http"

	"github.com/crestline-build/bidtrack-api/internal/auth"
	"github.com/crestline-build/bidtrack-api/internal/config"
	"github.com/crestline-build/bidtrack-api/internal/database"
	"github.com/crestline-build/bidtrack-api/internal/http/handler"
	"github.com/crestline-build/bidtrack-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/crestline-build/bidtrack-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	registry            *prometheus.Registry
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	metrics             *middleware.Metrics
	projectHandler      *handler.ProjectHandler
	vendorHandler       *handler.VendorHandler
	bidVendorHandler    *handler.BidVendorHandler
	noteHandler         *handler.NoteHandler
	notificationHandler *handler.NotificationHandler
	fileHandler         *handler.FileHandler
	dashboardHandler    *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	registry *prometheus.Registry,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	metrics *middleware.Metrics,
	projectHandler *handler.ProjectHandler,
	vendorHandler *handler.VendorHandler,
	bidVendorHandler *handler.BidVendorHandler,
	noteHandler *handler.NoteHandler,
	notificationHandler *handler.NotificationHandler,
	fileHandler *handler.FileHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		registry:            registry,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		metrics:             metrics,
		projectHandler:      projectHandler,
		vendorHandler:       vendorHandler,
		bidVendorHandler:    bidVendorHandler,
		noteHandler:         noteHandler,
		notificationHandler: notificationHandler,
		fileHandler:         fileHandler,
		dashboardHandler:    dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.metrics.Instrument)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		overall := "healthy"
		if !allHealthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": checks,
		})
	})

	// Prometheus metrics
	r.Get("/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}).ServeHTTP)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.rateLimiter.Limit)

		// Projects
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", rt.projectHandler.ListProjects)
			r.Post("/", rt.projectHandler.CreateProject)
			r.Get("/search", rt.projectHandler.SearchProjects)
			r.Get("/{id}", rt.projectHandler.GetProject)
			r.Patch("/{id}", rt.projectHandler.UpdateProject)
			r.With(rt.authMiddleware.RequireAdmin).Delete("/{id}", rt.projectHandler.DeleteProject)

			// Vendor assignments
			r.Post("/{id}/vendors", rt.bidVendorHandler.AssignVendor)

			// Notes
			r.Get("/{id}/notes", rt.noteHandler.ListNotes)
			r.Post("/{id}/notes", rt.noteHandler.CreateNote)
		})

		// Bid vendors (assignments addressed by relationship ID)
		r.Route("/bid-vendors", func(r chi.Router) {
			r.Get("/{relId}", rt.bidVendorHandler.GetBidVendor)
			r.Put("/{relId}", rt.bidVendorHandler.SaveBidVendor)
			r.Delete("/{relId}", rt.bidVendorHandler.Unassign)
			r.Get("/{relId}/phases", rt.bidVendorHandler.ListPhases)
			r.Put("/{relId}/phases/{phaseType}", rt.bidVendorHandler.UpdatePhase)
			r.Post("/{relId}/est-responses", rt.bidVendorHandler.AddEstResponse)
		})

		// Vendors
		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", rt.vendorHandler.ListVendors)
			r.Post("/", rt.vendorHandler.CreateVendor)
			r.Get("/{id}", rt.vendorHandler.GetVendor)
			r.Patch("/{id}", rt.vendorHandler.UpdateVendor)
			r.Delete("/{id}", rt.vendorHandler.DeleteVendor)
			r.Get("/{id}/contacts", rt.vendorHandler.ListContacts)
			r.Post("/{id}/contacts", rt.vendorHandler.AddContact)
			r.Patch("/{id}/contacts/{contactId}", rt.vendorHandler.UpdateContact)
			r.Delete("/{id}/contacts/{contactId}", rt.vendorHandler.DeleteContact)
			r.Put("/{id}/primary-contact", rt.vendorHandler.SetPrimaryContact)
		})

		// Notes (addressed directly for edits)
		r.Route("/notes", func(r chi.Router) {
			r.Patch("/{noteId}", rt.noteHandler.UpdateNote)
			r.Delete("/{noteId}", rt.noteHandler.DeleteNote)
		})

		// Notifications
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", rt.notificationHandler.ListNotifications)
			r.Post("/read-all", rt.notificationHandler.MarkAllRead)
			r.Post("/{id}/read", rt.notificationHandler.MarkRead)
		})

		// Dashboard (served from the realtime store)
		r.Get("/dashboard/summary", rt.dashboardHandler.GetSummary)

		// Files
		r.Route("/files", func(r chi.Router) {
			r.Get("/entity/{entityType}/{entityId}", rt.fileHandler.ListFiles)
			r.Post("/entity/{entityType}/{entityId}", rt.fileHandler.UploadFile)
			r.Get("/{id}", rt.fileHandler.DownloadFile)
			r.Delete("/{id}", rt.fileHandler.DeleteFile)
		})
	})

	return r
}
