package router

import (
	"encoding/json"
	"net/http"

	"github.com/gatewatch/console-api/internal/auth"
	"github.com/gatewatch/console-api/internal/config"
	"github.com/gatewatch/console-api/internal/database"
	"github.com/gatewatch/console-api/internal/http/handler"
	"github.com/gatewatch/console-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	authMiddleware   *auth.Middleware
	rateLimiter      *middleware.RateLimiter
	gatewayHandler   *handler.GatewayHandler
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	dashboardHandler *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	gatewayHandler *handler.GatewayHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		gatewayHandler:   gatewayHandler,
		authHandler:      authHandler,
		userHandler:      userHandler,
		dashboardHandler: dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// State database health check
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Post("/auth/login", rt.authHandler.Login)
		r.Post("/auth/logout", rt.authHandler.Logout)
		r.Post("/auth/register", rt.authHandler.Register)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.RequireAuth)

			r.Get("/auth/me", rt.authHandler.Me)

			r.Route("/gateways", func(r chi.Router) {
				r.Get("/", rt.gatewayHandler.ListGateways)
				r.Post("/", rt.gatewayHandler.CreateGateway)
				r.Post("/test", rt.gatewayHandler.TestConnection)
				r.Patch("/{id}", rt.gatewayHandler.UpdateGateway)
				r.Delete("/{id}", rt.gatewayHandler.DeleteGateway)
				r.Post("/{id}/activate", rt.gatewayHandler.ActivateGateway)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/overview", rt.dashboardHandler.Overview)
				r.Get("/traffic", rt.dashboardHandler.Traffic)
				r.Get("/blocks", rt.dashboardHandler.Blocks)
				r.Get("/logs", rt.dashboardHandler.Logs)
				r.Get("/devices", rt.dashboardHandler.Devices)
			})

			// User management is admin-only
			r.Route("/users", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/", rt.userHandler.ListUsers)
				r.Post("/", rt.userHandler.CreateUser)
				r.Patch("/{id}", rt.userHandler.UpdateUser)
				r.Delete("/{id}", rt.userHandler.DeleteUser)
			})
		})
	})

	return r
}
