// Package api wires the HTTP surface for the URL registry and analysis
// recorder.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saviladev/PhishingDetector/internal/cache"
	"github.com/saviladev/PhishingDetector/internal/config"
	"github.com/saviladev/PhishingDetector/internal/database"
	"github.com/saviladev/PhishingDetector/internal/logger"
	"github.com/saviladev/PhishingDetector/internal/server"
)

const (
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	healthCheckTimeout  = 2 * time.Second
)

// Router holds the API dependencies.
type Router struct {
	repo       *database.Repository
	statsCache *cache.StatsCache
	cfg        *config.Config
	logger     logger.Logger
}

// NewRouter creates a new API router.
func NewRouter(repo *database.Repository, statsCache *cache.StatsCache, cfg *config.Config, log logger.Logger) *Router {
	return &Router{
		repo:       repo,
		statsCache: statsCache,
		cfg:        cfg,
		logger:     log,
	}
}

// NewServer builds the HTTP server with middleware, health checks, and
// metrics around the service routes.
func (r *Router) NewServer(log logger.Logger) *server.Server {
	builder := server.NewBuilder(r.cfg.Service.Name, r.cfg.Service.Port).
		WithLogger(log).
		WithDebug(r.cfg.Service.Debug).
		WithVersion(r.cfg.Service.Version).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithMetrics(server.NewMetrics(r.cfg.Service.Name)).
		WithDatabaseHealthCheck(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()
			return r.repo.Ping(ctx)
		}).
		WithRoutes(r.setupServiceRoutes)

	if r.statsCache.Enabled() {
		builder = builder.WithRedisHealthCheck(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()
			return r.statsCache.Ping(ctx)
		})
	}

	return builder.Build()
}

// setupServiceRoutes configures the service routes. Health and metrics
// routes are registered by the server builder.
func (r *Router) setupServiceRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	urls := v1.Group("/urls")
	urls.POST("", r.submitURL)
	urls.GET("", r.listURLsByDomain)
	urls.GET("/lookup", r.lookupURL) // More specific route before :id
	urls.GET("/:id", r.getURL)
	urls.DELETE("/:id", r.deleteURL)

	urls.POST("/:id/results", r.recordResult)
	urls.GET("/:id/results", r.listResults)
	urls.GET("/:id/results/latest", r.getLatestResult)

	v1.GET("/analyses", r.listAnalyses)

	stats := v1.Group("/statistics")
	stats.GET("", r.getStatistics)
	stats.GET("/daily", r.getDailyCounts)
}
