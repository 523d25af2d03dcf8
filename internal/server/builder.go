package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saviladev/PhishingDetector/internal/logger"
)

// Builder provides a fluent API for assembling the HTTP server.
type Builder struct {
	config       *Config
	logger       logger.Logger
	setupRoutes  func(*gin.Engine)
	healthChecks map[string]HealthChecker
	metrics      *Metrics
}

// NewBuilder creates a server builder for the given service and port.
func NewBuilder(serviceName string, port int) *Builder {
	return &Builder{
		config:       NewConfig(serviceName, port),
		healthChecks: make(map[string]HealthChecker),
	}
}

// WithLogger sets the logger.
func (b *Builder) WithLogger(log logger.Logger) *Builder {
	b.logger = log
	return b
}

// WithDebug enables or disables debug mode.
func (b *Builder) WithDebug(debug bool) *Builder {
	b.config.Debug = debug
	return b
}

// WithVersion sets the service version.
func (b *Builder) WithVersion(version string) *Builder {
	b.config.ServiceVersion = version
	return b
}

// WithTimeouts sets all timeout values for the HTTP server.
func (b *Builder) WithTimeouts(read, write, idle time.Duration) *Builder {
	b.config.ReadTimeout = read
	b.config.WriteTimeout = write
	b.config.IdleTimeout = idle
	return b
}

// WithCORSOrigins sets allowed CORS origins.
func (b *Builder) WithCORSOrigins(origins []string) *Builder {
	b.config.CORS.AllowedOrigins = origins
	return b
}

// WithDatabaseHealthCheck adds a database health check.
func (b *Builder) WithDatabaseHealthCheck(pingFunc func() error) *Builder {
	b.healthChecks["database"] = DatabaseHealthChecker(pingFunc)
	return b
}

// WithRedisHealthCheck adds a Redis health check.
func (b *Builder) WithRedisHealthCheck(pingFunc func() error) *Builder {
	b.healthChecks["redis"] = RedisHealthChecker(pingFunc)
	return b
}

// WithMetrics enables the Prometheus middleware and /metrics endpoint.
func (b *Builder) WithMetrics(m *Metrics) *Builder {
	b.metrics = m
	return b
}

// WithRoutes sets the service-specific route setup function.
func (b *Builder) WithRoutes(setupRoutes func(*gin.Engine)) *Builder {
	b.setupRoutes = setupRoutes
	return b
}

// Build creates the server with all configured options.
func (b *Builder) Build() *Server {
	if b.logger == nil {
		b.logger = logger.Must(logger.Config{
			Level:       "info",
			Development: b.config.Debug,
		})
	}

	wrappedSetup := func(router *gin.Engine) {
		if b.metrics != nil {
			router.Use(b.metrics.Middleware())
			RegisterMetricsRoute(router)
		}

		RegisterHealthRoutes(router, b.config.ServiceName, b.config.ServiceVersion, b.healthChecks)

		if b.setupRoutes != nil {
			b.setupRoutes(router)
		}
	}

	return NewServer(b.config, b.logger, wrappedSetup)
}
