package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus represents the status of a health check.
type HealthStatus string

const (
	// HealthStatusHealthy indicates the service is healthy.
	HealthStatusHealthy HealthStatus = "healthy"
	// HealthStatusDegraded indicates the service is degraded but functional.
	HealthStatusDegraded HealthStatus = "degraded"
	// HealthStatusUnhealthy indicates the service is unhealthy.
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the health check response format.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult represents the result of an individual health check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker performs a health check and returns the result.
type HealthChecker func() CheckResult

// healthState tracks server start time for uptime reporting.
var healthState = struct {
	sync.Once
	startTime time.Time
}{}

func initStartTime() {
	healthState.Do(func() {
		healthState.startTime = time.Now()
	})
}

// RegisterHealthRoutes adds GET /health and HEAD /health endpoints with the
// given named checks.
func RegisterHealthRoutes(router *gin.Engine, serviceName, version string, checks map[string]HealthChecker) {
	initStartTime()

	router.GET("/health", healthHandler(serviceName, version, checks))
	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func healthHandler(serviceName, version string, checks map[string]HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: serviceName,
			Version: version,
			Uptime:  time.Since(healthState.startTime).Round(time.Second).String(),
		}

		if len(checks) > 0 {
			response.Checks = make(map[string]CheckResult, len(checks))
			for name, checker := range checks {
				result := checker()
				response.Checks[name] = result

				if result.Status == HealthStatusUnhealthy {
					response.Status = HealthStatusUnhealthy
				} else if result.Status == HealthStatusDegraded && response.Status == HealthStatusHealthy {
					response.Status = HealthStatusDegraded
				}
			}
		}

		statusCode := http.StatusOK
		if response.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, response)
	}
}

// DatabaseHealthChecker creates a health checker for database connectivity.
func DatabaseHealthChecker(pingFunc func() error) HealthChecker {
	return func() CheckResult {
		start := time.Now()
		err := pingFunc()
		latency := time.Since(start)

		if err != nil {
			return CheckResult{
				Status:  HealthStatusUnhealthy,
				Message: "Database connection failed",
				Latency: latency.String(),
			}
		}

		return CheckResult{
			Status:  HealthStatusHealthy,
			Message: "Database connection OK",
			Latency: latency.String(),
		}
	}
}

// RedisHealthChecker creates a health checker for Redis connectivity. The
// cache is optional, so a failure degrades rather than fails the service.
func RedisHealthChecker(pingFunc func() error) HealthChecker {
	return func() CheckResult {
		start := time.Now()
		err := pingFunc()
		latency := time.Since(start)

		if err != nil {
			return CheckResult{
				Status:  HealthStatusDegraded,
				Message: "Redis connection failed",
				Latency: latency.String(),
			}
		}

		return CheckResult{
			Status:  HealthStatusHealthy,
			Message: "Redis connection OK",
			Latency: latency.String(),
		}
	}
}
