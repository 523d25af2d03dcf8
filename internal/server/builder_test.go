package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saviladev/PhishingDetector/internal/logger"
)

func TestBuilder_Build(t *testing.T) {
	srv := NewBuilder("phishing-detector", 8080).
		WithLogger(logger.NewNop()).
		WithVersion("0.1.0").
		WithDatabaseHealthCheck(func() error { return nil }).
		WithRoutes(func(router *gin.Engine) {
			router.GET("/ping", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "pong"})
			})
		}).
		Build()

	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuilder_MetricsRoute(t *testing.T) {
	srv := NewBuilder("phishing-detector-metrics-test", 8080).
		WithLogger(logger.NewNop()).
		WithMetrics(NewMetrics("phishing-detector-metrics-test")).
		Build()

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
