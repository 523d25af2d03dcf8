package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthResponse(t *testing.T, w *httptest.ResponseRecorder) HealthResponse {
	t.Helper()

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		checks     map[string]HealthChecker
		wantCode   int
		wantStatus HealthStatus
	}{
		{
			name:       "no checks",
			checks:     nil,
			wantCode:   http.StatusOK,
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "all checks pass",
			checks: map[string]HealthChecker{
				"database": DatabaseHealthChecker(func() error { return nil }),
				"redis":    RedisHealthChecker(func() error { return nil }),
			},
			wantCode:   http.StatusOK,
			wantStatus: HealthStatusHealthy,
		},
		{
			name: "redis failure degrades",
			checks: map[string]HealthChecker{
				"database": DatabaseHealthChecker(func() error { return nil }),
				"redis":    RedisHealthChecker(func() error { return errors.New("connection refused") }),
			},
			wantCode:   http.StatusOK,
			wantStatus: HealthStatusDegraded,
		},
		{
			name: "database failure is unhealthy",
			checks: map[string]HealthChecker{
				"database": DatabaseHealthChecker(func() error { return errors.New("connection refused") }),
				"redis":    RedisHealthChecker(func() error { return nil }),
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: HealthStatusUnhealthy,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			RegisterHealthRoutes(router, "phishing-detector", "0.1.0", tc.checks)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.wantCode, w.Code)

			resp := healthResponse(t, w)
			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, "phishing-detector", resp.Service)
			assert.Len(t, resp.Checks, len(tc.checks))
		})
	}
}

func TestHealthEndpoint_Head(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	RegisterHealthRoutes(router, "phishing-detector", "0.1.0", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
