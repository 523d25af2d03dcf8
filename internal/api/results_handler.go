package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saviladev/PhishingDetector/internal/logger"
	"github.com/saviladev/PhishingDetector/internal/models"
)

// recordResult appends a completed analysis verdict for a URL.
// POST /api/v1/urls/:id/results
//
// 400 on verdict validation failure, 404 when the URL does not exist.
func (r *Router) recordResult(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "url")
	if !ok {
		return
	}

	var req models.VerdictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	result, err := r.repo.CreateAnalysisResult(ctx, id, &req)
	if err != nil {
		handleRepositoryError(c, err, "analysis result", "record")
		return
	}

	r.statsCache.Invalidate(ctx)

	r.logger.Info("Analysis result recorded",
		logger.String("url_id", id.String()),
		logger.String("result_id", result.ID.String()),
		logger.Bool("is_phishing", result.IsPhishing),
		logger.Int("risk_score", result.RiskScore),
		logger.String("confidence", result.ConfidenceLevel),
	)

	c.JSON(http.StatusCreated, result)
}

// getLatestResult returns the most recent verdict for a URL.
// GET /api/v1/urls/:id/results/latest
func (r *Router) getLatestResult(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "url")
	if !ok {
		return
	}

	result, err := r.repo.GetLatestResult(ctx, id)
	if err != nil {
		handleRepositoryError(c, err, "analysis result", "get")
		return
	}

	c.JSON(http.StatusOK, result)
}

// listResults returns the analysis history for a URL, newest first.
// GET /api/v1/urls/:id/results
func (r *Router) listResults(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "url")
	if !ok {
		return
	}

	var filter models.AnalysisFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	results, err := r.repo.ListResultsByURL(ctx, id, &filter)
	if err != nil {
		handleRepositoryError(c, err, "analysis results", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}
