package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saviladev/PhishingDetector/internal/models"
)

// listAnalyses returns analysis results across all URLs, newest first,
// optionally bounded by a date range.
// GET /api/v1/analyses?start_date=2026-08-01&end_date=2026-08-27
func (r *Router) listAnalyses(c *gin.Context) {
	ctx := c.Request.Context()

	var filter models.AnalysisFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	results, err := r.repo.ListAnalyses(ctx, &filter)
	if err != nil {
		handleRepositoryError(c, err, "analyses", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(results),
		"data":  results,
	})
}
