package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saviladev/PhishingDetector/internal/models"
)

// dateRangeQuery binds the optional date-range parameters shared by the
// statistics endpoints.
type dateRangeQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date"   time_format:"2006-01-02"`
}

func (q *dateRangeQuery) validate() error {
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return models.ErrInvalidDateRange
	}
	return nil
}

// getStatistics returns aggregate statistics over analysis results,
// served from the cache when possible.
// GET /api/v1/statistics?start_date=&end_date=
func (r *Router) getStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date format",
			"details": err.Error(),
		})
		return
	}
	if err := q.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := r.statsCache.Key(q.StartDate, q.EndDate)
	if stats, ok := r.statsCache.Get(ctx, key); ok {
		c.JSON(http.StatusOK, stats)
		return
	}

	stats, err := r.repo.GetStatistics(ctx, q.StartDate, q.EndDate)
	if err != nil {
		handleRepositoryError(c, err, "statistics", "get")
		return
	}

	r.statsCache.Set(ctx, key, stats)

	c.JSON(http.StatusOK, stats)
}

// getDailyCounts returns per-day analysis counts for a required date range.
// GET /api/v1/statistics/daily?start_date=&end_date=
func (r *Router) getDailyCounts(c *gin.Context) {
	ctx := c.Request.Context()

	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid date format",
			"details": err.Error(),
		})
		return
	}
	if q.StartDate == nil || q.EndDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "start_date and end_date query parameters are required",
		})
		return
	}
	if err := q.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	counts, err := r.repo.GetDailyCounts(ctx, *q.StartDate, *q.EndDate)
	if err != nil {
		handleRepositoryError(c, err, "daily counts", "get")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": counts,
	})
}
