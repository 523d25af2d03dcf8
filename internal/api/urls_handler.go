package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saviladev/PhishingDetector/internal/logger"
	"github.com/saviladev/PhishingDetector/internal/models"
)

// submitURL registers a URL for analysis.
// POST /api/v1/urls
//
// Submission is idempotent: a known URL resolves to its existing record
// with 200, a new URL is created with 201. A duplicate is never an error.
func (r *Router) submitURL(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.URLSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	record, created, err := r.repo.SubmitURL(ctx, &req)
	if err != nil {
		handleRepositoryError(c, err, "url", "submit")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		r.logger.Info("URL registered",
			logger.String("url_id", record.ID.String()),
			logger.String("domain", record.Domain),
			logger.String("source", record.Source),
		)
	}

	c.JSON(status, record)
}

// lookupURL retrieves a URL record by its normalized URL text.
// GET /api/v1/urls/lookup?url=...
func (r *Router) lookupURL(c *gin.Context) {
	ctx := c.Request.Context()

	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "url query parameter is required",
		})
		return
	}

	record, err := r.repo.GetURLByURL(ctx, url)
	if err != nil {
		handleRepositoryError(c, err, "url", "lookup")
		return
	}

	c.JSON(http.StatusOK, record)
}

// listURLsByDomain lists URLs for a domain, most recently submitted first.
// GET /api/v1/urls?domain=...
func (r *Router) listURLsByDomain(c *gin.Context) {
	ctx := c.Request.Context()

	var filter models.URLFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}
	if filter.Domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "domain query parameter is required",
		})
		return
	}

	records, err := r.repo.ListURLsByDomain(ctx, &filter)
	if err != nil {
		handleRepositoryError(c, err, "urls", "list")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"urls":  records,
		"count": len(records),
	})
}

// getURL retrieves a URL record by ID.
// GET /api/v1/urls/:id
func (r *Router) getURL(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "url")
	if !ok {
		return
	}

	record, err := r.repo.GetURLByID(ctx, id)
	if err != nil {
		handleRepositoryError(c, err, "url", "get")
		return
	}

	c.JSON(http.StatusOK, record)
}

// deleteURL removes a URL and, via cascade, all of its analysis results.
// DELETE /api/v1/urls/:id
func (r *Router) deleteURL(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := parseUUID(c, "id", "url")
	if !ok {
		return
	}

	if err := r.repo.DeleteURL(ctx, id); err != nil {
		handleRepositoryError(c, err, "url", "delete")
		return
	}

	r.statsCache.Invalidate(ctx)

	r.logger.Info("URL deleted", logger.String("url_id", id.String()))

	c.JSON(http.StatusOK, gin.H{
		"message": "URL and its analysis results deleted",
	})
}
