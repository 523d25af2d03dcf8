package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saviladev/PhishingDetector/internal/models"
)

// parseUUID parses a UUID from a path parameter, responding with 400 on
// malformed input.
func parseUUID(c *gin.Context, paramName, entityType string) (uuid.UUID, bool) {
	idParam := c.Param(paramName)
	id, err := uuid.Parse(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + entityType + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// isValidationError reports whether err is one of the write-time validation
// sentinels. These are non-retriable; the caller must fix the input.
func isValidationError(err error) bool {
	return errors.Is(err, models.ErrEmptyURL) ||
		errors.Is(err, models.ErrEmptyDomain) ||
		errors.Is(err, models.ErrInvalidRiskScore) ||
		errors.Is(err, models.ErrInvalidConfidenceLevel) ||
		errors.Is(err, models.ErrInvalidDuration) ||
		errors.Is(err, models.ErrInvalidDateRange)
}

// handleRepositoryError maps repository errors to HTTP statuses.
func handleRepositoryError(c *gin.Context, err error, entityType, operation string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": entityType + " not found",
		})
	case errors.Is(err, models.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{
			"error": entityType + " already exists",
		})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to " + operation + " " + entityType,
		})
	}
}
