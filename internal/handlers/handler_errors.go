package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service-layer errors onto HTTP responses. Field
// level validation failures carry their details so clients can highlight the
// offending inputs.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": vErr.Fields})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrStateTransition):
		logger.Warn("Invalid state transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
