package services

import (
	"context"
	"log/slog"

	"github.com/flowcounts/backend/internal/apperrors"
	"github.com/flowcounts/backend/internal/core/domain"
	"github.com/flowcounts/backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireReviewer checks that the actor may approve or reject entries.
func (s *BaseService) RequireReviewer(ctx context.Context, actor domain.Actor) error {
	if !actor.Role.CanReview() {
		s.LogDebug(ctx, "Actor lacks reviewer role",
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)))
		return apperrors.ErrForbidden
	}
	return nil
}

// RequireAccountManager checks that the actor may mutate the chart of accounts.
func (s *BaseService) RequireAccountManager(ctx context.Context, actor domain.Actor) error {
	if !actor.Role.CanManageAccounts() {
		s.LogDebug(ctx, "Actor lacks account management role",
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)))
		return apperrors.ErrForbidden
	}
	return nil
}
