package services

import (
	"context"
	"log/slog"

	"github.com/branchbooks/ledger_backend/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct {
	logger *slog.Logger
}

// NewBaseService creates a new base service with the given logger.
func NewBaseService(logger *slog.Logger) BaseService {
	return BaseService{logger: logger}
}

// GetLogger returns the request-scoped logger from the context, falling back
// to the service's own logger outside of a request.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if l := middleware.GetLoggerFromCtx(ctx); l != slog.Default() {
		return l
	}
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// LogError logs an error with the request-scoped logger.
func (s *BaseService) LogError(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with the request-scoped logger.
func (s *BaseService) LogWarn(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs at info level with the request-scoped logger.
func (s *BaseService) LogInfo(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Info(msg, args...)
}

// LogDebug logs at debug level with the request-scoped logger.
func (s *BaseService) LogDebug(ctx context.Context, msg string, args ...any) {
	s.GetLogger(ctx).Debug(msg, args...)
}
