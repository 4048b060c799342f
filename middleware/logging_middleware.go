package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"waapi-go/message"
)

// LoggingMiddleware logs every call with a generated call id and its duration.
// Errors are logged and returned untouched.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, req *message.Request) (*message.Response, error) {
			start := time.Now()
			callID := uuid.NewString()
			resp, err := next(ctx, req)

			fields := []zap.Field{
				zap.String("call_id", callID),
				zap.String("uri", req.URI),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Warn("waapi call failed", append(fields, zap.Error(err))...)
				return resp, err
			}
			logger.Debug("waapi call", fields...)
			return resp, nil
		}
	}
}
