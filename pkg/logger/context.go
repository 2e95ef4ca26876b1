package logger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"

	_httpStatusClassDiv = 100
)

func (l *ZapLogger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func (l *ZapLogger) GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// Ctx returns a logger tagged with the request id stored in ctx, if any.
func (l *ZapLogger) Ctx(ctx context.Context) Logger {
	requestID := l.GetRequestID(ctx)
	if requestID == "" {
		return l
	}
	return &ZapLogger{logger: l.logger.With(zap.String("request_id", requestID)), level: l.level}
}

func (l *ZapLogger) LogRequest(
	ctx context.Context,
	method, path string,
	status int,
	duration time.Duration,
) {
	l.Ctx(ctx).Infow("request",
		"method", method,
		"path", path,
		"status", status,
		"duration", duration.String(),
		"status_class", status/_httpStatusClassDiv,
	)
}

func (l *ZapLogger) GenerateRequestID() string {
	return uuid.New().String()
}
