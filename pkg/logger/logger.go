package logger

import (
	"context"
	"time"
)

type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)

	Ctx(ctx context.Context) Logger
	With(keysAndValues ...any) Logger

	GenerateRequestID() string
	GetRequestID(ctx context.Context) string
	WithRequestID(ctx context.Context, requestID string) context.Context
	LogRequest(ctx context.Context, method, path string, status int, duration time.Duration)

	Sync() error
}
