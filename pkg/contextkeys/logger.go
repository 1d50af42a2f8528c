package contextkeys

import (
	"context"

	"github.com/yuriynekrasov/hizzle/pkg/logger"
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// ContextWithLogger помещает логгер в контекст
func ContextWithLogger(ctx context.Context, l logger.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFromContext извлекает логгер из контекста.
// Если логгера нет, возвращается логгер, который ничего не пишет.
func LoggerFromContext(ctx context.Context) logger.LoggerPort {
	if l, ok := ctx.Value(loggerKey).(logger.LoggerPort); ok {
		return l
	}
	return logger.NoopLogger{}
}
