// Package logger содержит общий контракт логирования и его адаптеры:
// slog (tint), Fluent Bit и композитный логгер.
package logger

// Fields - тип для передачи структурированных данных в лог.
type Fields map[string]interface{}

// LoggerPort определяет контракт для системы логирования.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error записывает ошибку, обычно вместе с объектом error.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields создает новый экземпляр логгера с уже добавленными полями.
	WithFields(fields Fields) LoggerPort
}

// NoopLogger - реализация LoggerPort, которая ничего не делает.
type NoopLogger struct{}

func (n NoopLogger) Info(msg string, fields Fields)             {}
func (n NoopLogger) Warn(msg string, fields Fields)             {}
func (n NoopLogger) Error(msg string, err error, fields Fields) {}
func (n NoopLogger) Debug(msg string, fields Fields)            {}
func (n NoopLogger) WithFields(fields Fields) LoggerPort        { return n }
