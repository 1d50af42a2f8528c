package logger

import (
	"fmt"

	fluentlogger "github.com/yuriynekrasov/hizzle/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// SetupConfig описывает, какие логгеры поднимает сервис.
type SetupConfig struct {
	AppName     string
	StdoutLevel string

	FluentEnabled bool
	FluentHost    string
	FluentPort    int
	FluentLevel   string
	FluentAsync   bool
}

// Setup создает stdout-логгер и, если включено, логгер Fluent Bit,
// объединяет их и добавляет поле service_name.
// Возвращенный клиент Fluent (может быть nil) закрывает вызывающий код.
func Setup(cfg SetupConfig) (LoggerPort, *fluent.Fluent, error) {
	activeLoggers := []LoggerPort{
		NewSlogAdapter(SlogConfig{
			Level:    ParseLevel(cfg.StdoutLevel),
			UseColor: true,
		}),
	}
	stdoutLogger := activeLoggers[0]

	var fluentClient *fluent.Fluent
	if cfg.FluentEnabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:    cfg.FluentHost,
			Port:    cfg.FluentPort,
			Service: cfg.AppName,
			Async:   cfg.FluentAsync,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := NewFluentLoggerAdapter(fluentClient, ParseLevel(cfg.FluentLevel))
		if err != nil {
			fluentClient.Close()
			return nil, nil, fmt.Errorf("failed to create fluentbit adapter: %w", err)
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(Fields{"service_name": cfg.AppName})
	baseLogger.Debug("Logger system initialized", Fields{
		"active_loggers": len(activeLoggers),
		"fluent_enabled": cfg.FluentEnabled,
	})
	return baseLogger, fluentClient, nil
}
