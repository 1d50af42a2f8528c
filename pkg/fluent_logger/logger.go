package fluentlogger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const (
	// TagNamespace - общий корень тегов: hizzle.<service>.<level>
	TagNamespace = "hizzle"

	defaultPort        = 24224
	defaultBufferLimit = 8 * 1024 * 1024
	defaultMaxRetry    = 5
)

// Config хранит конфигурацию для подключения к Fluent Bit.
type Config struct {
	Host    string // Например, "127.0.0.1" или "fluent-bit" в Docker
	Port    int    // 0 - порт forward-протокола по умолчанию
	Service string // имя сервиса, становится вторым сегментом тега

	// Async - не блокировать вызывающий код на отправке записи.
	// При Close недоставленные записи отбрасываются.
	Async bool
	// RequestAck - ждать подтверждения каждого чанка от Fluent Bit.
	RequestAck bool
	// BufferLimit в байтах; 0 - 8 МиБ.
	BufferLimit int
	MaxRetry    int
}

// TagPrefix возвращает префикс тегов сервиса.
func TagPrefix(service string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(service))
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" {
		return "", fmt.Errorf("fluentd service name is required")
	}
	// точка в теге - разделитель маршрутизации Fluent Bit
	if strings.Contains(name, ".") {
		return "", fmt.Errorf("fluentd service name '%s' must not contain dots", service)
	}
	return TagNamespace + "." + name, nil
}

func (c Config) fluentConfig() (fluent.Config, error) {
	if c.Host == "" {
		return fluent.Config{}, fmt.Errorf("fluentd host is required")
	}
	prefix, err := TagPrefix(c.Service)
	if err != nil {
		return fluent.Config{}, err
	}

	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	if port < 0 || port > 65535 {
		return fluent.Config{}, fmt.Errorf("fluentd port %d is out of range", c.Port)
	}

	bufferLimit := c.BufferLimit
	if bufferLimit <= 0 {
		bufferLimit = defaultBufferLimit
	}
	maxRetry := c.MaxRetry
	if maxRetry <= 0 {
		maxRetry = defaultMaxRetry
	}

	return fluent.Config{
		FluentHost:         c.Host,
		FluentPort:         port,
		TagPrefix:          prefix,
		Async:              c.Async,
		ForceStopAsyncSend: c.Async,
		RequestAck:         c.RequestAck,
		BufferLimit:        bufferLimit,
		MaxRetry:           maxRetry,
		SubSecondPrecision: true,
		Timeout:            3 * time.Second,
		WriteTimeout:       3 * time.Second,
	}, nil
}

// NewClient создает клиент Fluent Bit с тегами hizzle.<service>.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	fc, err := cfg.fluentConfig()
	if err != nil {
		return nil, err
	}

	logger, err := fluent.New(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	// Пинга нет: успешное создание клиента не гарантирует соединение,
	// ошибки появятся при первой отправке записи.
	return logger, nil
}
