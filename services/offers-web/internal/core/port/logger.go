package port

import "github.com/yuriynekrasov/hizzle/pkg/logger"

type (
	Fields     = logger.Fields
	LoggerPort = logger.LoggerPort
)
