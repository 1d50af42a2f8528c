package constants

import "time"

const (
	TraceIDHeader = "x-trace-id"

	PublishTimeout = 10 * time.Second
)
