package review

import "context"

// Logger is the narrow structured-logging interface the orchestrator
// needs. The observability package provides the default implementation;
// tests capture output through fakes.
type Logger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

// NopLogger discards everything. Used when callers pass no logger.
type NopLogger struct{}

func (NopLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{})    {}
func (NopLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {}
