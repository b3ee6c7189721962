package application

import "context"

type contextKey string

const requestIDKey contextKey = "request-id"

// WithRequestID attaches a correlation id to the context. It travels
// explicitly through the workflow, orchestrator and provider-client chain.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the correlation id, or "" when none was set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
