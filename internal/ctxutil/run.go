package ctxutil

import "context"

// RunIDKey is the context key for the reconciliation run ID.
type RunIDKey struct{}

// WithRunID returns a context carrying the ID of the reconciliation run the
// current writes belong to.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey{}, runID)
}

// RunIDFromContext returns the run ID from context, or empty string if not set.
func RunIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RunIDKey{}).(string); ok {
		return v
	}
	return ""
}
