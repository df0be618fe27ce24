// Package requestid carries the per-request correlation ID through
// context.Context so upstream ledger API calls can be traced back to the
// dashboard request that caused them.
package requestid

import "context"

type contextKey struct{}

// Header is the HTTP header the correlation ID travels in.
const Header = "X-Correlation-ID"

// NewContext returns a context carrying the given correlation ID.
func NewContext(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the correlation ID, or "" when none was set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
