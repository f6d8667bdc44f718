package middleware

import "context"

type contextKey int

const ctxCartSessionID contextKey = iota

func stringFrom(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// CartSessionIDFromContext returns the session resolved by CartSession.
func CartSessionIDFromContext(ctx context.Context) string {
	return stringFrom(ctx, ctxCartSessionID)
}

func WithCartSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartSessionID, sessionID)
}
