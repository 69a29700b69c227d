package middleware

import "context"

type ctxKey string

const userKey ctxKey = "user"

// WithUserID returns a context carrying the caller's user id.
//
// The service issues no sessions or tokens: clients present their user_id
// directly and are trusted to do so honestly. Handlers route that claimed
// identity through this context so a real session scheme can replace it
// without touching the operations themselves.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// UserIDFromContext extracts the caller's user id from the request context.
// Returns 0 if not found.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userKey).(int64); ok {
		return id
	}
	return 0
}
