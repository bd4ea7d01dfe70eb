package middleware

import (
	"context"

	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession injects the session context into the request context.
func WithSession(ctx context.Context, session *domain.SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext returns the session context, or nil when no session is
// active.
func SessionFromContext(ctx context.Context) *domain.SessionContext {
	v := ctx.Value(sessionContextKey)
	if v == nil {
		return nil
	}
	s, _ := v.(*domain.SessionContext)
	return s
}
