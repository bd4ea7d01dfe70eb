package middleware

import (
	"net/http"

	"github.com/rlewis2892/creepy-octo-meow/internal/application/ports"
	"github.com/rlewis2892/creepy-octo-meow/internal/domain"
)

// SessionCookieName holds the opaque session identifier.
const SessionCookieName = "session_id"

// SessionLoader resolves the session cookie against the session store and
// puts a SessionContext in the request context. It never rejects: flows
// authorize against the (possibly nil) session themselves.
type SessionLoader struct {
	store ports.SessionStore
}

func NewSessionLoader(store ports.SessionStore) *SessionLoader {
	return &SessionLoader{store: store}
}

func (m *SessionLoader) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		profileID, ok, err := m.store.Get(r.Context(), cookie.Value)
		if err != nil || !ok {
			next.ServeHTTP(w, r)
			return
		}
		ctx := WithSession(r.Context(), &domain.SessionContext{ProfileID: profileID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
