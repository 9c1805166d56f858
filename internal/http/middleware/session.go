package middleware

import (
	"context"
	"net/http"

	"github.com/brightpaws/frontdesk/internal/session"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// SessionLookup resolves a session cookie to its stored access token.
// Satisfied by *session.Store.
type SessionLookup interface {
	Lookup(ctx context.Context, sessionID string) (string, error)
}

// StaffSession authenticates dashboard requests: it reads the session
// cookie, resolves the stored token, and attaches the credential to the
// request context. Requests without a valid session are rejected with 401.
func StaffSession(store SessionLookup, cookieName string, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "session required", http.StatusUnauthorized)
				return
			}
			token, err := store.Lookup(r.Context(), cookie.Value)
			if err != nil {
				logger.Warn("session lookup failed", "error", err)
				http.Error(w, "session invalid or expired", http.StatusUnauthorized)
				return
			}
			ctx := session.WithCredential(r.Context(), session.Credential{
				SessionID:   cookie.Value,
				AccessToken: token,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
