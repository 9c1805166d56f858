package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brightpaws/frontdesk/pkg/logging"
)

// ContextSource resolves the API token from the request context. It drops
// credentials whose JWT expiry has already passed before any request is
// attempted, and clears the stored session when the API rejects a token.
// It satisfies the petcare client's TokenSource.
type ContextSource struct {
	store  *Store
	logger *logging.Logger
	now    func() time.Time
}

// NewContextSource creates a token source backed by the given store.
func NewContextSource(store *Store, logger *logging.Logger) *ContextSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContextSource{store: store, logger: logger, now: time.Now}
}

// Token returns the access token carried by ctx.
func (s *ContextSource) Token(ctx context.Context) (string, error) {
	cred, ok := FromContext(ctx)
	if !ok {
		return "", ErrNoCredential
	}
	if tokenExpired(cred.AccessToken, s.now()) {
		if err := s.store.Delete(ctx, cred.SessionID); err != nil {
			s.logger.Warn("failed to drop expired session", "session_id", cred.SessionID, "error", err)
		}
		return "", fmt.Errorf("session %s: %w", cred.SessionID, ErrExpired)
	}
	return cred.AccessToken, nil
}

// Invalidate clears the stored session for the credential in ctx. This is
// the single designated writer for credential removal on API rejection.
func (s *ContextSource) Invalidate(ctx context.Context) error {
	cred, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	return s.store.Delete(ctx, cred.SessionID)
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification belongs to the API. Opaque (non-JWT) tokens are
// passed through untouched.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// StaticToken is a fixed-token source for tools and tests. Invalidate is a
// no-op since there is nothing to clear.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }
func (t StaticToken) Invalidate(context.Context) error      { return nil }
