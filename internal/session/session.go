// Package session manages the staff session credential. The credential
// travels explicitly on the request context rather than in package-level
// state, and exactly one code path (the API client's unauthorized handler,
// via ContextSource.Invalidate) ever clears it.
package session

import (
	"context"
	"errors"
)

var (
	// ErrNoCredential indicates the context carries no session credential.
	ErrNoCredential = errors.New("session: no credential in context")
	// ErrExpired indicates the credential's token has passed its expiry.
	ErrExpired = errors.New("session: credential expired")
	// ErrNotFound indicates the session id has no stored token.
	ErrNotFound = errors.New("session: not found")
)

// Credential identifies one staff session and its API access token.
type Credential struct {
	SessionID   string
	AccessToken string
}

type ctxKey string

const credentialKey ctxKey = "frontdesk.session"

// WithCredential stores the credential in context.
func WithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, credentialKey, cred)
}

// FromContext extracts the credential if present.
func FromContext(ctx context.Context) (Credential, bool) {
	val := ctx.Value(credentialKey)
	if val == nil {
		return Credential{}, false
	}
	cred, ok := val.(Credential)
	return cred, ok && cred.AccessToken != ""
}
