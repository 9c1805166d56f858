package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpaws/frontdesk/internal/session"
)

type fakeLookup struct {
	tokens map[string]string
}

func (f *fakeLookup) Lookup(_ context.Context, sessionID string) (string, error) {
	token, ok := f.tokens[sessionID]
	if !ok {
		return "", session.ErrNotFound
	}
	return token, nil
}

func TestStaffSessionAttachesCredential(t *testing.T) {
	store := &fakeLookup{tokens: map[string]string{"sess-1": "tok-abc"}}
	var got session.Credential
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cred, ok := session.FromContext(r.Context())
		require.True(t, ok)
		got = cred
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/staff/appointments", nil)
	req.AddCookie(&http.Cookie{Name: "fd_session", Value: "sess-1"})
	rec := httptest.NewRecorder()

	StaffSession(store, "fd_session", nil)(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, "tok-abc", got.AccessToken)
}

func TestStaffSessionRejectsMissingCookie(t *testing.T) {
	store := &fakeLookup{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/staff/appointments", nil)
	rec := httptest.NewRecorder()

	StaffSession(store, "fd_session", nil)(handler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffSessionRejectsUnknownSession(t *testing.T) {
	store := &fakeLookup{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/staff/appointments", nil)
	req.AddCookie(&http.Cookie{Name: "fd_session", Value: "sess-gone"})
	rec := httptest.NewRecorder()

	StaffSession(store, "fd_session", nil)(handler).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
