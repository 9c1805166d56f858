package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpaws/frontdesk/internal/session"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// AuthHandler exchanges an API access token for a dashboard session cookie.
// The token itself never reaches the browser; only the opaque session id
// does.
type AuthHandler struct {
	store      *session.Store
	cookieName string
	ttl        time.Duration
	logger     *logging.Logger
}

// NewAuthHandler creates the session endpoints.
func NewAuthHandler(store *session.Store, cookieName string, ttl time.Duration, logger *logging.Logger) *AuthHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthHandler{store: store, cookieName: cookieName, ttl: ttl, logger: logger}
}

// Routes mounts the auth endpoints.
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	return r
}

// Login stores the supplied access token and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeJSON(r, &body); err != nil || body.AccessToken == "" {
		writeError(w, http.StatusBadRequest, "access_token is required")
		return
	}
	sessionID, err := h.store.Create(r.Context(), body.AccessToken)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": sessionID})
}

// Logout clears the session on both sides.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err == nil && cookie.Value != "" {
		if err := h.store.Delete(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("session delete failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
