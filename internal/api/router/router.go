// Package router assembles the chi routers for the two frontdesk servers:
// the public booking widget and the session-guarded staff dashboard.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brightpaws/frontdesk/internal/http/handlers"
	httpmiddleware "github.com/brightpaws/frontdesk/internal/http/middleware"
	"github.com/brightpaws/frontdesk/internal/session"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// WidgetConfig holds the booking-widget router configuration.
type WidgetConfig struct {
	Logger             *logging.Logger
	Widget             *handlers.WidgetHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// NewWidget creates the public booking-widget router. Everything on it is
// anonymous; no staff credential exists on this surface.
func NewWidget(cfg *WidgetConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/healthz", healthz)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Mount("/api/widget", cfg.Widget.Routes())

	return r
}

// DashboardConfig holds the staff-dashboard router configuration.
type DashboardConfig struct {
	Logger             *logging.Logger
	Auth               *handlers.AuthHandler
	Dashboard          *handlers.DashboardHandler
	Sessions           *session.Store
	SessionCookie      string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// NewDashboard creates the staff-dashboard router. The auth endpoints are
// public; everything under /api/staff requires a valid session cookie.
func NewDashboard(cfg *DashboardConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/healthz", healthz)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Mount("/auth", cfg.Auth.Routes())

	r.Group(func(guarded chi.Router) {
		guarded.Use(httpmiddleware.StaffSession(cfg.Sessions, cfg.SessionCookie, cfg.Logger))
		guarded.Mount("/api/staff", cfg.Dashboard.Routes())
	})

	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
