package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/brightpaws/frontdesk/internal/api/router"
	"github.com/brightpaws/frontdesk/internal/appointments"
	"github.com/brightpaws/frontdesk/internal/availability"
	appconfig "github.com/brightpaws/frontdesk/internal/config"
	"github.com/brightpaws/frontdesk/internal/http/handlers"
	"github.com/brightpaws/frontdesk/internal/observability/metrics"
	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/internal/session"
	"github.com/brightpaws/frontdesk/internal/staff"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting staff dashboard server",
		"env", cfg.Env,
		"port", cfg.DashboardPort,
	)

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	apiMetrics := metrics.NewAPIMetrics(registry)
	transitionMetrics := metrics.NewTransitionMetrics(registry)

	sessions := session.NewStore(rdb, cfg.SessionTTL, logger.Component("session"))
	tokens := session.NewContextSource(sessions, logger.Component("session"))

	client := petcare.NewClient(cfg.APIBaseURL, cfg.APIVersion,
		petcare.WithLogger(logger.Component("petcare")),
		petcare.WithTokenSource(tokens),
		petcare.WithMetrics(apiMetrics),
		petcare.WithTimeout(cfg.RequestTimeout),
	)

	staffService := staff.NewService(client, logger.Component("staff"))
	transitioner := appointments.NewTransitioner(client, logger.Component("appointments"), transitionMetrics)
	slots := availability.NewQuery(client, logger.Component("availability"))

	r := router.NewDashboard(&router.DashboardConfig{
		Logger:             logger,
		Auth:               handlers.NewAuthHandler(sessions, cfg.SessionCookie, cfg.SessionTTL, logger.Component("auth")),
		Dashboard:          handlers.NewDashboardHandler(staffService, transitioner, slots, client, logger.Component("dashboard")),
		Sessions:           sessions,
		SessionCookie:      cfg.SessionCookie,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.DashboardPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
