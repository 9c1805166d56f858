package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brightpaws/frontdesk/internal/api/router"
	"github.com/brightpaws/frontdesk/internal/availability"
	"github.com/brightpaws/frontdesk/internal/booking"
	appconfig "github.com/brightpaws/frontdesk/internal/config"
	"github.com/brightpaws/frontdesk/internal/http/handlers"
	"github.com/brightpaws/frontdesk/internal/observability/metrics"
	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking widget server",
		"env", cfg.Env,
		"port", cfg.WidgetPort,
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	apiMetrics := metrics.NewAPIMetrics(registry)

	client := petcare.NewClient(cfg.APIBaseURL, cfg.APIVersion,
		petcare.WithLogger(logger.Component("petcare")),
		petcare.WithMetrics(apiMetrics),
		petcare.WithTimeout(cfg.RequestTimeout),
	)
	slots := availability.NewQuery(client, logger.Component("availability"))

	flows := handlers.NewFlowStore(func() *booking.Flow {
		return booking.NewFlow(client, slots,
			booking.WithLogger(logger.Component("booking")),
			booking.WithWindowDays(cfg.BookingWindowDays),
		)
	}, 30*time.Minute)

	r := router.NewWidget(&router.WidgetConfig{
		Logger:             logger,
		Widget:             handlers.NewWidgetHandler(flows, logger.Component("widget")),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.WidgetPort,
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
