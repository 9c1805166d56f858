package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// Remote appointment-management API.
	APIBaseURL     string
	APIVersion     string
	RequestTimeout time.Duration

	// Ports for the two HTTP surfaces.
	WidgetPort    string
	DashboardPort string

	// Origins allowed to embed the booking widget.
	CORSAllowedOrigins []string

	// Staff session storage.
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	SessionTTL    time.Duration
	SessionCookie string

	// How many consecutive days the booking wizard offers.
	BookingWindowDays int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		APIBaseURL:         getEnv("PETCARE_API_URL", "http://localhost:5410"),
		APIVersion:         getEnv("PETCARE_API_VERSION", "v1"),
		RequestTimeout:     getEnvAsDuration("PETCARE_REQUEST_TIMEOUT", 15*time.Second),
		WidgetPort:         getEnv("WIDGET_PORT", "8080"),
		DashboardPort:      getEnv("DASHBOARD_PORT", "8081"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", "*"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		SessionCookie:      getEnv("SESSION_COOKIE", "fd_session"),
		BookingWindowDays:  getEnvAsInt("BOOKING_WINDOW_DAYS", 14),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
