package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr     = ":8080"
	defaultDatabaseURL  = "workspace.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"

	defaultMaxBookingDaysAhead      = 3
	defaultCooldownWindowMinutes    = 30
	defaultCancellationMinutes      = 15
	defaultMaxCancellationsPerMonth = 5

	// +05:30, the offset the booking rules were written for.
	defaultTZOffsetMinutes = 330
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	MaxBookingDaysAhead      int
	CooldownWindow           time.Duration
	CancellationLead         time.Duration
	MaxCancellationsPerMonth int

	// BookingLocation is the single canonical offset used for every
	// day/month boundary check, applied to both "now" and stored times.
	BookingLocation *time.Location
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = getEnv("HTTP_ADDR", defaultHTTPAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.MaxBookingDaysAhead, err = parseIntEnv("MAX_BOOKING_DAYS_AHEAD", defaultMaxBookingDaysAhead)
	if err != nil {
		return nil, err
	}

	cooldownMin, err := parseIntEnv("COOLDOWN_WINDOW_MINUTES", defaultCooldownWindowMinutes)
	if err != nil {
		return nil, err
	}
	cfg.CooldownWindow = time.Duration(cooldownMin) * time.Minute

	cancelMin, err := parseIntEnv("CANCELLATION_MINUTES_BEFORE", defaultCancellationMinutes)
	if err != nil {
		return nil, err
	}
	cfg.CancellationLead = time.Duration(cancelMin) * time.Minute

	cfg.MaxCancellationsPerMonth, err = parseIntEnv("MAX_CANCELLATIONS_PER_MONTH", defaultMaxCancellationsPerMonth)
	if err != nil {
		return nil, err
	}

	offsetMin, err := parseIntEnv("BOOKING_TZ_OFFSET_MINUTES", defaultTZOffsetMinutes)
	if err != nil {
		return nil, err
	}
	cfg.BookingLocation = FixedOffset(offsetMin)

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

// FixedOffset builds the canonical booking zone from an offset in minutes.
func FixedOffset(minutes int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+03d:%02d", minutes/60, abs(minutes%60)), minutes*60)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := strings.TrimSpace(getEnv(key, fallback))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
