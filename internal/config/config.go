package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultIssuer           = "contact-agenda"
	defaultAudience         = "contact-agenda-api"
	defaultAccessTTLMinutes = "15"
	defaultRefreshTTLDays   = "7"
	defaultHTTPAddr         = ":8080"
)

// Config is the process-wide runtime configuration, read once at startup.
type Config struct {
	DatabaseURL string
	HTTPAddr    string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
}

// Load reads configuration from the environment. A missing JWT_SECRET or
// DATABASE_URL is a startup error, not a runtime one.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:    getEnv("HTTP_ADDR", defaultHTTPAddr),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   getEnv("JWT_ISSUER", defaultIssuer),
		JWTAudience: getEnv("JWT_AUDIENCE", defaultAudience),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	accessMinutes, err := parseIntEnv("ACCESS_TOKEN_TTL_MINUTES", defaultAccessTTLMinutes)
	if err != nil {
		return nil, err
	}
	refreshDays, err := parseIntEnv("REFRESH_TOKEN_TTL_DAYS", defaultRefreshTTLDays)
	if err != nil {
		return nil, err
	}
	cfg.AccessTTL = time.Duration(accessMinutes) * time.Minute
	cfg.RefreshTTL = time.Duration(refreshDays) * 24 * time.Hour

	if cfg.AccessTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL_MINUTES must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL_DAYS must be > 0")
	}

	return cfg, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}
