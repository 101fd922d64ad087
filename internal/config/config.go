package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"registeruser/internal/pkg/validator"
)

const (
	DriverAppwrite = "appwrite"
	DriverSQL      = "sql"
)

const (
	defaultAddr         = ":8080"
	defaultLogLevel     = "info"
	defaultDriver       = DriverAppwrite
	defaultEndpoint     = "https://tor.cloud.appwrite.io/v1"
	defaultDatabaseID   = "695d1b430005eb249f4b"
	defaultCollectionID = "profiles"
	defaultHTTPTimeout  = "15s"
	defaultDatabaseURL  = "file:registeruser.db?_pragma=foreign_keys(1)"
	defaultOrphanMinAge = "1h"
)

// Backend identifies the identity/document project and the profile target.
type Backend struct {
	Endpoint     string `validate:"required,url"`
	ProjectID    string
	APIKey       string
	DatabaseID   string `validate:"required,max=36"`
	CollectionID string `validate:"required,max=36"`
}

type Config struct {
	AppEnv   string
	Addr     string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`

	Driver      string `validate:"oneof=appwrite sql"`
	Backend     Backend
	DatabaseURL string `validate:"required_if=Driver sql"`
	HTTPTimeout time.Duration

	CompensateOrphans bool
	OrphanMinAge      time.Duration

	InvocationSecret   string
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultAddr))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.Driver = strings.ToLower(strings.TrimSpace(getEnv("BACKEND_DRIVER", defaultDriver)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))

	cfg.Backend = Backend{
		Endpoint:     strings.TrimSpace(getEnv("APPWRITE_ENDPOINT", defaultEndpoint)),
		ProjectID:    strings.TrimSpace(os.Getenv("APPWRITE_FUNCTION_PROJECT_ID")),
		APIKey:       strings.TrimSpace(os.Getenv("APPWRITE_API_KEY")),
		DatabaseID:   strings.TrimSpace(getEnv("APPWRITE_DATABASE_ID", defaultDatabaseID)),
		CollectionID: strings.TrimSpace(getEnv("APPWRITE_COLLECTION_ID", defaultCollectionID)),
	}

	var err error
	cfg.HTTPTimeout, err = parseDurationEnv("BACKEND_HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}
	cfg.OrphanMinAge, err = parseDurationEnv("ORPHAN_MIN_AGE", defaultOrphanMinAge)
	if err != nil {
		return nil, err
	}

	cfg.CompensateOrphans = parseBoolEnv("COMPENSATE_ORPHANS", "false")
	cfg.InvocationSecret = strings.TrimSpace(os.Getenv("INVOCATION_JWT_SECRET"))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if errs := validator.Validate(cfg); errs != nil {
		return fmt.Errorf("invalid config: %v", errs)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("BACKEND_HTTP_TIMEOUT must be > 0")
	}
	if cfg.OrphanMinAge <= 0 {
		return fmt.Errorf("ORPHAN_MIN_AGE must be > 0")
	}

	if cfg.Driver == DriverAppwrite && isProdLike(cfg.AppEnv) {
		if cfg.Backend.ProjectID == "" {
			return fmt.Errorf("in prod/release APPWRITE_FUNCTION_PROJECT_ID must be set")
		}
		if cfg.Backend.APIKey == "" {
			return fmt.Errorf("in prod/release APPWRITE_API_KEY must be set")
		}
	}

	return nil
}

// IsProdLike reports whether the config targets a production environment.
func (c *Config) IsProdLike() bool { return isProdLike(c.AppEnv) }

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
