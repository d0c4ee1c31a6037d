package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Integrity   IntegrityConfig
	RateLimit   RateLimitConfig
	Idempotency IdempotencyConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// IntegrityConfig controls the reference integrity audit
type IntegrityConfig struct {
	// AuditInterval is the period of the scheduled audit; zero disables it
	AuditInterval time.Duration
	// Repair applies the repair plan of scheduled audits
	Repair bool
	// AdminToken guards /v1/admin routes; empty disables them
	AdminToken string
}

// RateLimitConfig holds per-client rate limiting settings
type RateLimitConfig struct {
	Rate   int
	Burst  int
	Window time.Duration
}

// IdempotencyConfig holds Idempotency-Key replay settings
type IdempotencyConfig struct {
	TTL     time.Duration
	Cleanup time.Duration
}

// env resolves variables from the process environment first, then from
// values read out of .env files.
type env struct {
	file map[string]string
}

// Load reads configuration from environment variables with sensible
// defaults. Files (default ".env") are read when present; real environment
// variables take precedence over them.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	e := env{file: map[string]string{}}
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range values {
			if _, ok := e.file[k]; !ok {
				e.file[k] = v
			}
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           e.get("SERVER_PORT", "8080"),
			Env:            e.get("SERVER_ENV", "development"),
			ReadTimeout:    e.getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   e.getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: e.getSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:      e.get("DB_HOST", "localhost"),
			Port:      e.get("DB_PORT", "8000"),
			Namespace: e.get("DB_NAMESPACE", "delve"),
			Database:  e.get("DB_DATABASE", "catalog"),
			User:      e.get("DB_USER", "root"),
			Password:  e.get("DB_PASSWORD", "root"),
		},
		Integrity: IntegrityConfig{
			AuditInterval: e.getDuration("INTEGRITY_AUDIT_INTERVAL", time.Hour),
			Repair:        e.getBool("INTEGRITY_REPAIR", false),
			AdminToken:    e.get("ADMIN_TOKEN", ""),
		},
		RateLimit: RateLimitConfig{
			Rate:   e.getInt("RATE_LIMIT_RATE", 100),
			Burst:  e.getInt("RATE_LIMIT_BURST", 20),
			Window: e.getDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Idempotency: IdempotencyConfig{
			TTL:     e.getDuration("IDEMPOTENCY_TTL", 24*time.Hour),
			Cleanup: e.getDuration("IDEMPOTENCY_CLEANUP", time.Hour),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	if c.Integrity.AuditInterval < 0 {
		errs = append(errs, errors.New("INTEGRITY_AUDIT_INTERVAL cannot be negative"))
	} else if c.Integrity.AuditInterval > 0 && c.Integrity.AuditInterval < time.Minute {
		errs = append(errs, errors.New("INTEGRITY_AUDIT_INTERVAL must be at least 1m"))
	}
	if c.IsProduction() && c.Integrity.AdminToken != "" && len(c.Integrity.AdminToken) < 16 {
		errs = append(errs, errors.New("ADMIN_TOKEN must be at least 16 characters in production"))
	}

	if c.RateLimit.Rate <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RATE must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}

	if c.Idempotency.TTL <= 0 {
		errs = append(errs, errors.New("IDEMPOTENCY_TTL must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (e env) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return e.file[key]
}

func (e env) get(key, defaultValue string) string {
	if value := e.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

func (e env) getInt(key string, defaultValue int) int {
	if value := e.lookup(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func (e env) getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := e.lookup(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func (e env) getSlice(key string, defaultValue []string) []string {
	if value := e.lookup(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func (e env) getBool(key string, defaultValue bool) bool {
	if value := e.lookup(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
