package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_ValidConfig(t *testing.T) {
	assert.NoError(t, validBaseConfig().Validate())
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_ENV")
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}

func TestConfig_Validate_EmptyAllowedOrigins(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.AllowedOrigins = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGINS")
}

func TestConfig_Validate_MissingDatabaseFields(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""
	cfg.Database.Namespace = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAMESPACE")
}

func TestConfig_Validate_AuditInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		wantErr  bool
	}{
		{"disabled", 0, false},
		{"hourly", time.Hour, false},
		{"too frequent", 10 * time.Second, true},
		{"negative", -time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			cfg.Integrity.AuditInterval = tt.interval

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "INTEGRITY_AUDIT_INTERVAL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_ShortAdminTokenInProduction(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "production"
	cfg.Integrity.AdminToken = "short"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_TOKEN")

	cfg.Server.Env = "development"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_RateLimitAndIdempotency(t *testing.T) {
	cfg := validBaseConfig()
	cfg.RateLimit.Rate = 0
	cfg.Idempotency.TTL = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_RATE")
	assert.Contains(t, err.Error(), "IDEMPOTENCY_TTL")
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"SERVER_PORT", "SERVER_ENV", "DB_HOST", "DB_PORT", "RATE_LIMIT_WINDOW"} {
		assert.True(t, strings.Contains(msg, want), "expected error to mention %s", want)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := validBaseConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	if os.Getenv("SERVER_PORT") == "" {
		assert.Equal(t, "8080", cfg.Server.Port)
	}
	if os.Getenv("DB_NAMESPACE") == "" {
		assert.Equal(t, "delve", cfg.Database.Namespace)
	}
	if os.Getenv("INTEGRITY_AUDIT_INTERVAL") == "" {
		assert.Equal(t, time.Hour, cfg.Integrity.AuditInterval)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "DELVE_TEST_UNUSED=1\nRATE_LIMIT_BURST=7\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\nINTEGRITY_REPAIR=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("INTEGRITY_REPAIR", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Integrity.Repair)
}

func TestLoad_EnvironmentOverridesDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=9000\n"), 0o600))

	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_RATE", "lots")
	t.Setenv("IDEMPOTENCY_TTL", "forever")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.RateLimit.Rate)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
}

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "delve",
			Database:  "catalog",
		},
		Integrity: IntegrityConfig{
			AuditInterval: time.Hour,
		},
		RateLimit: RateLimitConfig{
			Rate:   100,
			Burst:  20,
			Window: time.Minute,
		},
		Idempotency: IdempotencyConfig{
			TTL: 24 * time.Hour,
		},
	}
}
