// Package config loads and validates configuration for the Delve services.
//
// Values come from environment variables. A .env file, when present, fills
// in anything the environment leaves unset:
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP port, timeouts, CORS origins
//   - DatabaseConfig: SurrealDB connection settings
//   - IntegrityConfig: scheduled reference audit and admin token
//   - RateLimitConfig: per-client token bucket
//   - IdempotencyConfig: Idempotency-Key replay window
//
// # Environment Variables
//
//	SERVER_PORT               - HTTP server port (default: 8080)
//	SERVER_ENV                - development, production or test
//	DB_HOST, DB_PORT          - SurrealDB address (default: localhost:8000)
//	DB_NAMESPACE, DB_DATABASE - default: delve / catalog
//	INTEGRITY_AUDIT_INTERVAL  - audit period, 0 disables (default: 1h)
//	INTEGRITY_REPAIR          - repair drift found by scheduled audits
//	ADMIN_TOKEN               - bearer token for /v1/admin routes
//	RATE_LIMIT_RATE           - requests per window (default: 100)
//	IDEMPOTENCY_TTL           - replay window (default: 24h)
//
// Unparseable numeric, duration and boolean values fall back to their defaults.
package config
