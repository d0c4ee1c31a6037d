// Package middleware provides HTTP middleware for the catalog API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: one structured slog line per request
//   - Recovery: turns panics into a 500 problem response
//   - CORS: origin allow-list
//   - RateLimit: token bucket per client IP
//   - Idempotency: replays responses for retried mutations (Idempotency-Key)
//   - Compress: gzip responses
//   - AdminToken: bearer token guard for /v1/admin routes
//
// # Usage
//
//	wrapped := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.Recovery,
//	)
package middleware
