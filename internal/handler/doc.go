// Package handler provides the HTTP surface of the Delve catalog.
//
// NewRouter wires every endpoint onto a net/http ServeMux and wraps it in the
// middleware chain (request id, logging, recovery, CORS, rate limit,
// idempotency, compression).
//
// # Handlers
//
//   - CatalogHandler: read-only queries over loot, monsters, users, dungeons and rooms
//   - MutationHandler: creates, reference list replacement, comments and deletes
//   - AdminHandler: integrity audit, guarded by a static admin token
//   - HealthHandler: liveness with a database ping
//
// # Response Format
//
// Reads return the resource as bare JSON. Mutations return the status
// envelope:
//
//	{"status": "success", "message": "Room created", "id": 12}
//
// Error envelopes carry the HTTP status of their cause (404 for unknown ids,
// 422 for invalid input, 409 for a duplicate user). Malformed requests and
// store failures are RFC 9457 Problem Details built by MapServiceError.
package handler
