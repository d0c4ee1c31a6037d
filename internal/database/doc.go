// Package database provides the store abstraction for the Delve catalog.
//
// The Database interface wraps SurrealDB so that repositories only deal with
// SurrealQL strings and variable maps:
//   - Query: Returns every statement result (for SELECT queries returning lists)
//   - QueryOne: Returns the first record of the first statement (for SELECT by ID)
//   - Execute: No return value (for CREATE/UPDATE/DELETE mutations)
//
// # Transactions
//
// Transactions are BATCH-BASED. Statements are collected with AtomicBatch or
// TxBuilder and sent in one request wrapped in BEGIN TRANSACTION / COMMIT
// TRANSACTION, so they succeed or fail together. There is no isolation between
// a read made before the batch and the batch itself.
//
// # Error Handling
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: A record with the same id already exists
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrDuplicate) {
//	    // Handle an existing key
//	}
//
// # Migrations
//
// Schema files live in the top-level migrations directory and are embedded
// into the binaries. Apply them with:
//
//	err := database.Migrate(ctx, db, migrations.FS)
//
// # Record ids
//
// Catalog documents use their domain key as the record id (rooms:3,
// monsters:12, users:⟨rogue@example.com⟩), so SurrealDB rejects a second
// CREATE for the same key with an "already exists" error, reported as
// ErrDuplicate.
package database
