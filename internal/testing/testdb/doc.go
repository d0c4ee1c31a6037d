// Package testdb manages SurrealDB connections for e2e tests.
//
// # Isolation
//
// Each New call connects to a fresh namespace and applies the embedded
// migrations. Close removes the namespace.
//
// # Configuration
//
// TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and TEST_DB_PASSWORD select the
// instance (default localhost:8000, root/root). Tests skip when it cannot
// be reached or when run with -short.
package testdb
