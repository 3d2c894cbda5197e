// Package sqlite provides the SQLite implementation of driven.TaskStore and
// the process-wide store handle.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Handle
//
// Handle opens the database on first use (Acquire) and keeps it until
// Release. Handle.TaskStore returns a store that acquires before every
// operation, so callers never see an unopened database.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory and recorded in schema_migrations. Applying them is
// idempotent.
//
// # Data Location
//
// By default, the database is stored at ./data/database.db relative to the
// working directory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Concurrent updates of one task are last-writer-wins.
package sqlite
