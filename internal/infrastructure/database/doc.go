// Package database provides SQLite connectivity for the solwatch sample store.
//
// This package manages:
//   - Database connection with WAL mode for single-writer/multi-reader access
//   - Schema migrations (additive-only, embedded in the binary)
//   - Health checks and lifecycle management
//
// Concurrency Model:
//
// The collector process is the only writer; the report process only reads.
// WAL mode guarantees a report run sees a consistent snapshot of the sample
// log without blocking concurrent appends, and the busy timeout absorbs the
// rare lock handover.
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
package database
