// Package database provides SQLite connection management and schema
// migrations for the toolkit.
//
// Two kinds of connection exist:
//
//   - Open: the writable audit database owned by the toolkit. WAL mode,
//     busy timeout, foreign keys on, single writer.
//   - OpenReadOnly: a customer's project database. Opened with mode=ro
//     so the toolkit can never mutate a project file.
//
// # Migrations
//
// Migrations apply to the audit database only and are embedded in the
// binary via MigrationsFS. Files follow the naming convention
// YYYYMMDD_HHMMSS_description.up.sql (and optionally .down.sql). Each
// migration runs in its own transaction.
//
// # Usage
//
//	auditDB, err := database.Open(database.Config{
//	    Path:        cfg.Audit.Path,
//	    WALMode:     cfg.Audit.WALMode,
//	    BusyTimeout: cfg.Audit.BusyTimeout,
//	})
//	if err != nil {
//	    return err
//	}
//	defer auditDB.Close()
//
//	if err := auditDB.Migrate(ctx); err != nil {
//	    return err
//	}
package database
