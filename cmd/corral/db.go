package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"corral/pkg/runstore"

	_ "modernc.org/sqlite"
)

// openDB opens a SQLite database at path and enforces production-safe
// defaults: WAL journal mode and a 5-second busy timeout. It also calls
// db.PingContext to verify the connection is usable before returning.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode on %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout on %s: %w", path, err)
	}

	return db, nil
}

// openRunStore opens the run-history store at the resolved DB path,
// creating the state directory and schema on first use. The returned
// closer must be called when the store is no longer needed.
func openRunStore() (*runstore.Store, func(), error) {
	paths, err := ResolvePaths()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(paths.CorralHome, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create state dir %s: %w", paths.CorralHome, err)
	}

	db, err := openDB(paths.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.Exec(runstore.SchemaDDL); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("apply schema to %s: %w", paths.DBPath, err)
	}

	return runstore.NewStore(db), func() { _ = db.Close() }, nil
}
