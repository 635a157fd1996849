// Package runstore persists clustering run history in SQLite: one row of
// run metadata plus the per-document cluster assignments. Vocabularies
// and vectors are recomputed from the corpus on every run and are never
// stored.
package runstore

// SchemaDDL defines the SQLite schema for the corral run-history database.
// Tables: runs, assignments. Execute against a SQLite database with:
// db.Exec(SchemaDDL)
const SchemaDDL = `
-- One row per clustering run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    corpus_path TEXT NOT NULL,
    documents INTEGER NOT NULL,
    vocabulary INTEGER NOT NULL,
    skipped INTEGER NOT NULL DEFAULT 0,
    k INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    iterations INTEGER NOT NULL,
    converged INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Per-document cluster assignment for a run
CREATE TABLE IF NOT EXISTS assignments (
    run_id TEXT NOT NULL,
    doc_id TEXT NOT NULL,
    title TEXT,
    label INTEGER NOT NULL,
    PRIMARY KEY (run_id, doc_id)
);

CREATE INDEX IF NOT EXISTS assignments_run_label ON assignments(run_id, label);
`
