package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"corral/pkg/runstore"
)

func TestOpenDB_AppliesPragmas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	db, err := openDB(path)
	if err != nil {
		t.Fatalf("openDB() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}

	var timeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&timeout); err != nil {
		t.Fatalf("query busy_timeout: %v", err)
	}
	if timeout != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", timeout)
	}
}

func TestOpenRunStore_CreatesStateDirAndSchema(t *testing.T) {
	home := filepath.Join(t.TempDir(), "corral-home")
	t.Setenv("CORRAL_HOME", home)
	t.Setenv("CORRAL_DB_PATH", "")

	store, closeStore, err := openRunStore()
	if err != nil {
		t.Fatalf("openRunStore() error: %v", err)
	}
	t.Cleanup(closeStore)

	if _, err := os.Stat(filepath.Join(home, "runs.db")); err != nil {
		t.Errorf("runs.db not created under CORRAL_HOME: %v", err)
	}

	// Schema is in place: a save and list roundtrip works.
	ctx := context.Background()
	id, err := store.SaveRun(ctx, runstore.SaveParams{
		CorpusPath: "/data/corpus.jsonl",
		Vocabulary: 4,
		K:          2,
		Seed:       1,
		Iterations: 3,
		Converged:  true,
		Assignments: []runstore.Assignment{
			{DocID: "1", Title: "first", Label: 0},
			{DocID: "2", Title: "second", Label: 1},
		},
	})
	if err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns() error: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != id {
		t.Errorf("ListRuns() = %+v, want one run with id %s", runs, id)
	}
}
