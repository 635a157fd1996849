package main

import (
	"context"
	"strings"
	"testing"

	"corral/pkg/runstore"
)

// seedRun saves a small run and returns its id.
func seedRun(t *testing.T, store *runstore.Store, corpusPath string) string {
	t.Helper()
	id, err := store.SaveRun(context.Background(), runstore.SaveParams{
		CorpusPath: corpusPath,
		Vocabulary: 8,
		K:          2,
		Seed:       1,
		Iterations: 3,
		Converged:  true,
		Assignments: []runstore.Assignment{
			{DocID: "w1", Title: "Wheat outlook", Label: 0},
			{DocID: "w2", Title: "Grain report", Label: 0},
			{DocID: "c1", Title: "Crude update", Label: 1},
		},
	})
	if err != nil {
		t.Fatalf("seed run: %v", err)
	}
	return id
}

func TestRunsListCmd(t *testing.T) {
	t.Run("empty_store", func(t *testing.T) {
		store := newTestRunStore(t)

		cmd := newRunsListCmdWithStore(store)
		var out strings.Builder
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}
		if out.String() != "No runs recorded.\n" {
			t.Errorf("output = %q, want the empty message", out.String())
		}
	})

	t.Run("lists_newest_first", func(t *testing.T) {
		store := newTestRunStore(t)
		first := seedRun(t, store, "/data/a.jsonl")
		second := seedRun(t, store, "/data/b.jsonl")

		cmd := newRunsListCmdWithStore(store)
		var out strings.Builder
		cmd.SetOut(&out)
		cmd.SetArgs([]string{})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}

		output := out.String()
		if !strings.Contains(output, "ID") || !strings.Contains(output, "CORPUS") {
			t.Errorf("expected table header, got:\n%s", output)
		}
		firstIdx := strings.Index(output, first)
		secondIdx := strings.Index(output, second)
		if firstIdx == -1 || secondIdx == -1 {
			t.Fatalf("expected both run ids in output, got:\n%s", output)
		}
		if secondIdx > firstIdx {
			t.Errorf("expected newest run first, got:\n%s", output)
		}
	})

	t.Run("limit_flag", func(t *testing.T) {
		store := newTestRunStore(t)
		seedRun(t, store, "/data/a.jsonl")
		latest := seedRun(t, store, "/data/b.jsonl")

		cmd := newRunsListCmdWithStore(store)
		var out strings.Builder
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--limit", "1"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}

		output := out.String()
		if !strings.Contains(output, latest) {
			t.Errorf("expected the latest run, got:\n%s", output)
		}
		lines := strings.Count(strings.TrimSpace(output), "\n")
		if lines != 1 { // header + one data row
			t.Errorf("expected one data row, got:\n%s", output)
		}
	})
}

func TestRunsShowCmd(t *testing.T) {
	t.Run("shows_parameters_and_assignments", func(t *testing.T) {
		store := newTestRunStore(t)
		id := seedRun(t, store, "/data/a.jsonl")

		cmd := newRunsShowCmdWithStore(store)
		var out strings.Builder
		cmd.SetOut(&out)
		cmd.SetArgs([]string{id})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}

		output := out.String()
		for _, needle := range []string{
			"Run " + id,
			"corpus     /data/a.jsonl",
			"k=2 seed=1 iterations=3 converged=true",
			"Cluster 0",
			"Cluster 1",
			"Wheat outlook",
			"Crude update",
		} {
			if !strings.Contains(output, needle) {
				t.Errorf("expected output to contain %q, got:\n%s", needle, output)
			}
		}

		// Cluster 0 members come before cluster 1 members.
		if strings.Index(output, "w2") > strings.Index(output, "c1") {
			t.Errorf("assignments out of label order:\n%s", output)
		}
	})

	t.Run("unknown_run", func(t *testing.T) {
		store := newTestRunStore(t)

		cmd := newRunsShowCmdWithStore(store)
		cmd.SetOut(&strings.Builder{})
		cmd.SetErr(&strings.Builder{})
		cmd.SetArgs([]string{"no-such-id"})
		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for unknown run id")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("error = %q, want a not-found message", err)
		}
	})

	t.Run("requires_id_argument", func(t *testing.T) {
		store := newTestRunStore(t)

		cmd := newRunsShowCmdWithStore(store)
		cmd.SetOut(&strings.Builder{})
		cmd.SetErr(&strings.Builder{})
		cmd.SetArgs([]string{})
		if err := cmd.Execute(); err == nil {
			t.Fatal("expected error without a run id")
		}
	})
}
