package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Store manages the runs and assignments tables in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store backed by the given SQLite database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Run is one saved clustering run.
type Run struct {
	ID         string
	CorpusPath string
	Documents  int
	Vocabulary int
	Skipped    int
	K          int
	Seed       int64
	Iterations int
	Converged  bool
	CreatedAt  string
}

// Assignment is one document's cluster label within a run.
type Assignment struct {
	DocID string
	Title string
	Label int
}

// SaveParams holds everything recorded for a run. Documents is derived
// from the assignment list.
type SaveParams struct {
	CorpusPath  string
	Vocabulary  int
	Skipped     int
	K           int
	Seed        int64
	Iterations  int
	Converged   bool
	Assignments []Assignment
}

// RunNotFoundError reports a lookup for a run id that was never saved.
type RunNotFoundError struct {
	ID string
}

func (e *RunNotFoundError) Error() string {
	return fmt.Sprintf("run %s not found", e.ID)
}

// SaveRun records a run and its assignments in one transaction and
// returns the generated run id.
func (s *Store) SaveRun(ctx context.Context, p SaveParams) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, corpus_path, documents, vocabulary, skipped, k, seed, iterations, converged)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.CorpusPath, len(p.Assignments), p.Vocabulary, p.Skipped,
		p.K, p.Seed, p.Iterations, p.Converged,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for _, a := range p.Assignments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO assignments (run_id, doc_id, title, label) VALUES (?, ?, ?, ?)`,
			id, a.DocID, a.Title, a.Label,
		)
		if err != nil {
			return "", fmt.Errorf("insert assignment %s: %w", a.DocID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save run: %w", err)
	}
	return id, nil
}

// ListRuns returns runs newest first. A non-positive limit means 20.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, corpus_path, documents, vocabulary, skipped, k, seed, iterations, converged, created_at
		 FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.CorpusPath, &r.Documents, &r.Vocabulary, &r.Skipped,
			&r.K, &r.Seed, &r.Iterations, &r.Converged, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by id, failing with RunNotFoundError when the
// id was never saved.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, corpus_path, documents, vocabulary, skipped, k, seed, iterations, converged, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.CorpusPath, &r.Documents, &r.Vocabulary, &r.Skipped,
			&r.K, &r.Seed, &r.Iterations, &r.Converged, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &RunNotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &r, nil
}

// Assignments returns a run's document labels ordered by label, then
// document id.
func (s *Store) Assignments(ctx context.Context, runID string) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, COALESCE(title, ''), label FROM assignments
		 WHERE run_id = ? ORDER BY label, doc_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.DocID, &a.Title, &a.Label); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return out, nil
}
