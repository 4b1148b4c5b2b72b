// Package sqlite persists import and clone run history in a local SQLite
// database (~/.policyctl/data/history.db).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/custodia-labs/policyctl/internal/core/domain"
	"github.com/custodia-labs/policyctl/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunStore = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	mode       TEXT NOT NULL,
	started_at TEXT NOT NULL,
	ended_at   TEXT NOT NULL,
	imported   INTEGER NOT NULL,
	skipped    INTEGER NOT NULL,
	failed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_outcomes (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	name        TEXT NOT NULL,
	policy_type TEXT NOT NULL,
	action      TEXT NOT NULL,
	reason      TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, position)
);
`

// Store is the SQLite-backed run history store.
type Store struct {
	db *sql.DB
}

// NewStore opens (and initialises) the history database at the given
// path, or the default ~/.policyctl/data/history.db when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".policyctl", "data", "history.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialise history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a completed run with its per-document outcomes.
func (s *Store) SaveRun(ctx context.Context, run *domain.ImportRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, mode, started_at, ended_at, imported, skipped, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Mode),
		run.StartedAt.Format(time.RFC3339Nano), run.EndedAt.Format(time.RFC3339Nano),
		run.Imported, run.Skipped, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, outcome := range run.Outcomes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_outcomes (run_id, position, name, policy_type, action, reason, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, outcome.Name, string(outcome.Type), string(outcome.Action),
			outcome.Reason, outcome.Error,
		)
		if err != nil {
			return fmt.Errorf("insert outcome: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns stored runs without their outcomes, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, started_at, ended_at, imported, skipped, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ImportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetRun returns one run with its outcomes.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.ImportRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, mode, started_at, ended_at, imported, skipped, failed
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, policy_type, action, reason, error
		 FROM run_outcomes WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome domain.ImportOutcome
		var policyType, action string
		if err := rows.Scan(&outcome.Name, &policyType, &action, &outcome.Reason, &outcome.Error); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcome.Type = domain.PolicyType(policyType)
		outcome.Action = domain.ImportAction(action)
		run.Outcomes = append(run.Outcomes, outcome)
	}
	return run, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.ImportRun, error) {
	var run domain.ImportRun
	var mode, startedAt, endedAt string
	if err := row.Scan(&run.ID, &mode, &startedAt, &endedAt,
		&run.Imported, &run.Skipped, &run.Failed); err != nil {
		return nil, err
	}

	run.Mode = domain.ImportMode(mode)
	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse run start time: %w", err)
	}
	if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
		return nil, fmt.Errorf("parse run end time: %w", err)
	}
	return &run, nil
}
