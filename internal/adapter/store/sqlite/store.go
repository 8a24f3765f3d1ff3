// Package sqlite implements the store.Store interface using SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bkyoung/linegate/internal/store"
)

// Store implements store.Store backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite store at the given path.
// Use ":memory:" for an in-memory database in tests.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		repository TEXT NOT NULL,
		pull_number INTEGER NOT NULL,
		commit_sha TEXT NOT NULL,
		accepted_count INTEGER NOT NULL DEFAULT 0,
		skipped_count INTEGER NOT NULL DEFAULT 0,
		duplicate_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS published_comments (
		fingerprint TEXT NOT NULL,
		repository TEXT NOT NULL,
		pull_number INTEGER NOT NULL,
		path TEXT NOT NULL,
		line INTEGER NOT NULL,
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		PRIMARY KEY (fingerprint, repository, pull_number)
	);

	CREATE TABLE IF NOT EXISTS skips (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		reason TEXT NOT NULL,
		valid_ranges TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_published_pr
		ON published_comments(repository, pull_number);
	CREATE INDEX IF NOT EXISTS idx_skips_run ON skips(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateRun inserts a run record.
func (s *Store) CreateRun(ctx context.Context, run store.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, timestamp, repository, pull_number, commit_sha,
			accepted_count, skipped_count, duplicate_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Timestamp.Unix(), run.Repository, run.PullNumber,
		run.CommitSHA, run.AcceptedCount, run.SkippedCount, run.DuplicateCount,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(ctx context.Context, runID string) (store.Run, error) {
	var run store.Run
	var ts int64
	err := s.db.QueryRowContext(ctx, `
		SELECT run_id, timestamp, repository, pull_number, commit_sha,
			accepted_count, skipped_count, duplicate_count
		FROM runs WHERE run_id = ?`, runID,
	).Scan(&run.RunID, &ts, &run.Repository, &run.PullNumber, &run.CommitSHA,
		&run.AcceptedCount, &run.SkippedCount, &run.DuplicateCount)
	if err != nil {
		return store.Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	run.Timestamp = time.Unix(ts, 0).UTC()
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, timestamp, repository, pull_number, commit_sha,
			accepted_count, skipped_count, duplicate_count
		FROM runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var run store.Run
		var ts int64
		if err := rows.Scan(&run.RunID, &ts, &run.Repository, &run.PullNumber,
			&run.CommitSHA, &run.AcceptedCount, &run.SkippedCount, &run.DuplicateCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp = time.Unix(ts, 0).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SavePublishedComments records comments that were actually submitted.
// Re-recording the same fingerprint for the same PR is a no-op.
func (s *Store) SavePublishedComments(ctx context.Context, comments []store.PublishedComment) error {
	if len(comments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO published_comments
			(fingerprint, repository, pull_number, path, line, run_id)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range comments {
		if _, err := stmt.ExecContext(ctx, c.Fingerprint, c.Repository,
			c.PullNumber, c.Path, c.Line, c.RunID); err != nil {
			return fmt.Errorf("insert published comment: %w", err)
		}
	}
	return tx.Commit()
}

// PublishedFingerprints returns every fingerprint already published for
// the given PR, as a set for O(1) lookup.
func (s *Store) PublishedFingerprints(ctx context.Context, repository string, pullNumber int) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT fingerprint FROM published_comments
		WHERE repository = ? AND pull_number = ?`, repository, pullNumber)
	if err != nil {
		return nil, fmt.Errorf("query fingerprints: %w", err)
	}
	defer rows.Close()

	fingerprints := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		fingerprints[fp] = true
	}
	return fingerprints, rows.Err()
}

// SaveSkips persists a run's skip-report entries.
func (s *Store) SaveSkips(ctx context.Context, runID string, skips []store.SkipRecord) error {
	if len(skips) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO skips (run_id, file, line, reason, valid_ranges, body)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, skip := range skips {
		if _, err := stmt.ExecContext(ctx, runID, skip.File, skip.Line,
			skip.Reason, skip.ValidRanges, skip.Body); err != nil {
			return fmt.Errorf("insert skip: %w", err)
		}
	}
	return tx.Commit()
}

// GetSkipsByRun returns a run's skip records in insertion order.
func (s *Store) GetSkipsByRun(ctx context.Context, runID string) ([]store.SkipRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, file, line, reason, valid_ranges, body
		FROM skips WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query skips: %w", err)
	}
	defer rows.Close()

	var skips []store.SkipRecord
	for rows.Next() {
		var sk store.SkipRecord
		if err := rows.Scan(&sk.RunID, &sk.File, &sk.Line, &sk.Reason,
			&sk.ValidRanges, &sk.Body); err != nil {
			return nil, fmt.Errorf("scan skip: %w", err)
		}
		skips = append(skips, sk)
	}
	return skips, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
