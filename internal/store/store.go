// Package store defines the persistence interface for validation-run
// history. History is what lets repeated runs against the same PR skip
// comments that were already published.
package store

import (
	"context"
	"time"
)

// Store is the persistence layer for runs, published comments, and
// skip records.
type Store interface {
	// Run management
	CreateRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, runID string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Published-comment history, keyed by issue fingerprint
	SavePublishedComments(ctx context.Context, comments []PublishedComment) error
	PublishedFingerprints(ctx context.Context, repository string, pullNumber int) (map[string]bool, error)

	// Skip records
	SaveSkips(ctx context.Context, runID string, skips []SkipRecord) error
	GetSkipsByRun(ctx context.Context, runID string) ([]SkipRecord, error)

	Close() error
}

// Run is one validation run against a PR head commit.
type Run struct {
	RunID      string
	Timestamp  time.Time
	Repository string
	PullNumber int
	CommitSHA  string

	AcceptedCount  int
	SkippedCount   int
	DuplicateCount int
}

// PublishedComment records one inline comment that made it to the
// hosting service, so subsequent runs can deduplicate against it.
type PublishedComment struct {
	Fingerprint string
	Repository  string
	PullNumber  int
	Path        string
	Line        int
	RunID       string
}

// SkipRecord is the persisted form of one skip-report entry.
type SkipRecord struct {
	RunID       string
	File        string
	Line        int
	Reason      string
	ValidRanges string // human-readable "[a,b], [c,d]" form
	Body        string
}
