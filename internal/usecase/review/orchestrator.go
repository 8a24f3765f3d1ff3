package review

import (
	"context"
	"fmt"
	"time"

	"github.com/bkyoung/linegate/internal/adapter/github"
	"github.com/bkyoung/linegate/internal/diff"
	"github.com/bkyoung/linegate/internal/domain"
	"github.com/bkyoung/linegate/internal/store"
	"github.com/bkyoung/linegate/internal/usecase/dedup"
	"github.com/bkyoung/linegate/internal/usecase/validate"
)

// Orchestrator is the library's front door: one call takes raw diff
// text and proposed issues to a ready-to-submit payload and skip
// report. It performs no network I/O; fetching diffs and submitting
// payloads belong to the surrounding orchestration.
type Orchestrator struct {
	validator *validate.Validator
	actions   github.ReviewActions
	history   store.Store // nil disables dedup and run recording
	logger    Logger
	noDedup   bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithStore enables cross-run dedup and run recording.
func WithStore(s store.Store) Option {
	return func(o *Orchestrator) { o.history = s }
}

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithDedupDisabled keeps run recording but skips duplicate
// suppression, for callers that want every accepted issue posted.
func WithDedupDisabled() Option {
	return func(o *Orchestrator) { o.noDedup = true }
}

// WithReviewActions overrides the per-severity review-event mapping.
func WithReviewActions(actions github.ReviewActions) Option {
	return func(o *Orchestrator) { o.actions = actions }
}

// NewOrchestrator builds an orchestrator around a validator.
func NewOrchestrator(validator *validate.Validator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		validator: validator,
		logger:    NopLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Request carries one validation run's inputs.
type Request struct {
	// RunID identifies the run in stored history. Required when a store
	// is configured.
	RunID string

	// Repository is "owner/name"; PullNumber and CommitSHA identify the
	// PR head the comments anchor to.
	Repository string
	PullNumber int
	CommitSHA  string

	// RawDiff is the unified diff text of the PR at CommitSHA.
	RawDiff string

	// Issues are the proposed comments from the issue producer.
	Issues []domain.Issue
}

// Result is everything a caller needs to submit the review and explain
// the skips.
type Result struct {
	Payload domain.ReviewPayload
	Request github.CreateReviewRequest
	Report  domain.SkipReport

	Accepted   int
	Skipped    int
	Duplicates int

	// ParseWarnings surfaces files/hunks the parser had to drop.
	ParseWarnings []domain.ParseWarning
}

// Run executes parse → index → validate → dedup → assemble. The diff is
// parsed and indexed once; the index is immutable, so Run is safe to
// invoke concurrently from multiple goroutines with separate requests.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	ds, err := diff.Parse(req.RawDiff)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	for _, w := range ds.Warnings {
		o.logger.LogWarning(ctx, "dropped malformed diff content", map[string]interface{}{
			"kind":   string(w.Kind),
			"path":   w.Path,
			"line":   w.LineNumber,
			"detail": w.Detail,
		})
	}

	idx := diff.BuildIndex(ds)
	accepted, rejected := o.validator.Validate(req.Issues, idx)

	duplicates := 0
	if o.history != nil && !o.noDedup {
		result, err := dedup.Filter(ctx, o.history, req.Repository, req.PullNumber, accepted)
		if err != nil {
			// Fail open: a duplicate comment beats a silently dropped finding.
			o.logger.LogWarning(ctx, "dedup unavailable, keeping all accepted issues", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			accepted = result.Kept
			duplicates = result.Duplicates
		}
	}

	payload, report := Assemble(req.CommitSHA, accepted, rejected)
	event := github.DetermineReviewEvent(accepted, o.actions)
	summary := summarize(len(accepted), len(rejected), duplicates)

	if o.history != nil {
		o.recordRun(ctx, req, len(accepted), len(rejected), duplicates, report)
	}

	o.logger.LogInfo(ctx, "validation run complete", map[string]interface{}{
		"repository":   req.Repository,
		"pullNumber":   req.PullNumber,
		"commitSHA":    req.CommitSHA,
		"indexedFiles": len(idx.Files()),
		"accepted":     len(accepted),
		"skipped":      len(rejected),
		"duplicates":   duplicates,
		"event":        string(event),
	})

	return &Result{
		Payload:       payload,
		Request:       github.BuildCreateReviewRequest(payload, event, summary),
		Report:        report,
		Accepted:      len(accepted),
		Skipped:       len(rejected),
		Duplicates:    duplicates,
		ParseWarnings: ds.Warnings,
	}, nil
}

// RecordPublished marks the payload's comments as published, to be
// called by the surrounding orchestration after the create-review call
// actually succeeded.
func (o *Orchestrator) RecordPublished(ctx context.Context, req Request, accepted []domain.ValidationOutcome) error {
	if o.history == nil {
		return nil
	}

	comments := make([]store.PublishedComment, 0, len(accepted))
	for _, out := range accepted {
		comments = append(comments, store.PublishedComment{
			Fingerprint: string(out.Issue.Fingerprint()),
			Repository:  req.Repository,
			PullNumber:  req.PullNumber,
			Path:        out.File,
			Line:        out.Line,
			RunID:       req.RunID,
		})
	}
	if err := o.history.SavePublishedComments(ctx, comments); err != nil {
		return fmt.Errorf("record published comments: %w", err)
	}
	return nil
}

// recordRun persists run metadata and skip records. Storage failures
// are logged, not fatal: the payload is still worth returning.
func (o *Orchestrator) recordRun(ctx context.Context, req Request, accepted, skipped, duplicates int, report domain.SkipReport) {
	run := store.Run{
		RunID:          req.RunID,
		Timestamp:      time.Now().UTC(),
		Repository:     req.Repository,
		PullNumber:     req.PullNumber,
		CommitSHA:      req.CommitSHA,
		AcceptedCount:  accepted,
		SkippedCount:   skipped,
		DuplicateCount: duplicates,
	}
	if err := o.history.CreateRun(ctx, run); err != nil {
		o.logger.LogWarning(ctx, "failed to record run", map[string]interface{}{
			"runID": req.RunID,
			"error": err.Error(),
		})
		return
	}

	skips := make([]store.SkipRecord, 0, len(report.Entries))
	for _, entry := range report.Entries {
		ranges := ""
		if len(entry.ValidRanges) > 0 {
			ranges = domain.FormatRanges(entry.ValidRanges)
		}
		skips = append(skips, store.SkipRecord{
			RunID:       req.RunID,
			File:        entry.File,
			Line:        entry.Line,
			Reason:      string(entry.Reason),
			ValidRanges: ranges,
			Body:        entry.Body,
		})
	}
	if err := o.history.SaveSkips(ctx, req.RunID, skips); err != nil {
		o.logger.LogWarning(ctx, "failed to record skips", map[string]interface{}{
			"runID": req.RunID,
			"error": err.Error(),
		})
	}
}

func summarize(accepted, skipped, duplicates int) string {
	if accepted == 0 && skipped == 0 {
		return "No issues to report."
	}
	return fmt.Sprintf("%d inline comment(s); %d issue(s) skipped; %d duplicate(s) suppressed.",
		accepted, skipped, duplicates)
}
