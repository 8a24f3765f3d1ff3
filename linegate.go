// Package linegate validates proposed review comments against a unified
// diff and assembles a ready-to-submit review payload. The heavy lifting
// lives in internal packages; this package wires them together from
// configuration.
package linegate

import (
	"context"
	"fmt"
	"time"

	"github.com/bkyoung/linegate/internal/adapter/git"
	"github.com/bkyoung/linegate/internal/adapter/github"
	"github.com/bkyoung/linegate/internal/adapter/observability"
	jsonout "github.com/bkyoung/linegate/internal/adapter/output/json"
	"github.com/bkyoung/linegate/internal/adapter/output/markdown"
	"github.com/bkyoung/linegate/internal/adapter/store/sqlite"
	"github.com/bkyoung/linegate/internal/config"
	"github.com/bkyoung/linegate/internal/domain"
	"github.com/bkyoung/linegate/internal/store"
	"github.com/bkyoung/linegate/internal/usecase/review"
	"github.com/bkyoung/linegate/internal/usecase/validate"
)

// Engine bundles the wired validation pipeline with the resources it
// owns. Construct one with New and release it with Close.
type Engine struct {
	Orchestrator *review.Orchestrator

	// Source reads diffs from the configured local repository. Nil when
	// git.repositoryDir is unset and the caller supplies raw diff text.
	Source *git.Source

	markdown  *markdown.Writer
	json      *jsonout.Writer
	outputDir string
	history   store.Store
}

// New wires an Engine from configuration.
func New(cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := []review.Option{}

	if cfg.Observability.Logging.Enabled {
		logger := observability.NewDefaultLogger(
			observability.ParseLevel(cfg.Observability.Logging.Level),
			observability.ParseFormat(cfg.Observability.Logging.Format),
		)
		opts = append(opts, review.WithLogger(logger))
	}

	var history store.Store
	if cfg.Store.Enabled {
		s, err := sqlite.NewStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		history = s
		opts = append(opts, review.WithStore(s))
	}
	if !cfg.Dedup.Enabled {
		opts = append(opts, review.WithDedupDisabled())
	}

	opts = append(opts, review.WithReviewActions(reviewActions(cfg.Review.Actions)))

	validator := validate.New(validate.RenamePolicy(cfg.Review.RenamePolicy))

	engine := &Engine{
		Orchestrator: review.NewOrchestrator(validator, opts...),
		markdown:     markdown.NewWriter(timestamp),
		json:         jsonout.NewWriter(timestamp),
		outputDir:    cfg.Output.Directory,
		history:      history,
	}
	if cfg.Git.RepositoryDir != "" {
		engine.Source = git.NewSource(cfg.Git.RepositoryDir)
	}
	return engine, nil
}

// Close releases the engine's store handle, if any.
func (e *Engine) Close() error {
	if e.history == nil {
		return nil
	}
	return e.history.Close()
}

// WriteArtifacts renders the skip report and payload to the configured
// output directory and returns their paths.
func (e *Engine) WriteArtifacts(ctx context.Context, repository string, result *review.Result) (reportPath, payloadPath string, err error) {
	reportPath, err = e.markdown.Write(ctx, domain.ReportArtifact{
		OutputDir:  e.outputDir,
		Repository: repository,
		CommitSHA:  result.Payload.CommitSHA,
		Report:     result.Report,
	})
	if err != nil {
		return "", "", fmt.Errorf("write skip report: %w", err)
	}

	payloadPath, err = e.json.Write(ctx, domain.PayloadArtifact{
		OutputDir:  e.outputDir,
		Repository: repository,
		CommitSHA:  result.Payload.CommitSHA,
		Payload:    result.Payload,
	})
	if err != nil {
		return "", "", fmt.Errorf("write payload: %w", err)
	}

	return reportPath, payloadPath, nil
}

func reviewActions(actions config.ReviewActions) github.ReviewActions {
	return github.ReviewActions{
		Critical: actions.OnCritical,
		High:     actions.OnHigh,
		Medium:   actions.OnMedium,
		Low:      actions.OnLow,
		Clean:    actions.OnClean,
	}
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15-04-05Z")
}
