// Package dedup filters validated issues that were already published
// as comments in a previous run, based on fingerprint matching against
// stored history.
package dedup

import (
	"context"
	"fmt"

	"github.com/bkyoung/linegate/internal/domain"
)

// History exposes the published-comment fingerprints of a PR. The
// sqlite store satisfies it; tests substitute fakes.
type History interface {
	PublishedFingerprints(ctx context.Context, repository string, pullNumber int) (map[string]bool, error)
}

// Result describes what the filter kept and dropped.
type Result struct {
	// Kept are outcomes whose issues have not been published before,
	// in their original order.
	Kept []domain.ValidationOutcome

	// Duplicates is the count of outcomes dropped as already published.
	Duplicates int
}

// Filter removes accepted outcomes whose issue fingerprint is already
// recorded for the PR. Callers are expected to fail open on error:
// posting a duplicate is better than silently dropping a finding.
func Filter(ctx context.Context, history History, repository string, pullNumber int, accepted []domain.ValidationOutcome) (Result, error) {
	if len(accepted) == 0 {
		return Result{}, nil
	}

	published, err := history.PublishedFingerprints(ctx, repository, pullNumber)
	if err != nil {
		return Result{}, fmt.Errorf("fetch published fingerprints: %w", err)
	}
	if len(published) == 0 {
		return Result{Kept: accepted}, nil
	}

	result := Result{Kept: make([]domain.ValidationOutcome, 0, len(accepted))}
	for _, out := range accepted {
		if published[string(out.Issue.Fingerprint())] {
			result.Duplicates++
			continue
		}
		result.Kept = append(result.Kept, out)
	}
	return result, nil
}
