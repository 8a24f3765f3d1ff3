// Package git produces raw unified diffs from a local repository using
// go-git, so the validation pipeline can run without a hosting API.
package git

import (
	"context"
	"fmt"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Snapshot carries one computed diff along with the commits it spans.
// RawDiff feeds the unified-diff parser; HeadSHA anchors the review
// payload's commit id.
type Snapshot struct {
	RawDiff string
	BaseSHA string
	HeadSHA string
}

// Source reads diffs from a repository on disk.
type Source struct {
	repoDir string
}

// NewSource constructs a diff source for the provided repository
// directory.
func NewSource(repoDir string) *Source {
	return &Source{repoDir: repoDir}
}

// Diff computes the unified diff between two refs.
func (s *Source) Diff(ctx context.Context, baseRef, targetRef string) (Snapshot, error) {
	repo, err := goGit.PlainOpenWithOptions(s.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Snapshot{}, fmt.Errorf("open repo: %w", err)
	}

	baseCommit, err := resolveCommit(repo, baseRef)
	if err != nil {
		return Snapshot{}, fmt.Errorf("resolve base ref: %w", err)
	}

	targetCommit, err := resolveCommit(repo, targetRef)
	if err != nil {
		return Snapshot{}, fmt.Errorf("resolve target ref: %w", err)
	}

	patch, err := baseCommit.PatchContext(ctx, targetCommit)
	if err != nil {
		return Snapshot{}, fmt.Errorf("compute patch: %w", err)
	}

	return Snapshot{
		RawDiff: patch.String(),
		BaseSHA: baseCommit.Hash.String(),
		HeadSHA: targetCommit.Hash.String(),
	}, nil
}

// Head returns the commit SHA of the checked-out HEAD.
func (s *Source) Head(ctx context.Context) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(s.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// resolveCommit tries the ref verbatim, then as a local branch, then as
// an origin-tracking branch.
func resolveCommit(repo *goGit.Repository, ref string) (*object.Commit, error) {
	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		return repo.CommitObject(*hash)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to resolve ref %s", ref)
}
