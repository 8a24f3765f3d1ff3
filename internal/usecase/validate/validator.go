// Package validate checks proposed review issues against the line
// ranges a diff makes addressable, classifying each as accepted or
// rejected with a reason.
package validate

import (
	"github.com/bkyoung/linegate/internal/diff"
	"github.com/bkyoung/linegate/internal/domain"
)

// RenamePolicy decides what happens when an issue references the
// pre-rename path of a renamed file.
type RenamePolicy string

const (
	// PolicyAutoCorrect rewrites the issue to the new path and
	// validates it there. The outcome records the original path.
	PolicyAutoCorrect RenamePolicy = "auto-correct"

	// PolicyStrict rejects the issue with stale_renamed_path and leaves
	// resubmission to the caller.
	PolicyStrict RenamePolicy = "strict"
)

// Validator applies one rename policy to whole batches. The zero value
// is not usable; construct with New.
type Validator struct {
	policy RenamePolicy
}

// New returns a Validator for the given policy. An empty policy
// defaults to auto-correction.
func New(policy RenamePolicy) *Validator {
	if policy == "" {
		policy = PolicyAutoCorrect
	}
	return &Validator{policy: policy}
}

// Policy returns the rename policy in force.
func (v *Validator) Policy() RenamePolicy {
	return v.policy
}

// Validate classifies every issue against the index. Each input issue
// produces exactly one outcome, input order is preserved within each
// result slice, and the index is never mutated, so repeated calls with
// the same arguments return identical results.
//
// A nil index is a programming error and panics; data-quality problems
// always resolve to rejected outcomes instead.
func (v *Validator) Validate(issues []domain.Issue, idx *diff.RangeIndex) (accepted, rejected []domain.ValidationOutcome) {
	if idx == nil {
		panic("validate: nil range index")
	}

	for _, issue := range issues {
		outcome := v.check(issue, idx)
		if outcome.Accepted {
			accepted = append(accepted, outcome)
		} else {
			rejected = append(rejected, outcome)
		}
	}
	return accepted, rejected
}

func (v *Validator) check(issue domain.Issue, idx *diff.RangeIndex) domain.ValidationOutcome {
	outcome := domain.ValidationOutcome{
		Issue: issue,
		File:  issue.File,
		Line:  issue.Line,
	}

	// Non-positive lines are rejected before any range lookup.
	if issue.Line <= 0 {
		outcome.Reason = domain.ReasonInvalidLineNumber
		return outcome
	}

	if newPath, ok := idx.RenamedTo(issue.File); ok {
		if v.policy == PolicyStrict {
			outcome.Reason = domain.ReasonStaleRenamedPath
			if ranges, found := idx.Ranges(newPath); found {
				outcome.ValidRanges = ranges
			}
			return outcome
		}
		outcome.CorrectedFrom = issue.File
		outcome.File = newPath
	}

	ranges, ok := idx.Ranges(outcome.File)
	if !ok {
		outcome.Reason = domain.ReasonFileNotInDiff
		return outcome
	}

	if len(ranges) == 0 {
		status, _ := idx.Status(outcome.File)
		switch status {
		case domain.FileStatusBinary:
			outcome.Reason = domain.ReasonBinaryFile
		case domain.FileStatusDeleted:
			outcome.Reason = domain.ReasonDeletedFile
		default:
			// A modified or renamed file whose hunks are all pure
			// deletions still exists; it just has no addressable
			// NEW-side lines.
			outcome.Reason = domain.ReasonLineNotInRange
			outcome.ValidRanges = ranges
		}
		return outcome
	}

	if !idx.Contains(outcome.File, issue.Line) {
		outcome.Reason = domain.ReasonLineNotInRange
		outcome.ValidRanges = ranges
		return outcome
	}

	outcome.Accepted = true
	return outcome
}
