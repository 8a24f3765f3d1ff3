// Package review orchestrates the validation pipeline: parse the diff,
// index its ranges, validate the proposed issues, deduplicate against
// history, and assemble the review payload plus skip report.
package review

import (
	"github.com/bkyoung/linegate/internal/adapter/github"
	"github.com/bkyoung/linegate/internal/domain"
)

// Assemble partitions validated outcomes into the batched create-review
// payload and the human-facing skip report. An empty accepted set still
// yields a payload with zero comments; whether an empty review is worth
// submitting is the caller's call, never an error here.
func Assemble(commitSHA string, accepted, rejected []domain.ValidationOutcome) (domain.ReviewPayload, domain.SkipReport) {
	payload := domain.ReviewPayload{
		CommitSHA: commitSHA,
		Comments:  make([]domain.ReviewComment, 0, len(accepted)),
	}
	for _, out := range accepted {
		payload.Comments = append(payload.Comments, domain.ReviewComment{
			Path: out.File,
			Line: out.Line,
			Side: domain.CommentSideRight,
			Body: github.FormatIssueComment(out.Issue),
		})
	}

	report := domain.SkipReport{
		CommitSHA: commitSHA,
		Entries:   make([]domain.SkipEntry, 0, len(rejected)),
	}
	for _, out := range rejected {
		report.Entries = append(report.Entries, domain.SkipEntry{
			File:          out.File,
			Line:          out.Line,
			Reason:        out.Reason,
			ValidRanges:   out.ValidRanges,
			Body:          out.Issue.Body,
			CorrectedFrom: out.CorrectedFrom,
		})
	}

	return payload, report
}
