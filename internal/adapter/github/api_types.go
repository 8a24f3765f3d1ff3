package github

import "github.com/bkyoung/linegate/internal/domain"

// ReviewEvent is the action taken when the review is submitted.
type ReviewEvent string

const (
	// EventComment submits the review without approval.
	EventComment ReviewEvent = "COMMENT"

	// EventApprove approves the pull request.
	EventApprove ReviewEvent = "APPROVE"

	// EventRequestChanges requests changes to the pull request.
	EventRequestChanges ReviewEvent = "REQUEST_CHANGES"
)

// CreateReviewRequest is the request body for
// POST /repos/{owner}/{repo}/pulls/{pull_number}/reviews.
type CreateReviewRequest struct {
	// CommitID is the SHA of the PR head commit the comments anchor to.
	CommitID string `json:"commit_id"`

	// Event is the review action: APPROVE, REQUEST_CHANGES, or COMMENT.
	Event ReviewEvent `json:"event"`

	// Body is the review summary comment.
	Body string `json:"body,omitempty"`

	// Comments are the inline comments, addressed by NEW-file line and
	// side rather than diff-relative position.
	Comments []domain.ReviewComment `json:"comments,omitempty"`
}

// ReviewActions maps issue severities to the review event they should
// trigger. Empty fields fall back to defaults: critical/high request
// changes, everything else comments.
type ReviewActions struct {
	Critical string `yaml:"critical"`
	High     string `yaml:"high"`
	Medium   string `yaml:"medium"`
	Low      string `yaml:"low"`

	// Clean is the event used when no comments survive validation.
	Clean string `yaml:"clean"`
}
