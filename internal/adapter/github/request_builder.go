package github

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bkyoung/linegate/internal/domain"
)

// fingerprintMarker embeds an issue fingerprint in a comment body as an
// invisible HTML comment, so later runs can recognize already-posted
// comments when syncing history.
const fingerprintMarkerPrefix = "<!-- linegate-fingerprint: "

var fingerprintMarkerRe = regexp.MustCompile(`<!-- linegate-fingerprint: ([0-9a-f]{64}) -->`)

// BuildCreateReviewRequest wraps an assembled payload in the API
// request body, attaching the review event and summary. It is pure and
// does not modify the payload.
func BuildCreateReviewRequest(payload domain.ReviewPayload, event ReviewEvent, summary string) CreateReviewRequest {
	return CreateReviewRequest{
		CommitID: payload.CommitSHA,
		Event:    event,
		Body:     summary,
		Comments: payload.Comments,
	}
}

// FormatIssueComment renders an issue as a GitHub-flavored Markdown
// comment body with the fingerprint marker appended.
func FormatIssueComment(issue domain.Issue) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("**Severity:** %s", issue.Severity))
	if issue.Category != "" {
		sb.WriteString(fmt.Sprintf(" | **Category:** %s", issue.Category))
	}
	sb.WriteString("\n\n")

	sb.WriteString(issue.Body)
	if !strings.HasSuffix(issue.Body, "\n") {
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fingerprintMarkerPrefix)
	sb.WriteString(string(issue.Fingerprint()))
	sb.WriteString(" -->")

	return sb.String()
}

// ExtractFingerprintFromComment recovers the fingerprint marker from a
// previously posted comment body. It is the inverse of
// FormatIssueComment, intended for the external publisher: when the
// local store is empty or stale, the publisher lists the PR's existing
// review comments, extracts their fingerprints with this function, and
// seeds the store so dedup can recognize comments posted by earlier
// runs (or other hosts). ok is false when the body carries no marker
// (e.g. a human-written comment).
func ExtractFingerprintFromComment(body string) (domain.IssueFingerprint, bool) {
	m := fingerprintMarkerRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return domain.IssueFingerprint(m[1]), true
}

// DetermineReviewEvent picks the review event from the severities of
// the accepted outcomes, honoring the configured per-severity actions.
func DetermineReviewEvent(accepted []domain.ValidationOutcome, actions ReviewActions) ReviewEvent {
	if len(accepted) == 0 {
		return eventFor(actions.Clean, EventApprove)
	}

	// REQUEST_CHANGES dominates COMMENT; one severe issue decides the event.
	event := EventComment
	for _, out := range accepted {
		switch strings.ToLower(out.Issue.Severity) {
		case domain.SeverityCritical:
			if eventFor(actions.Critical, EventRequestChanges) == EventRequestChanges {
				return EventRequestChanges
			}
		case domain.SeverityHigh:
			if eventFor(actions.High, EventRequestChanges) == EventRequestChanges {
				return EventRequestChanges
			}
		case domain.SeverityMedium:
			if eventFor(actions.Medium, EventComment) == EventRequestChanges {
				return EventRequestChanges
			}
		case domain.SeverityLow:
			if eventFor(actions.Low, EventComment) == EventRequestChanges {
				return EventRequestChanges
			}
		}
	}
	return event
}

// eventFor maps a configured action string to a ReviewEvent, falling
// back when the string is empty or unknown.
func eventFor(action string, fallback ReviewEvent) ReviewEvent {
	switch strings.ToLower(action) {
	case "approve":
		return EventApprove
	case "comment":
		return EventComment
	case "request_changes":
		return EventRequestChanges
	default:
		return fallback
	}
}
