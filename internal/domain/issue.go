package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Severity levels an issue producer may assign. Stored as lowercase
// strings so external producers can pass them through verbatim.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Issue is a proposed review comment supplied by an external issue
// producer. File is repo-root-relative; Line is a 1-based NEW-file line
// number, never a diff-relative position. Issues are read-only input.
type Issue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Severity string `json:"severity"`
	Category string `json:"category"`
	Body     string `json:"body"`
}

// IssueFingerprint uniquely identifies an issue's content across runs.
type IssueFingerprint string

// Fingerprint derives a deterministic identifier from the issue's
// content. The same issue always hashes to the same fingerprint, which
// is what makes cross-run deduplication possible.
func (i Issue) Fingerprint() IssueFingerprint {
	payload := fmt.Sprintf("%s|%d|%s|%s|%s",
		i.File,
		i.Line,
		i.Severity,
		i.Category,
		i.Body,
	)
	sum := sha256.Sum256([]byte(payload))
	return IssueFingerprint(hex.EncodeToString(sum[:]))
}
