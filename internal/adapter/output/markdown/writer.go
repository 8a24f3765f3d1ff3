// Package markdown renders skip reports into Markdown files for audit
// trails and human review.
package markdown

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/linegate/internal/domain"
)

type clock func() string

// Writer renders skip reports into Markdown files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Write persists a skip-report artifact to disk and returns its path.
func (w *Writer) Write(ctx context.Context, artifact domain.ReportArtifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_skips_%s.md",
		sanitise(artifact.Repository),
		sanitise(shortSHA(artifact.CommitSHA)),
		w.now(),
	)
	path := filepath.Join(artifact.OutputDir, filename)

	content := buildContent(artifact)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}

func buildContent(artifact domain.ReportArtifact) string {
	var builder strings.Builder
	caser := cases.Title(language.English)

	builder.WriteString("# Skipped Review Comments\n\n")
	builder.WriteString(fmt.Sprintf("- Repository: %s\n", artifact.Repository))
	builder.WriteString(fmt.Sprintf("- Commit: %s\n\n", artifact.CommitSHA))

	if len(artifact.Report.Entries) == 0 {
		builder.WriteString("No issues were skipped.\n")
		return builder.String()
	}

	// Group by reason so a human can scan structural problems first.
	byReason := make(map[domain.RejectReason][]domain.SkipEntry)
	var order []domain.RejectReason
	for _, entry := range artifact.Report.Entries {
		if _, seen := byReason[entry.Reason]; !seen {
			order = append(order, entry.Reason)
		}
		byReason[entry.Reason] = append(byReason[entry.Reason], entry)
	}

	for _, reason := range order {
		heading := caser.String(strings.ReplaceAll(string(reason), "_", " "))
		builder.WriteString(fmt.Sprintf("## %s\n\n", heading))
		for _, entry := range byReason[reason] {
			builder.WriteString(fmt.Sprintf("### %s:%d\n", entry.File, entry.Line))
			if entry.CorrectedFrom != "" {
				builder.WriteString(fmt.Sprintf("- Submitted as: %s\n", entry.CorrectedFrom))
			}
			if len(entry.ValidRanges) > 0 {
				builder.WriteString(fmt.Sprintf("- Valid ranges: %s\n", domain.FormatRanges(entry.ValidRanges)))
			}
			if entry.Body != "" {
				builder.WriteString(fmt.Sprintf("- Issue: %s\n", entry.Body))
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

func shortSHA(sha string) string {
	if len(sha) > 12 {
		return sha[:12]
	}
	return sha
}

func sanitise(value string) string {
	if value == "" {
		return "unknown"
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	value = strings.ReplaceAll(value, " ", "-")
	return value
}
