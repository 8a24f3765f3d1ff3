package review

import (
	"fmt"
	"strings"

	"github.com/bkyoung/linegate/internal/domain"
)

// reasonText is the human phrasing for each reject reason.
var reasonText = map[domain.RejectReason]string{
	domain.ReasonFileNotInDiff:     "file is not part of this diff",
	domain.ReasonDeletedFile:       "file was deleted, no lines to comment on",
	domain.ReasonBinaryFile:        "binary file, no lines to comment on",
	domain.ReasonLineNotInRange:    "line is outside the changed ranges",
	domain.ReasonInvalidLineNumber: "line number must be positive",
	domain.ReasonStaleRenamedPath:  "file was renamed, use the new path",
}

// ConsoleReport renders the skip report for terminal output. The
// decorated form (usually gated on IsInteractive) adds markers that
// read poorly in CI logs.
func ConsoleReport(report domain.SkipReport, decorated bool) string {
	if len(report.Entries) == 0 {
		return "All issues validated; nothing was skipped.\n"
	}

	bullet := "- "
	if decorated {
		bullet = "⚠ "
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d issue(s) skipped for commit %s:\n", len(report.Entries), report.CommitSHA)
	for _, entry := range report.Entries {
		sb.WriteString(bullet)
		fmt.Fprintf(&sb, "%s:%d %s", entry.File, entry.Line, reasonPhrase(entry.Reason))
		if len(entry.ValidRanges) > 0 {
			fmt.Fprintf(&sb, " (valid ranges: %s)", domain.FormatRanges(entry.ValidRanges))
		}
		if entry.CorrectedFrom != "" {
			fmt.Fprintf(&sb, " (submitted as %s)", entry.CorrectedFrom)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func reasonPhrase(reason domain.RejectReason) string {
	if text, ok := reasonText[reason]; ok {
		return text
	}
	return string(reason)
}
