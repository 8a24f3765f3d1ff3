package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bkyoung/linegate/internal/domain"
)

// parseState is the current position of the parser within the diff
// grammar. Transitions only happen on file headers and hunk headers, so
// unknown garbage between files is skipped rather than misread.
type parseState int

const (
	// stateSeekingFileHeader scans for the next "diff --git" line.
	stateSeekingFileHeader parseState = iota
	// stateSeekingHunkHeader consumes extended header lines and scans
	// for the next "@@" line of the current file.
	stateSeekingHunkHeader
	// stateInHunk classifies +/-/context lines until the hunk's counts
	// are consumed.
	stateInHunk
)

var (
	fileHeaderRe = regexp.MustCompile(`^diff --git a/(.+) b/(.+)$`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
	renameFromRe = regexp.MustCompile(`^rename from (.+)$`)
	renameToRe   = regexp.MustCompile(`^rename to (.+)$`)
	binaryRe     = regexp.MustCompile(`^Binary files .* differ$`)
)

// Parse tokenizes unified diff text into a DiffSet. Parsing is
// deterministic and side-effect-free: the same input always yields the
// same DiffSet.
//
// A malformed hunk or file header drops only that hunk or file and is
// recorded as a warning on the DiffSet; the remaining files still
// parse. Input with no "diff --git" lines at all (including the empty
// string) yields an empty DiffSet, not an error.
func Parse(raw string) (domain.DiffSet, error) {
	p := &parser{state: stateSeekingFileHeader}

	for i, line := range strings.Split(raw, "\n") {
		p.consume(i+1, line)
	}
	p.flushFile()

	return p.result, nil
}

// fileBuilder accumulates one file's header facts and hunks until the
// next file header flushes it.
type fileBuilder struct {
	oldPath string
	newPath string
	hunks   []domain.Hunk

	renamed     bool
	binary      bool
	newFile     bool
	deletedFile bool
	sawOldLine  bool // "--- " seen
	sawNewLine  bool // "+++ " seen
	dropped     bool // header was malformed, discard at flush
}

type parser struct {
	state  parseState
	file   *fileBuilder
	result domain.DiffSet

	// remaining old/new line budget of the hunk being consumed
	oldLeft int
	newLeft int
}

func (p *parser) consume(lineNo int, line string) {
	// File headers reset the machine from any state.
	if m := fileHeaderRe.FindStringSubmatch(line); m != nil {
		p.flushFile()
		p.file = &fileBuilder{oldPath: m[1], newPath: m[2]}
		p.state = stateSeekingHunkHeader
		return
	}

	switch p.state {
	case stateSeekingFileHeader:
		// Nothing but a file header matters here.

	case stateSeekingHunkHeader:
		p.consumeHeaderLine(lineNo, line)

	case stateInHunk:
		p.consumeHunkLine(lineNo, line)
	}
}

// consumeHeaderLine handles extended header lines and the transition
// into the first hunk of a file.
func (p *parser) consumeHeaderLine(lineNo int, line string) {
	f := p.file

	switch {
	case strings.HasPrefix(line, "@@"):
		p.startHunk(lineNo, line)

	case binaryRe.MatchString(line):
		f.binary = true

	case strings.HasPrefix(line, "new file mode"):
		f.newFile = true

	case strings.HasPrefix(line, "deleted file mode"):
		f.deletedFile = true

	case strings.HasPrefix(line, "--- "):
		f.sawOldLine = true
		if name := parsePathLine(line[4:]); name == devNull {
			f.newFile = true
		} else if name != "" {
			f.oldPath = name
		}

	case strings.HasPrefix(line, "+++ "):
		f.sawNewLine = true
		if name := parsePathLine(line[4:]); name == devNull {
			f.deletedFile = true
		} else if name != "" {
			f.newPath = name
		}

	default:
		if m := renameFromRe.FindStringSubmatch(line); m != nil {
			f.renamed = true
			f.oldPath = m[1]
		} else if m := renameToRe.FindStringSubmatch(line); m != nil {
			f.renamed = true
			f.newPath = m[1]
		}
		// "index ...", "similarity index ...", mode lines and anything
		// unrecognized carry no information this engine needs.
	}
}

// startHunk validates a hunk header and enters the hunk body.
func (p *parser) startHunk(lineNo int, line string) {
	f := p.file

	if f.binary {
		// Binary file entries never carry hunks; stray ones are noise.
		return
	}

	if f.dropped {
		return
	}

	// Hunks are only legal after both --- and +++ lines.
	if !f.sawOldLine || !f.sawNewLine {
		p.warn(domain.WarnMalformedFileHeader, f.path(), lineNo,
			"hunk before ---/+++ header lines")
		f.dropped = true
		return
	}

	hunk, err := parseHunkHeader(line)
	if err != nil {
		p.warn(domain.WarnMalformedHunkHeader, f.path(), lineNo, err.Error())
		return
	}

	f.hunks = append(f.hunks, hunk)
	p.oldLeft = hunk.OldCount
	p.newLeft = hunk.NewCount
	p.state = stateInHunk
	p.maybeEndHunk()
}

// consumeHunkLine classifies one body line by its first character.
func (p *parser) consumeHunkLine(lineNo int, line string) {
	if strings.HasPrefix(line, "@@") {
		// Short hunk body; the header of the next hunk ends it.
		p.state = stateSeekingHunkHeader
		p.startHunk(lineNo, line)
		return
	}

	if line == "" {
		// Trailing newline artifact from splitting the raw text.
		return
	}

	switch line[0] {
	case '+':
		p.newLeft--
	case '-':
		p.oldLeft--
	case ' ':
		p.oldLeft--
		p.newLeft--
	case '\\':
		// "\ No newline at end of file", consumes no line budget.
	default:
		// Unknown prefix ends the hunk body.
		p.state = stateSeekingHunkHeader
		return
	}

	p.maybeEndHunk()
}

// maybeEndHunk leaves the hunk body once both line budgets are spent.
func (p *parser) maybeEndHunk() {
	if p.oldLeft <= 0 && p.newLeft <= 0 {
		p.state = stateSeekingHunkHeader
	}
}

// flushFile finalizes the in-progress file, if any, and appends it to
// the result.
func (p *parser) flushFile() {
	f := p.file
	p.file = nil
	p.state = stateSeekingFileHeader

	if f == nil || f.dropped {
		return
	}

	fd := domain.FileDiff{
		OldPath: f.oldPath,
		NewPath: f.newPath,
		Status:  f.status(),
		Hunks:   f.hunks,
	}
	if fd.Status == domain.FileStatusBinary {
		fd.Hunks = nil
	}
	if fd.Status == domain.FileStatusAdded {
		fd.OldPath = fd.NewPath
	}
	if fd.Status == domain.FileStatusDeleted {
		fd.NewPath = fd.OldPath
	}

	p.result.Files = append(p.result.Files, fd)
}

func (p *parser) warn(kind domain.WarningKind, path string, lineNo int, detail string) {
	p.result.Warnings = append(p.result.Warnings, domain.ParseWarning{
		Kind:       kind,
		Path:       path,
		LineNumber: lineNo,
		Detail:     detail,
	})
}

// status resolves the closed status set from the header facts. Binary
// wins over everything so a binary rename cannot end up with hunks.
func (f *fileBuilder) status() domain.FileStatus {
	switch {
	case f.binary:
		return domain.FileStatusBinary
	case f.newFile:
		return domain.FileStatusAdded
	case f.deletedFile:
		return domain.FileStatusDeleted
	case f.renamed:
		return domain.FileStatusRenamed
	default:
		return domain.FileStatusModified
	}
}

func (f *fileBuilder) path() string {
	if f.newPath != "" {
		return f.newPath
	}
	return f.oldPath
}

const devNull = "/dev/null"

// parsePathLine extracts the file name from the value of a --- or +++
// line, stripping the a/ or b/ prefix and any trailing metadata.
func parsePathLine(s string) string {
	s = strings.TrimSpace(s)
	// git appends "\t(timestamp)" in some configurations
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		s = s[:i]
	}
	if s == devNull {
		return devNull
	}
	if strings.HasPrefix(s, "a/") || strings.HasPrefix(s, "b/") {
		return s[2:]
	}
	return s
}

// parseHunkHeader parses "@@ -oldStart,oldCount +newStart,newCount @@".
// Omitted counts default to 1.
func parseHunkHeader(line string) (domain.Hunk, error) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return domain.Hunk{}, fmt.Errorf("unparseable hunk header %q", line)
	}

	oldStart, err := strconv.Atoi(m[1])
	if err != nil {
		return domain.Hunk{}, fmt.Errorf("old start %q: %w", m[1], err)
	}
	newStart, err := strconv.Atoi(m[3])
	if err != nil {
		return domain.Hunk{}, fmt.Errorf("new start %q: %w", m[3], err)
	}

	oldCount := 1
	if m[2] != "" {
		oldCount, err = strconv.Atoi(m[2])
		if err != nil {
			return domain.Hunk{}, fmt.Errorf("old count %q: %w", m[2], err)
		}
	}
	newCount := 1
	if m[4] != "" {
		newCount, err = strconv.Atoi(m[4])
		if err != nil {
			return domain.Hunk{}, fmt.Errorf("new count %q: %w", m[4], err)
		}
	}

	return domain.Hunk{
		OldStart: oldStart,
		OldCount: oldCount,
		NewStart: newStart,
		NewCount: newCount,
	}, nil
}
