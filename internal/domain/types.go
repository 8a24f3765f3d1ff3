package domain

// FileStatus classifies how a diff touches a file. The set is closed:
// a file is exactly one of these, which rules out impossible combinations
// such as a binary file that also carries text hunks.
type FileStatus string

const (
	FileStatusAdded    FileStatus = "added"
	FileStatusModified FileStatus = "modified"
	FileStatusDeleted  FileStatus = "deleted"
	FileStatusRenamed  FileStatus = "renamed"
	FileStatusBinary   FileStatus = "binary"
)

// Hunk is one @@ block of a unified diff. Counts default to 1 when the
// header omits them.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
}

// NewRange returns the NEW-file line range this hunk makes addressable.
// Pure deletion hunks (NewCount == 0) contribute no addressable lines,
// signalled by ok == false.
func (h Hunk) NewRange() (LineRange, bool) {
	if h.NewCount <= 0 {
		return LineRange{}, false
	}
	return LineRange{Start: h.NewStart, End: h.NewStart + h.NewCount - 1}, true
}

// FileDiff captures the change for a single file.
// OldPath and NewPath are equal unless the file was renamed.
type FileDiff struct {
	OldPath string
	NewPath string
	Status  FileStatus
	Hunks   []Hunk
}

// Path returns the path comments for this file must be anchored to:
// the NEW-side path, falling back to the old path for deletions.
func (f FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// DiffSet is one PR's full diff at one point in time. Immutable once
// parsed; the commit it belongs to is supplied by the caller alongside it.
type DiffSet struct {
	Files []FileDiff

	// Warnings records files and hunks the parser had to drop. A bad
	// hunk or file never invalidates the rest of the set.
	Warnings []ParseWarning
}

// WarningKind identifies a recoverable grammar violation in diff text.
type WarningKind string

const (
	WarnMalformedFileHeader WarningKind = "malformed_file_header"
	WarnMalformedHunkHeader WarningKind = "malformed_hunk_header"
)

// ParseWarning describes one dropped file or hunk.
type ParseWarning struct {
	Kind WarningKind
	// Path is the affected file, when one was identified.
	Path string
	// LineNumber is the 1-based line in the raw diff text that triggered
	// the warning.
	LineNumber int
	Detail     string
}
