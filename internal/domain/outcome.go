package domain

// RejectReason explains why an issue could not receive a review comment.
type RejectReason string

const (
	// ReasonFileNotInDiff means the issue references a path absent from
	// the diff entirely.
	ReasonFileNotInDiff RejectReason = "file_not_in_diff"

	// ReasonDeletedFile means the file exists in the diff but was
	// deleted, so it has no NEW-side lines.
	ReasonDeletedFile RejectReason = "deleted_file"

	// ReasonBinaryFile means the file changed as binary content with no
	// addressable lines.
	ReasonBinaryFile RejectReason = "binary_file"

	// ReasonLineNotInRange means the line falls outside every hunk range
	// of an otherwise addressable file.
	ReasonLineNotInRange RejectReason = "line_not_in_range"

	// ReasonInvalidLineNumber means the line number is not positive.
	ReasonInvalidLineNumber RejectReason = "invalid_line_number"

	// ReasonStaleRenamedPath means the issue used the pre-rename path and
	// the configured policy rejects rather than corrects it.
	ReasonStaleRenamedPath RejectReason = "stale_renamed_path"
)

// ValidationOutcome is the result of checking one issue against a diff.
// Every input issue produces exactly one outcome; outcomes are never
// mutated after creation.
type ValidationOutcome struct {
	// Issue is the original input, untouched.
	Issue Issue

	// File and Line are where the comment would land. File differs from
	// Issue.File when a stale renamed path was auto-corrected.
	File string
	Line int

	// Accepted marks the issue as addressable at File:Line.
	Accepted bool

	// Reason is set on rejected outcomes only.
	Reason RejectReason

	// ValidRanges carries the file's addressable ranges on
	// line_not_in_range rejections so a human can fix the issue at the
	// source.
	ValidRanges []LineRange

	// CorrectedFrom records the stale path when a rename was
	// auto-corrected.
	CorrectedFrom string
}

// Rejected reports whether the outcome carries a reject reason.
func (o ValidationOutcome) Rejected() bool {
	return !o.Accepted
}
