package domain

// CommentSideRight anchors a comment to the post-change version of a
// file. This engine only ever validates against the NEW side, so it is
// the only side a payload carries.
const CommentSideRight = "RIGHT"

// ReviewComment is one inline comment of a review payload, shaped for
// the code-hosting API's create-review call.
type ReviewComment struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Side string `json:"side"`
	Body string `json:"body"`
}

// ReviewPayload is the batched create-review request body built from
// accepted outcomes. It is a value object; the authenticated HTTP call
// that submits it belongs to an external collaborator.
type ReviewPayload struct {
	CommitSHA string          `json:"commit_id"`
	Comments  []ReviewComment `json:"comments"`
}

// SkipEntry explains one dropped issue with enough detail to fix it at
// the source.
type SkipEntry struct {
	File          string       `json:"file"`
	Line          int          `json:"line"`
	Reason        RejectReason `json:"reason"`
	ValidRanges   []LineRange  `json:"validRanges,omitempty"`
	Body          string       `json:"body"`
	CorrectedFrom string       `json:"correctedFrom,omitempty"`
}

// SkipReport collects every rejected issue for one validation run,
// suitable for rendering to a human reviewer.
type SkipReport struct {
	CommitSHA string      `json:"commit_id"`
	Entries   []SkipEntry `json:"entries"`
}

// ReportArtifact encapsulates the skip-report rendering inputs.
type ReportArtifact struct {
	OutputDir  string
	Repository string
	CommitSHA  string
	Report     SkipReport
}

// PayloadArtifact encapsulates the payload serialization inputs.
type PayloadArtifact struct {
	OutputDir  string
	Repository string
	CommitSHA  string
	Payload    ReviewPayload
}
