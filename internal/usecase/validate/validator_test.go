package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/linegate/internal/diff"
	"github.com/bkyoung/linegate/internal/domain"
	"github.com/bkyoung/linegate/internal/usecase/validate"
)

func buildIndex(t *testing.T, raw string) *diff.RangeIndex {
	t.Helper()
	ds, err := diff.Parse(raw)
	require.NoError(t, err)
	return diff.BuildIndex(ds)
}

const newFileDiff = `diff --git a/a.rs b/a.rs
new file mode 100644
index 0000000..1111111
--- /dev/null
+++ b/a.rs
@@ -0,0 +1,10 @@
+l1
+l2
+l3
+l4
+l5
+l6
+l7
+l8
+l9
+l10
`

func issue(file string, line int) domain.Issue {
	return domain.Issue{
		File:     file,
		Line:     line,
		Severity: domain.SeverityMedium,
		Category: "style",
		Body:     "tighten this up",
	}
}

func TestValidate_EndToEndScenario(t *testing.T) {
	idx := buildIndex(t, newFileDiff)
	v := validate.New(validate.PolicyAutoCorrect)

	issues := []domain.Issue{issue("a.rs", 5), issue("a.rs", 15), issue("b.rs", 3)}
	accepted, rejected := v.Validate(issues, idx)

	require.Len(t, accepted, 1)
	assert.Equal(t, "a.rs", accepted[0].File)
	assert.Equal(t, 5, accepted[0].Line)

	require.Len(t, rejected, 2)
	assert.Equal(t, domain.ReasonLineNotInRange, rejected[0].Reason)
	assert.Equal(t, []domain.LineRange{{Start: 1, End: 10}}, rejected[0].ValidRanges)
	assert.Equal(t, domain.ReasonFileNotInDiff, rejected[1].Reason)
}

func TestValidate_Idempotent(t *testing.T) {
	idx := buildIndex(t, newFileDiff)
	v := validate.New(validate.PolicyAutoCorrect)
	issues := []domain.Issue{issue("a.rs", 1), issue("a.rs", 0), issue("b.rs", 2), issue("a.rs", 11)}

	a1, r1 := v.Validate(issues, idx)
	a2, r2 := v.Validate(issues, idx)

	assert.Equal(t, a1, a2)
	assert.Equal(t, r1, r2)
}

func TestValidate_EveryIssueGetsExactlyOneOutcome(t *testing.T) {
	idx := buildIndex(t, newFileDiff)
	v := validate.New(validate.PolicyAutoCorrect)
	issues := []domain.Issue{
		issue("a.rs", 1), issue("a.rs", 10), issue("a.rs", -4),
		issue("c.rs", 7), issue("a.rs", 500),
	}

	accepted, rejected := v.Validate(issues, idx)
	assert.Equal(t, len(issues), len(accepted)+len(rejected))
}

func TestValidate_AddedFileBoundaries(t *testing.T) {
	idx := buildIndex(t, newFileDiff)
	v := validate.New(validate.PolicyAutoCorrect)

	accepted, rejected := v.Validate([]domain.Issue{
		issue("a.rs", 0),
		issue("a.rs", 1),
		issue("a.rs", 10),
		issue("a.rs", 11),
	}, idx)

	require.Len(t, accepted, 2)
	require.Len(t, rejected, 2)
	assert.Equal(t, domain.ReasonInvalidLineNumber, rejected[0].Reason)
	assert.Equal(t, domain.ReasonLineNotInRange, rejected[1].Reason)
}

func TestValidate_DisjointHunksRejectionListsAllRanges(t *testing.T) {
	raw := `diff --git a/m.go b/m.go
index 1111111..2222222 100644
--- a/m.go
+++ b/m.go
@@ -10,5 +10,6 @@
 c1
-d1
+a1
+a2
 c2
 c3
 c4
@@ -50,8 +51,12 @@
 c1
-d1
-d2
+a1
+a2
+a3
+a4
+a5
+a6
 c2
 c3
 c4
 c5
 c6
`
	idx := buildIndex(t, raw)
	v := validate.New(validate.PolicyAutoCorrect)

	_, rejected := v.Validate([]domain.Issue{issue("m.go", 30)}, idx)

	require.Len(t, rejected, 1)
	assert.Equal(t, domain.ReasonLineNotInRange, rejected[0].Reason)
	assert.Equal(t, []domain.LineRange{{Start: 10, End: 15}, {Start: 51, End: 62}}, rejected[0].ValidRanges)
}

func TestValidate_DeletedFileRejectedRegardlessOfLine(t *testing.T) {
	raw := `diff --git a/gone.go b/gone.go
deleted file mode 100644
index 1111111..0000000
--- a/gone.go
+++ /dev/null
@@ -1,2 +0,0 @@
-a
-b
`
	idx := buildIndex(t, raw)
	v := validate.New(validate.PolicyAutoCorrect)

	for _, line := range []int{1, 2, 9999} {
		_, rejected := v.Validate([]domain.Issue{issue("gone.go", line)}, idx)
		require.Len(t, rejected, 1)
		assert.Equal(t, domain.ReasonDeletedFile, rejected[0].Reason, "line %d", line)
	}
}

func TestValidate_PureDeletionHunksRejectAsOutOfRange(t *testing.T) {
	// The file still exists; only old lines were removed. The reason
	// must not claim the file was deleted.
	raw := `diff --git a/kept.go b/kept.go
index 1111111..2222222 100644
--- a/kept.go
+++ b/kept.go
@@ -10,3 +9,0 @@
-a
-b
-c
`
	idx := buildIndex(t, raw)
	status, ok := idx.Status("kept.go")
	require.True(t, ok)
	require.Equal(t, domain.FileStatusModified, status)

	v := validate.New(validate.PolicyAutoCorrect)
	_, rejected := v.Validate([]domain.Issue{issue("kept.go", 5)}, idx)

	require.Len(t, rejected, 1)
	assert.Equal(t, domain.ReasonLineNotInRange, rejected[0].Reason)
	assert.Empty(t, rejected[0].ValidRanges)
}

func TestValidate_BinaryFileRejected(t *testing.T) {
	raw := `diff --git a/x.png b/x.png
index 1111111..2222222 100644
Binary files a/x.png and b/x.png differ
`
	idx := buildIndex(t, raw)
	v := validate.New(validate.PolicyAutoCorrect)

	_, rejected := v.Validate([]domain.Issue{issue("x.png", 1)}, idx)
	require.Len(t, rejected, 1)
	assert.Equal(t, domain.ReasonBinaryFile, rejected[0].Reason)
}

const renamedDiff = `diff --git a/old.rs b/new.rs
similarity index 90%
rename from old.rs
rename to new.rs
index 1111111..2222222 100644
--- a/old.rs
+++ b/new.rs
@@ -10,5 +10,6 @@
 c1
-d1
+a1
+a2
 c2
 c3
 c4
`

func TestValidate_RenameAutoCorrect(t *testing.T) {
	idx := buildIndex(t, renamedDiff)
	v := validate.New(validate.PolicyAutoCorrect)

	accepted, rejected := v.Validate([]domain.Issue{issue("old.rs", 12)}, idx)

	require.Len(t, accepted, 1)
	require.Empty(t, rejected)
	assert.Equal(t, "new.rs", accepted[0].File)
	assert.Equal(t, 12, accepted[0].Line)
	assert.Equal(t, "old.rs", accepted[0].CorrectedFrom)
	assert.Equal(t, "old.rs", accepted[0].Issue.File, "original issue left untouched")
}

func TestValidate_RenameStrictRejects(t *testing.T) {
	idx := buildIndex(t, renamedDiff)
	v := validate.New(validate.PolicyStrict)

	// One policy for every renamed-path issue, valid line or not.
	_, rejected := v.Validate([]domain.Issue{issue("old.rs", 12), issue("old.rs", 500)}, idx)

	require.Len(t, rejected, 2)
	for _, out := range rejected {
		assert.Equal(t, domain.ReasonStaleRenamedPath, out.Reason)
		assert.Equal(t, []domain.LineRange{{Start: 10, End: 15}}, out.ValidRanges)
	}
}

func TestValidate_RenameNewPathStillValidates(t *testing.T) {
	idx := buildIndex(t, renamedDiff)
	v := validate.New(validate.PolicyStrict)

	accepted, _ := v.Validate([]domain.Issue{issue("new.rs", 12)}, idx)
	require.Len(t, accepted, 1)
}

func TestValidate_NilIndexPanics(t *testing.T) {
	v := validate.New(validate.PolicyAutoCorrect)
	assert.Panics(t, func() {
		v.Validate([]domain.Issue{issue("a.rs", 1)}, nil)
	})
}

func TestNew_DefaultsToAutoCorrect(t *testing.T) {
	assert.Equal(t, validate.PolicyAutoCorrect, validate.New("").Policy())
}
