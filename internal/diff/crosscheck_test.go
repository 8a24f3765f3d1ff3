package diff_test

import (
	"testing"

	godiff "github.com/sourcegraph/go-diff/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/linegate/internal/diff"
)

// The hunk coordinates this parser extracts feed directly into comment
// placement, so they are checked against an independent parser on the
// same fixture.
func TestParse_HunkNumbersAgreeWithGoDiff(t *testing.T) {
	ours, err := diff.Parse(modifiedFileDiff)
	require.NoError(t, err)

	theirs, err := godiff.ParseMultiFileDiff([]byte(modifiedFileDiff))
	require.NoError(t, err)

	require.Len(t, ours.Files, 1)
	require.Len(t, theirs, 1)
	require.Len(t, ours.Files[0].Hunks, len(theirs[0].Hunks))

	for i, h := range ours.Files[0].Hunks {
		ref := theirs[0].Hunks[i]
		assert.EqualValues(t, ref.OrigStartLine, h.OldStart, "hunk %d old start", i)
		assert.EqualValues(t, ref.OrigLines, h.OldCount, "hunk %d old count", i)
		assert.EqualValues(t, ref.NewStartLine, h.NewStart, "hunk %d new start", i)
		assert.EqualValues(t, ref.NewLines, h.NewCount, "hunk %d new count", i)
	}
}
