package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/linegate/internal/diff"
	"github.com/bkyoung/linegate/internal/domain"
)

func TestBuildIndex_DisjointHunks(t *testing.T) {
	ds := domain.DiffSet{Files: []domain.FileDiff{{
		OldPath: "svc/handler.go",
		NewPath: "svc/handler.go",
		Status:  domain.FileStatusModified,
		Hunks: []domain.Hunk{
			{OldStart: 10, OldCount: 5, NewStart: 10, NewCount: 6},
			{OldStart: 50, OldCount: 8, NewStart: 51, NewCount: 12},
		},
	}}}

	idx := diff.BuildIndex(ds)

	ranges, ok := idx.Ranges("svc/handler.go")
	require.True(t, ok)
	assert.Equal(t, []domain.LineRange{{Start: 10, End: 15}, {Start: 51, End: 62}}, ranges)

	assert.True(t, idx.Contains("svc/handler.go", 10))
	assert.True(t, idx.Contains("svc/handler.go", 15))
	assert.True(t, idx.Contains("svc/handler.go", 62))
	assert.False(t, idx.Contains("svc/handler.go", 30))
	assert.False(t, idx.Contains("svc/handler.go", 9))
	assert.False(t, idx.Contains("svc/handler.go", 63))
}

func TestBuildIndex_AddedFileCoversWholeFile(t *testing.T) {
	ds := domain.DiffSet{Files: []domain.FileDiff{{
		OldPath: "a.rs",
		NewPath: "a.rs",
		Status:  domain.FileStatusAdded,
		Hunks:   []domain.Hunk{{OldStart: 0, OldCount: 0, NewStart: 1, NewCount: 50}},
	}}}

	idx := diff.BuildIndex(ds)

	ranges, ok := idx.Ranges("a.rs")
	require.True(t, ok)
	assert.Equal(t, []domain.LineRange{{Start: 1, End: 50}}, ranges)

	assert.False(t, idx.Contains("a.rs", 0))
	assert.True(t, idx.Contains("a.rs", 1))
	assert.True(t, idx.Contains("a.rs", 50))
	assert.False(t, idx.Contains("a.rs", 51))
}

func TestBuildIndex_DeletedAndBinaryFilesHaveNoRangesButAreIndexed(t *testing.T) {
	ds := domain.DiffSet{Files: []domain.FileDiff{
		{
			OldPath: "gone.go",
			NewPath: "gone.go",
			Status:  domain.FileStatusDeleted,
			Hunks:   []domain.Hunk{{OldStart: 1, OldCount: 30, NewStart: 0, NewCount: 0}},
		},
		{
			OldPath: "logo.png",
			NewPath: "logo.png",
			Status:  domain.FileStatusBinary,
		},
	}}

	idx := diff.BuildIndex(ds)

	for _, path := range []string{"gone.go", "logo.png"} {
		ranges, ok := idx.Ranges(path)
		require.True(t, ok, "%s must be indexed", path)
		assert.Empty(t, ranges)
		assert.False(t, idx.Contains(path, 1))
	}

	status, ok := idx.Status("gone.go")
	require.True(t, ok)
	assert.Equal(t, domain.FileStatusDeleted, status)
	status, ok = idx.Status("logo.png")
	require.True(t, ok)
	assert.Equal(t, domain.FileStatusBinary, status)
}

func TestBuildIndex_RenameReverseLookup(t *testing.T) {
	ds := domain.DiffSet{Files: []domain.FileDiff{{
		OldPath: "old.rs",
		NewPath: "new.rs",
		Status:  domain.FileStatusRenamed,
		Hunks:   []domain.Hunk{{OldStart: 10, OldCount: 5, NewStart: 10, NewCount: 6}},
	}}}

	idx := diff.BuildIndex(ds)

	newPath, ok := idx.RenamedTo("old.rs")
	require.True(t, ok)
	assert.Equal(t, "new.rs", newPath)

	_, ok = idx.Ranges("old.rs")
	assert.False(t, ok, "ranges index only the new path")

	ranges, ok := idx.Ranges("new.rs")
	require.True(t, ok)
	assert.Equal(t, []domain.LineRange{{Start: 10, End: 15}}, ranges)
}

func TestBuildIndex_MergesAdjacentAndOverlappingRanges(t *testing.T) {
	ds := domain.DiffSet{Files: []domain.FileDiff{{
		OldPath: "m.go",
		NewPath: "m.go",
		Status:  domain.FileStatusModified,
		Hunks: []domain.Hunk{
			{OldStart: 1, OldCount: 5, NewStart: 1, NewCount: 5},
			{OldStart: 6, OldCount: 4, NewStart: 6, NewCount: 4}, // adjacent
			{OldStart: 8, OldCount: 3, NewStart: 8, NewCount: 3}, // overlapping
			{OldStart: 20, OldCount: 2, NewStart: 20, NewCount: 2},
		},
	}}}

	idx := diff.BuildIndex(ds)

	ranges, ok := idx.Ranges("m.go")
	require.True(t, ok)
	assert.Equal(t, []domain.LineRange{{Start: 1, End: 10}, {Start: 20, End: 21}}, ranges)
}

func TestBuildIndex_PureDeletionHunkContributesNothing(t *testing.T) {
	ds := domain.DiffSet{Files: []domain.FileDiff{{
		OldPath: "d.go",
		NewPath: "d.go",
		Status:  domain.FileStatusModified,
		Hunks: []domain.Hunk{
			{OldStart: 5, OldCount: 3, NewStart: 4, NewCount: 0}, // deletion only
			{OldStart: 30, OldCount: 2, NewStart: 27, NewCount: 2},
		},
	}}}

	idx := diff.BuildIndex(ds)

	ranges, ok := idx.Ranges("d.go")
	require.True(t, ok)
	assert.Equal(t, []domain.LineRange{{Start: 27, End: 28}}, ranges)
}

func TestBuildIndex_EndToEndFromParsedDiff(t *testing.T) {
	ds, err := diff.Parse(modifiedFileDiff)
	require.NoError(t, err)

	idx := diff.BuildIndex(ds)

	ranges, ok := idx.Ranges("internal/server.go")
	require.True(t, ok)
	assert.Equal(t, []domain.LineRange{{Start: 10, End: 16}, {Start: 51, End: 54}}, ranges)
}
