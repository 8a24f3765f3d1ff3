package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/linegate/internal/domain"
)

func TestHunkNewRange(t *testing.T) {
	tests := []struct {
		name string
		hunk domain.Hunk
		want domain.LineRange
		ok   bool
	}{
		{
			name: "typical hunk",
			hunk: domain.Hunk{OldStart: 10, OldCount: 6, NewStart: 10, NewCount: 7},
			want: domain.LineRange{Start: 10, End: 16},
			ok:   true,
		},
		{
			name: "single line",
			hunk: domain.Hunk{OldStart: 5, OldCount: 1, NewStart: 5, NewCount: 1},
			want: domain.LineRange{Start: 5, End: 5},
			ok:   true,
		},
		{
			name: "pure deletion",
			hunk: domain.Hunk{OldStart: 20, OldCount: 3, NewStart: 19, NewCount: 0},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.hunk.NewRange()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFileDiffPath(t *testing.T) {
	modified := domain.FileDiff{OldPath: "a.go", NewPath: "a.go", Status: domain.FileStatusModified}
	assert.Equal(t, "a.go", modified.Path())

	renamed := domain.FileDiff{OldPath: "old.go", NewPath: "new.go", Status: domain.FileStatusRenamed}
	assert.Equal(t, "new.go", renamed.Path())

	deleted := domain.FileDiff{OldPath: "gone.go", Status: domain.FileStatusDeleted}
	assert.Equal(t, "gone.go", deleted.Path())
}

func TestLineRangeContains(t *testing.T) {
	r := domain.LineRange{Start: 10, End: 16}

	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(16))
	assert.True(t, r.Contains(13))
	assert.False(t, r.Contains(9))
	assert.False(t, r.Contains(17))
}

func TestFormatRanges(t *testing.T) {
	assert.Equal(t, "(none)", domain.FormatRanges(nil))
	assert.Equal(t, "[1,5]", domain.FormatRanges([]domain.LineRange{{Start: 1, End: 5}}))
	assert.Equal(t, "[10,16], [51,54]", domain.FormatRanges([]domain.LineRange{
		{Start: 10, End: 16},
		{Start: 51, End: 54},
	}))
}
