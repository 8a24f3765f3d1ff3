package diff

import (
	"sort"

	"github.com/bkyoung/linegate/internal/domain"
)

// RangeIndex maps each NEW-side path of a DiffSet to the ordered,
// non-overlapping line ranges a review comment may target. It is built
// once per DiffSet, never mutated afterwards, and therefore safe to
// share across concurrent validation calls for the same PR.
type RangeIndex struct {
	ranges  map[string][]domain.LineRange
	status  map[string]domain.FileStatus
	renames map[string]string // oldPath -> newPath
}

// BuildIndex derives the addressable NEW-file line ranges for every
// file of the DiffSet. Deleted and binary files are indexed with empty
// range lists so lookups can distinguish "no addressable lines" from
// "not in the diff at all". Renamed files index under their new path
// with a reverse entry from the stale one.
func BuildIndex(ds domain.DiffSet) *RangeIndex {
	idx := &RangeIndex{
		ranges:  make(map[string][]domain.LineRange, len(ds.Files)),
		status:  make(map[string]domain.FileStatus, len(ds.Files)),
		renames: make(map[string]string),
	}

	for _, fd := range ds.Files {
		path := fd.Path()
		idx.status[path] = fd.Status

		if fd.Status == domain.FileStatusRenamed && fd.OldPath != fd.NewPath {
			idx.renames[fd.OldPath] = fd.NewPath
		}

		ranges := make([]domain.LineRange, 0, len(fd.Hunks))
		for _, h := range fd.Hunks {
			if r, ok := h.NewRange(); ok {
				ranges = append(ranges, r)
			}
		}

		// Hunks arrive in increasing NewStart order by diff-format
		// construction; merging is defensive against pathological input.
		idx.ranges[path] = mergeRanges(ranges)
	}

	return idx
}

// Ranges returns the addressable ranges for path. ok is false when the
// path does not appear in the diff at all; an empty (but ok) result
// means the file is present with no addressable NEW-side lines.
func (idx *RangeIndex) Ranges(path string) ([]domain.LineRange, bool) {
	r, ok := idx.ranges[path]
	return r, ok
}

// Status returns the diff status recorded for path.
func (idx *RangeIndex) Status(path string) (domain.FileStatus, bool) {
	s, ok := idx.status[path]
	return s, ok
}

// RenamedTo resolves a stale pre-rename path to the current one.
func (idx *RangeIndex) RenamedTo(oldPath string) (string, bool) {
	newPath, ok := idx.renames[oldPath]
	return newPath, ok
}

// Contains reports whether line is addressable in path. The range list
// is ordered, so a binary search finds the candidate range.
func (idx *RangeIndex) Contains(path string, line int) bool {
	ranges, ok := idx.ranges[path]
	if !ok {
		return false
	}
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].End >= line
	})
	return i < len(ranges) && ranges[i].Contains(line)
}

// Files lists every indexed NEW-side path, in no particular order.
func (idx *RangeIndex) Files() []string {
	files := make([]string, 0, len(idx.ranges))
	for path := range idx.ranges {
		files = append(files, path)
	}
	return files
}

// mergeRanges sorts and unions adjacent or overlapping ranges.
func mergeRanges(ranges []domain.LineRange) []domain.LineRange {
	if len(ranges) <= 1 {
		return ranges
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
