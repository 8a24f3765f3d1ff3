package domain

import "fmt"

// LineRange is an inclusive [Start, End] range of 1-based NEW-file line
// numbers.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether line falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// String renders the range as "[start,end]" for skip reports.
func (r LineRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// FormatRanges renders a range list as "[a,b], [c,d]" for human-facing
// messages.
func FormatRanges(ranges []LineRange) string {
	if len(ranges) == 0 {
		return "(none)"
	}
	out := ""
	for i, r := range ranges {
		if i > 0 {
			out += ", "
		}
		out += r.String()
	}
	return out
}
