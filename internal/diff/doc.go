// Package diff parses unified diff text into structured types and
// derives the per-file line ranges a hunk-based diff makes addressable.
package diff
