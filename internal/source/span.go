// Package source holds the file set, byte spans, and line/column
// resolution shared by every later pass (lexer, parser, statics, ...).
package source

import "fmt"

// FileID identifies a loaded file's content within a FileSet.
type FileID uint32

// Span is a contiguous byte range within a single file.
type Span struct {
	File  FileID
	Start uint32 // inclusive
	End   uint32 // exclusive
}

// Empty reports whether the span has zero length.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the length of the span in bytes.
func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// If the spans belong to different files, s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// LineCol is a 1-based line and 0-based column (in bytes).
type LineCol struct {
	Line uint32
	Col  uint32
}
