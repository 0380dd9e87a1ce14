package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"

	"millet/internal/source"
)

// Position is a zero-based line and UTF-16 code unit offset, the shape the
// Language Server Protocol specifies for textDocument positions.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open [Start, End) pair of Positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return ^uint32(0)
	}
	return v
}

// OffsetForPosition converts an LSP Position into this analyzer's byte
// offset within file, for turning an incoming textDocument/didChange edit
// into a source.Span.
func OffsetForPosition(file *source.File, pos Position) uint32 {
	if file == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	content := file.Content
	if len(content) == 0 {
		return 0
	}
	lineCount := len(file.LineIdx) + 1
	contentLen := safeUint32(len(content))
	if pos.Line >= lineCount {
		return contentLen
	}
	var lineStart uint32
	if pos.Line > 0 {
		lineStart = file.LineIdx[pos.Line-1] + 1
	}
	lineEnd := contentLen
	if pos.Line < len(file.LineIdx) {
		lineEnd = file.LineIdx[pos.Line]
	}
	if lineStart > lineEnd {
		return lineEnd
	}
	units := 0
	off := lineStart
	for off < lineEnd {
		r, size := utf8.DecodeRune(content[off:lineEnd])
		if r == utf8.RuneError && size == 1 {
			size = 1
		}
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		off += safeUint32(size)
		if units == pos.Character {
			break
		}
	}
	return off
}

// PositionForOffset is OffsetForPosition's inverse, for turning a
// source.Span into the Range a publishDiagnostics notification reports.
func PositionForOffset(file *source.File, offset uint32) Position {
	if file == nil {
		return Position{}
	}
	contentLen := safeUint32(len(file.Content))
	if offset > contentLen {
		offset = contentLen
	}
	lineIdx := file.LineIdx
	idx := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	line := idx
	var lineStart uint32
	if idx > 0 {
		lineStart = lineIdx[idx-1] + 1
	}
	if lineStart > offset {
		lineStart = offset
	}
	units := 0
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		if r == utf8.RuneError && size == 1 {
			size = 1
		}
		if off+safeUint32(size) > offset {
			break
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		off += safeUint32(size)
	}
	return Position{Line: line, Character: units}
}

// RangeForSpan converts a source.Span into the Range a publishDiagnostics
// notification would carry for it.
func RangeForSpan(file *source.File, span source.Span) Range {
	if file == nil {
		return Range{}
	}
	return Range{
		Start: PositionForOffset(file, span.Start),
		End:   PositionForOffset(file, span.End),
	}
}
