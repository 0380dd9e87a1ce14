package source

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// FileFlags records normalization performed on load.
type FileFlags uint8

const (
	FileHadBOM FileFlags = 1 << iota
	FileNormalizedCRLF
	FileVirtual
)

// File is the content and derived metadata for one loaded source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n' bytes, ascending
	Hash    [sha256.Size]byte
	Flags   FileFlags
}

// GetLine returns the 1-based line's text, or "" if out of range.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	var start uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	var end uint32
	if (lineNum - 1) < lenIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}

// FileSet owns the loaded files for one analysis call and resolves spans
// into line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Add stores content under path and returns a fresh FileID. Re-adding the
// same path yields a new id and replaces the "latest" lookup entry; earlier
// ids remain valid and resolvable (matches the lexer/parser/elaborator
// contract that an Idx never changes meaning once produced).
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.index[path] = id
	return id
}

// AddVirtual adds content that has no corresponding on-disk path, e.g. an
// unsaved editor buffer passed to Analysis.GetOne.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id. Panics if id is out of range, matching the
// arena convention that ids are only ever handed out by this FileSet.
func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

// GetLatest returns the most recently added FileID for path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.index[path]
	return id, ok
}

// Resolve converts a span into start/end line-column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 64)
	for i, b := range content {
		if b == '\n' {
			n, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line index overflow: %w", err))
			}
			idx = append(idx, n)
		}
	}
	return idx
}

func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	// lineIdx[i] is the offset of the newline ending line i+1 (1-based).
	line := uint32(sort.Search(len(lineIdx), func(i int) bool {
		return lineIdx[i] >= offset
	})) + 1
	var lineStart uint32
	if line > 1 {
		lineStart = lineIdx[line-2] + 1
	}
	return LineCol{Line: line, Col: offset - lineStart}
}
