// Package diagfmt renders a diag.Bag for humans (colorized terminal
// output with source-excerpt underlines) and for machines (JSON,
// msgpack), grounded on the teacher's own internal/diagfmt package but
// adapted to this project's simpler diag.Diagnostic (no Fixes, and
// source.LineCol.Col is 0-based rather than 1-based).
package diagfmt

// PathMode controls how a diagnostic's file path is displayed.
type PathMode uint8

const (
	// PathModeAuto displays a path relative to the configured base
	// directory when possible, falling back to the path as stored.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always shows an absolute path.
	PathModeAbsolute
	// PathModeRelative always shows a path relative to BaseDir.
	PathModeRelative
	// PathModeBasename shows only the file's final path component.
	PathModeBasename
)

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int // lines of context above/below the primary span
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
	// Summary, when set, renders a lipgloss-boxed error/warning/info
	// count after the diagnostics themselves.
	Summary bool
}
