package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/width"

	"millet/internal/diag"
	"millet/internal/source"
)

const tabWidth = 8

// runeVisualWidth is the column width of r: tabs are handled by the
// caller, East-Asian wide/fullwidth runes (per golang.org/x/text/width's
// classification) count as 2 columns, everything else defers to
// go-runewidth's table.
func runeVisualWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return runewidth.RuneWidth(r)
	}
}

// visualWidthUpTo computes the on-screen column of the byteCol'th byte of
// s (0-based, as source.LineCol.Col is in this project), expanding tabs to
// the next multiple of tabWidth and widening East-Asian runes.
func visualWidthUpTo(s string, byteCol uint32, tw int) int {
	bytePos := 0
	visualPos := 0
	for _, r := range s {
		if bytePos >= int(byteCol) {
			break
		}
		if r == '\t' {
			visualPos = (visualPos/tw + 1) * tw
		} else {
			visualPos += runeVisualWidth(r)
		}
		bytePos += len(string(r))
	}
	return visualPos
}

// formatPath renders f's path per mode: this project's source.File has no
// FormatPath method (unlike the teacher's), so path-mode display is done
// here directly with path/filepath.
func formatPath(p string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeRelative:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, p); err == nil {
				return rel
			}
		}
		return p
	case PathModeAuto:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, p); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
		return p
	default:
		return p
	}
}

var (
	errorColor     = color.New(color.FgRed, color.Bold)
	warningColor   = color.New(color.FgYellow, color.Bold)
	infoColor      = color.New(color.FgCyan, color.Bold)
	pathColor      = color.New(color.FgWhite, color.Bold)
	codeColor      = color.New(color.FgMagenta)
	lineNumColor   = color.New(color.FgBlue)
	underlineColor = color.New(color.FgRed, color.Bold)
)

func sevColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// Pretty writes bag's diagnostics (bag.Sort() is assumed to have already
// been called by the caller) to w as colorized text: one header line per
// diagnostic, a few lines of source context, a `^~~~` underline under the
// primary span, and any notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	prevNoColor := color.NoColor
	defer func() { color.NoColor = prevNoColor }()
	color.NoColor = !opts.Color

	context := opts.Context
	if context <= 0 {
		context = 2
	}

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w)
		}
		printOne(w, d, fs, opts, context)
	}

	if opts.Summary {
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderSummary(bag, opts.Color))
	}
}

func printOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, context int) {
	startLC, endLC := fs.Resolve(d.Primary)
	f := fs.Get(d.Primary.File)
	displayPath := formatPath(f.Path, opts.PathMode, opts.BaseDir)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		pathColor.Sprint(displayPath),
		startLC.Line, startLC.Col+1,
		sevColor(d.Severity).Sprint(d.Severity.String()),
		codeColor.Sprint(d.Code.String()),
		d.Message,
	)

	totalLines := uint32(len(f.LineIdx)) + 1

	startLine := startLC.Line
	if startLine > uint32(context) {
		startLine -= uint32(context)
	} else {
		startLine = 1
	}
	endLine := startLC.Line + uint32(context)
	if endLine > totalLines {
		endLine = totalLines
	}

	if startLine > 1 {
		fmt.Fprintln(w, "...")
	}

	lineNumWidth := len(fmt.Sprintf("%d", endLine))
	if lineNumWidth < 3 {
		lineNumWidth = 3
	}

	for lineNum := startLine; lineNum <= endLine; lineNum++ {
		text := f.GetLine(lineNum)
		gutter := fmt.Sprintf("%*d | ", lineNumWidth, lineNum)
		fmt.Fprintf(w, "%s%s\n", lineNumColor.Sprint(gutter), text)

		if lineNum != startLC.Line {
			continue
		}
		startCol := startLC.Col
		endCol := endLC.Col
		if endLC.Line > startLC.Line {
			endCol = uint32(len(text))
		}
		visStart := visualWidthUpTo(text, startCol, tabWidth)
		visEnd := visualWidthUpTo(text, endCol, tabWidth)

		var u strings.Builder
		for range lineNumWidth + 3 {
			u.WriteByte(' ')
		}
		for range visStart {
			u.WriteByte(' ')
		}
		span := visEnd - visStart
		if span <= 0 {
			u.WriteByte('^')
		} else {
			for i := 0; i < span; i++ {
				if i == span-1 {
					u.WriteByte('^')
				} else {
					u.WriteByte('~')
				}
			}
		}
		fmt.Fprintln(w, underlineColor.Sprint(u.String()))
	}

	if endLine < totalLines {
		fmt.Fprintln(w, "...")
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			notePath := formatPath(nf.Path, opts.PathMode, opts.BaseDir)
			noteLC, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
				infoColor.Sprint("note"),
				pathColor.Sprint(notePath),
				noteLC.Line, noteLC.Col+1,
				n.Msg,
			)
		}
	}
}

// renderSummary draws a lipgloss-bordered error/warning/info count line.
func renderSummary(bag *diag.Bag, useColor bool) string {
	var errs, warns, infos int
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		default:
			infos++
		}
	}
	body := fmt.Sprintf("%d error(s)  %d warning(s)  %d note(s)", errs, warns, infos)

	style := lipgloss.NewStyle().Padding(0, 1)
	if useColor {
		borderColor := lipgloss.Color("2")
		if errs > 0 {
			borderColor = lipgloss.Color("1")
		} else if warns > 0 {
			borderColor = lipgloss.Color("3")
		}
		style = style.Border(lipgloss.RoundedBorder()).BorderForeground(borderColor)
	} else {
		style = style.Border(lipgloss.NormalBorder())
	}
	return style.Render(body)
}
