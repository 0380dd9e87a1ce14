package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"millet/internal/diag"
	"millet/internal/source"
)

// NoteRecord is a Note in machine-readable form.
type NoteRecord struct {
	Line uint32 `json:"line" msgpack:"line"`
	Col  uint32 `json:"col" msgpack:"col"`
	Msg  string `json:"msg" msgpack:"msg"`
}

// DiagnosticRecord is a Diagnostic in machine-readable form, line/col
// already resolved so a consumer needs no source.FileSet of its own.
type DiagnosticRecord struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Line     uint32       `json:"line" msgpack:"line"`
	Col      uint32       `json:"col" msgpack:"col"`
	Message  string       `json:"message" msgpack:"message"`
	Notes    []NoteRecord `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// FileReport groups one path's diagnostics together.
type FileReport struct {
	Path        string             `json:"path" msgpack:"path"`
	Diagnostics []DiagnosticRecord `json:"diagnostics" msgpack:"diagnostics"`
}

// Report is the top-level shape encoded by JSON and Msgpack: one entry
// per analyzed path, sorted by path for stable output (spec.md §4.8's
// `PathMap<Vec<Error>>`, flattened for a non-Go consumer).
type Report struct {
	Files []FileReport `json:"files" msgpack:"files"`
}

// BuildReport resolves each bag's diagnostics against fs into a Report.
// files maps a display path to that path's merged diagnostics.
func BuildReport(fs *source.FileSet, files map[string]*diag.Bag) Report {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	report := Report{Files: make([]FileReport, 0, len(paths))}
	for _, p := range paths {
		bag := files[p]
		fr := FileReport{Path: p, Diagnostics: make([]DiagnosticRecord, 0, bag.Len())}
		for _, d := range bag.Items() {
			lc, _ := fs.Resolve(d.Primary)
			rec := DiagnosticRecord{
				Severity: d.Severity.String(),
				Code:     d.Code.String(),
				Line:     lc.Line,
				Col:      lc.Col + 1,
				Message:  d.Message,
			}
			for _, n := range d.Notes {
				nlc, _ := fs.Resolve(n.Span)
				rec.Notes = append(rec.Notes, NoteRecord{Line: nlc.Line, Col: nlc.Col + 1, Msg: n.Msg})
			}
			fr.Diagnostics = append(fr.Diagnostics, rec)
		}
		report.Files = append(report.Files, fr)
	}
	return report
}

// JSON writes report to w as indented JSON (spec.md §4.8's `--format
// json`; SPEC_FULL.md §2 keeps this on the standard library since
// encoding/json is the format's own name, not a third-party concern).
func JSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Msgpack writes report to w as msgpack, the sibling one-shot machine
// encoding SPEC_FULL.md §4 adds alongside --format json.
func Msgpack(w io.Writer, report Report) error {
	return msgpack.NewEncoder(w).Encode(report)
}
