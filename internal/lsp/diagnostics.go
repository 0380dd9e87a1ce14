// Package lsp contracts the shape a language-server frontend exchanges with
// this analyzer. Per spec.md §1, the LSP transport itself (JSON-RPC framing,
// the server loop, document sync, the watcher) is out of scope as a separate
// collaborator here — only its wire contract is: URIs in and out, byte
// offsets translated to/from LSP's UTF-16 Positions, and the shape of a
// publishDiagnostics notification built from a diag.Bag. A frontend process
// wraps driver.Analysis, uses these conversions at its edges, and owns the
// actual protocol loop.
package lsp

import (
	"sort"

	"millet/internal/diag"
	"millet/internal/source"
)

// DiagnosticSeverity mirrors LSP's 1-based severity enum (Error=1 down to
// Hint=4); this analyzer never emits Hint, only the three diag.Severity
// levels.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
)

func severityForDiag(sev diag.Severity) DiagnosticSeverity {
	switch sev {
	case diag.SevError:
		return SeverityError
	case diag.SevWarning:
		return SeverityWarning
	default:
		return SeverityInformation
	}
}

// RelatedInformation mirrors LSP's DiagnosticRelatedInformation, used for
// diag.Note entries that point at a different span than the primary one.
type RelatedInformation struct {
	URI     string `json:"uri"`
	Range   Range  `json:"range"`
	Message string `json:"message"`
}

// Diagnostic mirrors the wire shape of one entry in a publishDiagnostics
// notification's diagnostics array.
type Diagnostic struct {
	Range              Range              `json:"range"`
	Severity           DiagnosticSeverity `json:"severity"`
	Code               string             `json:"code"`
	Source             string             `json:"source"`
	Message            string             `json:"message"`
	RelatedInformation []RelatedInformation `json:"relatedInformation,omitempty"`
}

// PublishDiagnosticsParams mirrors LSP's textDocument/publishDiagnostics
// notification params for a single document.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// diagnosticSource is the LSP "source" field every diagnostic is tagged
// with, identifying which analyzer produced it.
const diagnosticSource = "millet"

// BuildPublishDiagnostics converts one file's accumulated diag.Bag into the
// publishDiagnostics shape a frontend would send for that file's URI. Every
// note, whether its span lies in the diagnostic's own file or another one,
// becomes a RelatedInformation entry located via pathForFile; no note is
// folded into the message text.
func BuildPublishDiagnostics(fset *source.FileSet, file *source.File, path string, bag *diag.Bag, pathForFile func(source.FileID) string) PublishDiagnosticsParams {
	out := PublishDiagnosticsParams{URI: PathToURI(path)}
	if bag == nil {
		return out
	}
	items := append([]diag.Diagnostic(nil), bag.Items()...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Primary.Start < items[j].Primary.Start
	})
	for _, d := range items {
		lspDiag := Diagnostic{
			Range:    RangeForSpan(file, d.Primary),
			Severity: severityForDiag(d.Severity),
			Code:     d.Code.String(),
			Source:   diagnosticSource,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			notePath := path
			noteFile := file
			if pathForFile != nil {
				if p := pathForFile(n.Span.File); p != "" {
					notePath = p
				}
			}
			if n.Span.File != d.Primary.File && fset != nil {
				noteFile = fset.Get(n.Span.File)
			}
			lspDiag.RelatedInformation = append(lspDiag.RelatedInformation, RelatedInformation{
				URI:     PathToURI(notePath),
				Range:   RangeForSpan(noteFile, n.Span),
				Message: n.Msg,
			})
		}
		out.Diagnostics = append(out.Diagnostics, lspDiag)
	}
	return out
}
