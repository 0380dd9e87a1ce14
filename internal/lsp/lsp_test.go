package lsp_test

import (
	"testing"

	"millet/internal/diag"
	"millet/internal/lsp"
	"millet/internal/source"
)

func TestURIPathRoundTrip(t *testing.T) {
	path := "/tmp/project/main.mlb"
	uri := lsp.PathToURI(path)
	if uri != "file:///tmp/project/main.mlb" {
		t.Fatalf("unexpected URI: %s", uri)
	}
	if got := lsp.URIToPath(uri); got != path {
		t.Fatalf("round trip mismatch: got %s, want %s", got, path)
	}
}

func TestURIToPathRejectsNonFileScheme(t *testing.T) {
	if got := lsp.URIToPath("untitled:Untitled-1"); got != "" {
		t.Fatalf("expected empty path for non-file scheme, got %q", got)
	}
}

func TestPositionOffsetRoundTripAcrossLinesAndAstral(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.Add("snippet.sml", []byte("val x = 1\nval s = \"é🙂\"\nval n = x;\n"), 0)
	file := fset.Get(id)

	line2Start := uint32(10) // right after the first '\n'
	off := lsp.OffsetForPosition(file, lsp.Position{Line: 1, Character: 0})
	if off != line2Start {
		t.Fatalf("expected offset %d for start of line 1, got %d", line2Start, off)
	}

	for _, want := range []lsp.Position{
		{Line: 0, Character: 0},
		{Line: 1, Character: 8},
		{Line: 2, Character: 3},
	} {
		gotOff := lsp.OffsetForPosition(file, want)
		gotPos := lsp.PositionForOffset(file, gotOff)
		if gotPos != want {
			t.Fatalf("round trip mismatch for %+v: got %+v (via offset %d)", want, gotPos, gotOff)
		}
	}
}

func TestBuildPublishDiagnosticsIncludesRelatedInformation(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.Add("a.sml", []byte("val x = x;\n"), 0)
	file := fset.Get(id)

	primary := source.Span{File: id, Start: 8, End: 9}
	note := source.Span{File: id, Start: 4, End: 5}
	bag := diag.NewBag()
	bag.Add(diag.NewError(diag.StaticsCircularity, primary, "circular type").WithNote(note, "first used here"))

	params := lsp.BuildPublishDiagnostics(fset, file, "a.sml", bag, func(source.FileID) string { return "a.sml" })
	if params.URI != lsp.PathToURI("a.sml") {
		t.Fatalf("unexpected URI: %s", params.URI)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Severity != lsp.SeverityError {
		t.Fatalf("expected error severity, got %v", d.Severity)
	}
	if len(d.RelatedInformation) != 1 || d.RelatedInformation[0].Message != "first used here" {
		t.Fatalf("expected related information carrying the note, got %+v", d.RelatedInformation)
	}
}
