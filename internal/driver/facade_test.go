package driver

import (
	"context"
	"testing"

	"millet/internal/diag"
)

func TestGetManyElaboratesAcyclicGroupGraph(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/sources.cm", `
Group is
	a.sml
	sub/sources.cm
`)
	fs.put("/proj/a.sml", "val x = 1;")
	fs.put("/proj/sub/sources.cm", "Group is b.sml")
	fs.put("/proj/sub/b.sml", "val y = true;")

	a := NewAnalysis(fs, "/proj", 4)
	results, topErrs, err := a.GetMany(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if topErrs.HasErrors() {
		t.Fatalf("unexpected top-level errors: %v", topErrs.Items())
	}
	if len(results) != 2 {
		t.Fatalf("results = %v, want 2 files", results)
	}
	for id, af := range results {
		if af.AllErrors().HasErrors() {
			t.Fatalf("file %v: unexpected diagnostics: %v", id, af.AllErrors().Items())
		}
	}
}

func TestGetManyReportsCycle(t *testing.T) {
	fs := newMapFS()
	fs.put("/proj/sources.cm", `
Group is
	a.sml
	b.cm
`)
	fs.put("/proj/a.sml", "val x = 1;")
	fs.put("/proj/b.cm", `
Group is
	sources.cm
`)

	a := NewAnalysis(fs, "/proj", 2)
	_, topErrs, err := a.GetMany(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if !topErrs.HasErrors() {
		t.Fatal("expected a cycle diagnostic")
	}
	found := false
	for _, d := range topErrs.Items() {
		if d.Code == diag.InputCycle {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an InputCycle diagnostic, got %v", topErrs.Items())
	}
}

func TestGetOneAnalyzesDetachedBuffer(t *testing.T) {
	fs := newMapFS()
	a := NewAnalysis(fs, "/proj", 1)
	af := a.GetOne("scratch.sml", []byte("val x = 1;"))
	if af.AllErrors().HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", af.AllErrors().Items())
	}
}
