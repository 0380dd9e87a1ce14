package project

import (
	"testing"

	"millet/internal/diag"
)

func parseGroup(t *testing.T, src string) (isLibrary bool, exports []Export, members []rawMember, errs *diag.Bag) {
	t.Helper()
	errs = diag.NewBag()
	toks := scan(1, src)
	isLibrary, exports, members = parseGroupFile(toks, errs)
	return
}

func TestParseGroupFileBasic(t *testing.T) {
	isLibrary, exports, members, errs := parseGroup(t, `
Library
	structure Foo
	signature FOO
is
	foo.sml
	foo.sig : sig
	sub.cm
`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Items())
	}
	if !isLibrary {
		t.Fatal("expected a Library")
	}
	if len(exports) != 2 {
		t.Fatalf("exports = %v, want 2", exports)
	}
	if exports[0].Kind != ExportName || exports[0].Namespace != NamespaceStructure || exports[0].Name != "Foo" {
		t.Fatalf("exports[0] = %+v", exports[0])
	}
	if exports[1].Namespace != NamespaceSignature || exports[1].Name != "FOO" {
		t.Fatalf("exports[1] = %+v", exports[1])
	}
	if len(members) != 3 {
		t.Fatalf("members = %v, want 3", members)
	}
	if members[1].class != "sig" {
		t.Fatalf("members[1].class = %q, want sig", members[1].class)
	}
}

func TestParseGroupFileLibraryRequiresExport(t *testing.T) {
	_, _, _, errs := parseGroup(t, `
Library is
	foo.sml
`)
	if !errs.HasErrors() {
		t.Fatal("expected an empty-export-list error")
	}
}

func TestParseGroupFilePlainGroupNeedsNoExport(t *testing.T) {
	isLibrary, exports, members, errs := parseGroup(t, `
Group is
	foo.sml
	bar.sml
`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Items())
	}
	if isLibrary {
		t.Fatal("expected a Group, not a Library")
	}
	if len(exports) != 0 || len(members) != 2 {
		t.Fatalf("exports=%v members=%v", exports, members)
	}
}

func TestParseGroupFileLibraryAndSourceExports(t *testing.T) {
	isLibrary, exports, _, errs := parseGroup(t, `
Library
	library(stdlib)
	source(-)
is
	foo.sml
`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Items())
	}
	if !isLibrary || len(exports) != 2 {
		t.Fatalf("isLibrary=%v exports=%v", isLibrary, exports)
	}
	if exports[0].Kind != ExportLibrary || !exports[0].IsStdlib {
		t.Fatalf("exports[0] = %+v", exports[0])
	}
	if exports[1].Kind != ExportSource || !exports[1].IsAll {
		t.Fatalf("exports[1] = %+v", exports[1])
	}
}

func TestParseGroupFileSkipsCommentsAndRecovers(t *testing.T) {
	isLibrary, exports, members, errs := parseGroup(t, `
(* a leading comment (* nested *) still a comment *)
Library
	structure Foo
is
	foo.sml
`)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs.Items())
	}
	if !isLibrary || len(exports) != 1 || len(members) != 1 {
		t.Fatalf("isLibrary=%v exports=%v members=%v", isLibrary, exports, members)
	}
}

func TestPathVarsExpand(t *testing.T) {
	vars := PathVars{"ROOT": "/proj"}

	got := vars.Expand("$(ROOT)/src/foo.sml")
	if got.IsStdlib || got.Value != "/proj/src/foo.sml" {
		t.Fatalf("Expand = %+v", got)
	}

	got = vars.Expand("$(SMLNJ-LIB)/basis.cm")
	if !got.IsStdlib {
		t.Fatalf("Expand(SMLNJ-LIB) = %+v, want IsStdlib", got)
	}

	got = vars.Expand("$()/basis.cm")
	if !got.IsStdlib {
		t.Fatalf("Expand($()) = %+v, want IsStdlib", got)
	}

	got = vars.Expand("$(UNDEFINED)/x.sml")
	if got.IsStdlib {
		t.Fatalf("Expand(undefined non-sentinel) = %+v, want not stdlib", got)
	}
}
