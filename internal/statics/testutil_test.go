package statics_test

import (
	"millet/internal/diag"
	"millet/internal/lexer"
	"millet/internal/lower"
	"millet/internal/parser"
	"millet/internal/source"
	"millet/internal/statics"
	"millet/internal/symbols"
	"millet/internal/types"
)

// elaborate runs src through the full lex → parse → lower → statics
// pipeline (mirroring internal/driver's elaborateFile) and returns the
// accumulated diagnostics from every phase.
func elaborate(t testingT, src string) *diag.Bag {
	t.Helper()

	fset := source.NewFileSet()
	fid := fset.AddVirtual("test.sml", []byte(src))
	f := fset.Get(fid)

	lx := lexer.Lex(f)
	ps := parser.Parse(f, lx.Tokens)
	lw := lower.Lower(ps.File)

	store := types.NewStore()
	syms, basis := symbols.NewWithBasis(store)
	st := statics.NewFileSt(lw.Program, syms, store, basis)
	statics.GetFile(st, basis)

	all := diag.NewBag()
	all.Merge(lx.Errors)
	all.Merge(ps.Errors)
	all.Merge(lw.Errors)
	all.Merge(st.Errs)
	all.Sort()
	return all
}

// testingT is the subset of *testing.T elaborate needs, so this file
// doesn't have to import "testing" itself beyond what callers already do.
type testingT interface {
	Helper()
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
