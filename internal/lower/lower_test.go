package lower

import (
	"testing"

	"millet/internal/hir"
	"millet/internal/lexer"
	"millet/internal/parser"
	"millet/internal/source"
)

func lowerSource(t *testing.T, src string) *hir.Program {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sml", []byte(src))
	f := fs.Get(id)
	lx := lexer.Lex(f)
	if lx.Errors.HasErrors() {
		t.Fatalf("lex errors: %v", lx.Errors.Items())
	}
	res := parser.Parse(f, lx.Tokens)
	if res.Errors.HasErrors() {
		t.Fatalf("parse errors: %v", res.Errors.Items())
	}
	out := Lower(res.File)
	if out.Errors.HasErrors() {
		t.Fatalf("lower errors: %v", out.Errors.Items())
	}
	return out.Program
}

func TestLowerValDec(t *testing.T) {
	prog := lowerSource(t, "val x = 1;")
	if len(prog.TopDecs) != 1 {
		t.Fatalf("got %d top decs; want 1", len(prog.TopDecs))
	}
	sd := prog.StrDecs.Get(prog.TopDecs[0])
	if sd.Kind != hir.StrDecCore {
		t.Fatalf("top dec kind = %v; want StrDecCore", sd.Kind)
	}
	dec := prog.Decs.Get(sd.Core.Dec)
	if dec.Kind != hir.DecVal {
		t.Fatalf("dec kind = %v; want DecVal", dec.Kind)
	}
	if len(dec.Val.Binds) != 1 {
		t.Fatalf("got %d val binds; want 1", len(dec.Val.Binds))
	}
	exp := prog.Exps.Get(dec.Val.Binds[0].Exp)
	if exp.Kind != hir.ExpSCon || exp.SCon.Kind != hir.SConInt {
		t.Fatalf("rhs exp = %+v; want int SCon", exp)
	}
	if !exp.SCon.IsSmall || exp.SCon.Small != 1 {
		t.Fatalf("SCon value = %+v; want small int 1", exp.SCon)
	}
}

func TestLowerFunDecDesugarsToValRec(t *testing.T) {
	prog := lowerSource(t, "fun id x = x;")
	sd := prog.StrDecs.Get(prog.TopDecs[0])
	dec := prog.Decs.Get(sd.Core.Dec)
	if dec.Kind != hir.DecVal {
		t.Fatalf("fun desugars to kind %v; want DecVal", dec.Kind)
	}
	if len(dec.Val.Binds) != 1 || !dec.Val.Binds[0].Rec {
		t.Fatalf("fun desugars to non-rec bind: %+v", dec.Val.Binds)
	}
	fnExp := prog.Exps.Get(dec.Val.Binds[0].Exp)
	if fnExp.Kind != hir.ExpFn {
		t.Fatalf("fun rhs kind = %v; want ExpFn", fnExp.Kind)
	}
}

func TestLowerIfDesugarsToCase(t *testing.T) {
	prog := lowerSource(t, "val x = if true then 1 else 2;")
	sd := prog.StrDecs.Get(prog.TopDecs[0])
	dec := prog.Decs.Get(sd.Core.Dec)
	exp := prog.Exps.Get(dec.Val.Binds[0].Exp)
	if exp.Kind != hir.ExpApp {
		t.Fatalf("if-exp lowers to kind %v; want ExpApp (applied fn matcher)", exp.Kind)
	}
	fn := prog.Exps.Get(exp.App.Func)
	if fn.Kind != hir.ExpFn || len(fn.Fn.Matcher) != 2 {
		t.Fatalf("if-exp function = %+v; want a 2-arm matcher", fn)
	}
}

func TestLowerAsPatternRelocatesType(t *testing.T) {
	prog := lowerSource(t, "val (x : int as y) = (1, 2);")
	sd := prog.StrDecs.Get(prog.TopDecs[0])
	dec := prog.Decs.Get(sd.Core.Dec)
	pat := prog.Pats.Get(dec.Val.Binds[0].Pat)
	if pat.Kind != hir.PatAs {
		t.Fatalf("pat kind = %v; want PatAs", pat.Kind)
	}
	inner := prog.Pats.Get(pat.As.Pat)
	if inner.Kind != hir.PatTyped {
		t.Fatalf("as-pattern inner kind = %v; want PatTyped (relocated annotation)", inner.Kind)
	}
}
