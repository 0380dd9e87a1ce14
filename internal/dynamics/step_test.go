package dynamics

import (
	"testing"

	"millet/internal/hir"
	"millet/internal/lexer"
	"millet/internal/lower"
	"millet/internal/parser"
	"millet/internal/source"
	"millet/internal/symbols"
	"millet/internal/types"
)

// runSource lexes, parses, and lowers src, then drives every top-level
// declaration through the stack machine in turn, starting from the
// standard basis's RootEnv. It returns the final St so a test can inspect
// the bindings each declaration produced.
func runSource(t *testing.T, src string) *St {
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
	out := lower.Lower(res.File)
	if out.Errors.HasErrors() {
		t.Fatalf("lower errors: %v", out.Errors.Items())
	}
	prog := out.Program

	store := types.NewStore()
	syms, basis := symbols.NewWithBasis(store)
	st := NewSt(prog, syms, basis, RootEnv(basis))

	for _, topIdx := range prog.TopDecs {
		top := prog.StrDecs.Get(topIdx)
		if top.Kind != hir.StrDecCore {
			t.Fatalf("top dec kind = %v; want StrDecCore", top.Kind)
		}
		final := Run(st, stepDec(top.Core.Dec), nil)
		if final.Kind == StepRaise {
			t.Fatalf("uncaught exception evaluating %q", src)
		}
	}
	return st
}

func TestStepValBindLiteral(t *testing.T) {
	st := runSource(t, "val x = 1;")
	v, ok := st.Env.Val["x"]
	if !ok {
		t.Fatalf("x not bound")
	}
	if v.Kind != ValSCon || !v.SCon.IsSmall || v.SCon.Small != 1 {
		t.Fatalf("x = %+v; want small int 1", v)
	}
}

func TestStepFunApp(t *testing.T) {
	st := runSource(t, "fun id x = x; val y = id 2;")
	v, ok := st.Env.Val["y"]
	if !ok {
		t.Fatalf("y not bound")
	}
	if v.Kind != ValSCon || !v.SCon.IsSmall || v.SCon.Small != 2 {
		t.Fatalf("y = %+v; want small int 2", v)
	}
}

func TestStepIfDesugarsToCaseAndReduces(t *testing.T) {
	st := runSource(t, "val x = if true then 1 else 2;")
	v := st.Env.Val["x"]
	if v.Kind != ValSCon || !v.SCon.IsSmall || v.SCon.Small != 1 {
		t.Fatalf("x = %+v; want small int 1 (then-branch)", v)
	}
}

func TestStepRecordAndTuple(t *testing.T) {
	st := runSource(t, "val p = (1, 2);")
	v := st.Env.Val["p"]
	if v.Kind != ValRecord {
		t.Fatalf("p = %+v; want ValRecord", v)
	}
	one := v.Record["#1"]
	two := v.Record["#2"]
	if one.SCon.Small != 1 || two.SCon.Small != 2 {
		t.Fatalf("p = %+v; want (1, 2)", v)
	}
}

func TestStepDatatypeConstructorApplication(t *testing.T) {
	st := runSource(t, "datatype t = A | B of int; val v = B 3;")
	v := st.Env.Val["v"]
	if v.Kind != ValCon || v.Con.Kind.Name != "B" {
		t.Fatalf("v = %+v; want Con B", v)
	}
	if v.Con.Arg == nil || v.Con.Arg.SCon.Small != 3 {
		t.Fatalf("v arg = %+v; want 3", v.Con.Arg)
	}
}

func TestStepRecursiveFunction(t *testing.T) {
	// No arithmetic primitives exist in this port (see types.go), so
	// recursion here counts down a user datatype instead of integers.
	st := runSource(t, `
		datatype nat = Zero | Succ of nat;
		fun pred (Succ n) = n;
		fun isZero Zero = true | isZero (Succ _) = false;
		fun loop n = if isZero n then Zero else loop (pred n);
		val r = loop (Succ (Succ Zero));
	`)
	v, ok := st.Env.Val["r"]
	if !ok {
		t.Fatalf("r not bound")
	}
	if v.Kind != ValCon || v.Con.Kind.Name != "Zero" {
		t.Fatalf("r = %+v; want Con Zero", v)
	}
}

func TestStepHandleCatchesRaisedException(t *testing.T) {
	st := runSource(t, `
		exception Oops;
		val x = (raise Oops) handle Oops => 1;
	`)
	v, ok := st.Env.Val["x"]
	if !ok {
		t.Fatalf("x not bound")
	}
	if v.Kind != ValSCon || v.SCon.Small != 1 {
		t.Fatalf("x = %+v; want 1 (handled)", v)
	}
}

func TestStepLocalDecScopesPrivatePart(t *testing.T) {
	st := runSource(t, `
		local
			val secret = 9
		in
			val exposed = secret
		end;
	`)
	if _, ok := st.Env.Val["secret"]; ok {
		t.Fatalf("secret leaked out of local")
	}
	v, ok := st.Env.Val["exposed"]
	if !ok || v.SCon.Small != 9 {
		t.Fatalf("exposed = %+v; want 9", v)
	}
}
