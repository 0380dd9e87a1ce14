package lower

import (
	"millet/internal/ast"
	"millet/internal/hir"
	"millet/internal/source"
)

// boolPat builds a nullary constructor pattern for `true`/`false`.
func (l *lowerer) boolPat(v bool, span source.Span) hir.Idx[hir.Pat] {
	name := ast.Name("false")
	if v {
		name = "true"
	}
	return l.prog.AllocPat(hir.Pat{Kind: hir.PatCon, Con: hir.ConPat{Path: ast.Path{Last: name}}}, span)
}

// boolExp builds a reference to the `true`/`false` constructor.
func (l *lowerer) boolExp(v bool, span source.Span) hir.Idx[hir.Exp] {
	name := ast.Name("false")
	if v {
		name = "true"
	}
	return l.prog.AllocExp(hir.Exp{Kind: hir.ExpPath, Path: hir.PathExp{Path: ast.Path{Last: name}}}, span)
}

// unitExp builds a reference to the `()` nullary constructor.
func (l *lowerer) unitExp(span source.Span) hir.Idx[hir.Exp] {
	return l.prog.AllocExp(hir.Exp{Kind: hir.ExpPath, Path: hir.PathExp{Path: ast.Path{Last: "()"}}}, span)
}

// varPat builds a bare-name pattern, used both for ordinary `val`/`fun`
// variable bindings and for the fresh arguments fun-clause desugaring
// introduces. Patterns don't distinguish a variable from a nullary
// constructor syntactically; statics tells them apart via the ValEnv.
func (l *lowerer) varPat(name ast.Name, span source.Span) hir.Idx[hir.Pat] {
	return l.prog.AllocPat(hir.Pat{Kind: hir.PatCon, Con: hir.ConPat{Path: ast.Path{Last: name}}}, span)
}

func (l *lowerer) varExp(name ast.Name, span source.Span) hir.Idx[hir.Exp] {
	return l.prog.AllocExp(hir.Exp{Kind: hir.ExpPath, Path: hir.PathExp{Path: ast.Path{Last: name}}}, span)
}

// lowerWhile desugars `while c do body` via a recursive local function, as
// the Definition prescribes (Appendix A derived form):
//
//	let val rec $loop = fn () => if c then (body; $loop ()) else ()
//	in $loop () end
func (l *lowerer) lowerWhile(e *ast.WhileExp, span source.Span) hir.Idx[hir.Exp] {
	loopName := l.fresh()
	cond := l.lowerExp(e.Cond)
	body := l.lowerExp(e.Body)

	loopCall := func() hir.Idx[hir.Exp] {
		fn := l.varExp(loopName, span)
		unit := l.unitExp(span)
		return l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: unit}}, span)
	}

	thenExp := l.lowerSeqIdx([]hir.Idx[hir.Exp]{body, loopCall()}, span)
	elseExp := l.unitExp(span)
	ifArms := []hir.Arm{
		{Pat: l.boolPat(true, span), Exp: thenExp},
		{Pat: l.boolPat(false, span), Exp: elseExp},
	}
	ifFn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: ifArms}}, span)
	ifExp := l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: ifFn, Arg: cond}}, span)

	unitPat := l.prog.AllocPat(hir.Pat{Kind: hir.PatCon, Con: hir.ConPat{Path: ast.Path{Last: "()"}}}, span)
	loopFn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: []hir.Arm{{Pat: unitPat, Exp: ifExp}}}}, span)

	bind := hir.ValBind{Rec: true, Pat: l.varPat(loopName, span), Exp: loopFn}
	dec := l.prog.AllocDec(hir.Dec{Kind: hir.DecVal, Val: hir.ValDec{Binds: []hir.ValBind{bind}}}, span)

	body2 := loopCall()
	return l.prog.AllocExp(hir.Exp{Kind: hir.ExpLet, Let: hir.LetExp{Dec: dec, Body: body2}}, span)
}

// lowerSeqIdx sequences already-lowered expression indices, for use by
// desugarings that build sequences out of synthetic sub-expressions
// rather than surface ast.Exp nodes.
func (l *lowerer) lowerSeqIdx(exps []hir.Idx[hir.Exp], span source.Span) hir.Idx[hir.Exp] {
	last := exps[len(exps)-1]
	for i := len(exps) - 2; i >= 0; i-- {
		wild := l.prog.AllocPat(hir.Pat{Kind: hir.PatWild}, span)
		fn := l.prog.AllocExp(hir.Exp{Kind: hir.ExpFn, Fn: hir.FnExp{Matcher: []hir.Arm{{Pat: wild, Exp: last}}}}, span)
		last = l.prog.AllocExp(hir.Exp{Kind: hir.ExpApp, App: hir.AppExp{Func: fn, Arg: exps[i]}}, span)
	}
	return last
}
