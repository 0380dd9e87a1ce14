package statics

import (
	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/types"
)

// ElabExp elaborates idx and returns its inferred type (spec.md §4.6
// "Expression elaboration"). Every Unify failure along the way is reported
// via st.Errs at the span of the expression being unified (a subexpression
// of idx, or idx itself); elaboration never aborts, instead
// substituting types.None so later expressions still get best-effort
// types.
func ElabExp(st *St, cx Cx, idx hir.Idx[hir.Exp]) types.Ty {
	if !idx.IsValid() {
		return types.None
	}
	exp := st.Prog.Exps.Get(idx)
	switch exp.Kind {
	case hir.ExpHole:
		return types.None

	case hir.ExpSCon:
		return sconTy(st, exp.SCon)

	case hir.ExpPath:
		info, ok := lookupVal(cx.Env, exp.Path.Path)
		if !ok {
			st.errExp(idx, diag.StaticsUndefined, "undefined identifier "+pathString(exp.Path.Path))
			return types.None
		}
		return Instantiate(st, info.Scheme)

	case hir.ExpRecord:
		rows := make([]types.Row, 0, len(exp.Record.Rows))
		seen := map[string]bool{}
		for _, r := range exp.Record.Rows {
			key := labKeyOf(types.Row{Lab: r.Lab})
			if seen[key] {
				st.errExp(idx, diag.StaticsDuplicateLab, "duplicate record label "+key)
				continue
			}
			seen[key] = true
			rows = append(rows, types.Row{Lab: r.Lab, Ty: ElabExp(st, cx, r.Exp)})
		}
		return st.Store.Record(rows)

	case hir.ExpLet:
		inner := cx.WithEnv(cx.Env.Clone())
		ElabDec(st, inner, exp.Let.Dec)
		return ElabExp(st, inner, exp.Let.Body)

	case hir.ExpApp:
		fnTy := ElabExp(st, cx, exp.App.Func)
		argTy := ElabExp(st, cx, exp.App.Arg)
		resTy := st.newMetaVar()
		UnifyExp(st, st.Store.Fn(argTy, resTy), fnTy, exp.App.Func)
		return resTy

	case hir.ExpHandle:
		bodyTy := ElabExp(st, cx, exp.Handle.Exp)
		exnTy := st.Store.Con(types.SymExn, nil)
		armRes := elabMatcher(st, cx, idx, exp.Handle.Matcher, exnTy)
		UnifyExp(st, bodyTy, armRes, idx)
		return bodyTy

	case hir.ExpRaise:
		excTy := ElabExp(st, cx, exp.Raise.Exp)
		UnifyExp(st, st.Store.Con(types.SymExn, nil), excTy, exp.Raise.Exp)
		return st.newMetaVar()

	case hir.ExpFn:
		argTy := st.newMetaVar()
		resTy := elabMatcher(st, cx, idx, exp.Fn.Matcher, argTy)
		return st.Store.Fn(argTy, resTy)

	case hir.ExpTyped:
		want := ElabTy(st, cx, exp.Typed.Ty)
		got := ElabExp(st, cx, exp.Typed.Exp)
		UnifyExp(st, want, got, exp.Typed.Exp)
		return want

	default:
		return types.None
	}
}

// elabMatcher elaborates every arm of a fn/case/handle matcher against a
// shared argument type, unifies their bodies to a single result type, and
// runs exhaustiveness/redundancy checking over the collected patterns.
func elabMatcher(st *St, cx Cx, idx hir.Idx[hir.Exp], arms []hir.Arm, argTy types.Ty) types.Ty {
	resTy := st.newMetaVar()
	rows := make([]matchPat, 0, len(arms))
	for _, arm := range arms {
		armCx := cx.WithEnv(cx.Env.Clone())
		bound := types.NewValEnv()
		row := ElabPat(st, armCx, bound, arm.Pat, argTy)
		bound.Iter(func(n ast.Name, v types.ValInfo) { armCx.Env.ValEnv.Insert(n, v) })

		if !useful(st, rows, row) {
			st.errPat(arm.Pat, diag.StaticsUnreachablePattern, "this pattern is unreachable")
		}
		rows = append(rows, row)

		bodyTy := ElabExp(st, armCx, arm.Exp)
		UnifyExp(st, resTy, bodyTy, arm.Exp)
	}
	if !exhaustive(st, rows) {
		st.errExp(idx, diag.StaticsNonExhaustiveMatch, "this match is not exhaustive")
	}
	return resTy
}
