package statics

import (
	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/symbols"
	"millet/internal/types"
)

// ElabDec elaborates idx, mutating cx.Env in place with every binding it
// introduces (spec.md §4.6 "Declaration elaboration"). Unlike ElabExp,
// declarations have no result type: their effect is entirely the Env
// mutation (plus whatever diagnostics Unify/pattern-checking reports).
func ElabDec(st *St, cx Cx, idx hir.Idx[hir.Dec]) {
	if !idx.IsValid() {
		return
	}
	dec := st.Prog.Decs.Get(idx)
	switch dec.Kind {
	case hir.DecVal:
		elabValDec(st, cx, dec.Val)

	case hir.DecTy:
		for _, b := range dec.Ty.Binds {
			elabTyBind(st, cx, b)
		}

	case hir.DecDatatype:
		elabDatatypeDec(st, cx, dec.Datatype)

	case hir.DecDatatypeCopy:
		elabDatatypeCopyDec(st, cx, idx, dec.DatatypeCopy)

	case hir.DecAbstype:
		elabDatatypeDec(st, cx, hir.DatatypeDec{Binds: dec.Abstype.Binds, WithType: dec.Abstype.WithType})
		ElabDec(st, cx, dec.Abstype.Dec)

	case hir.DecException:
		for _, b := range dec.Exception.Binds {
			elabExBind(st, cx, idx, b)
		}

	case hir.DecLocal:
		// Left's bindings (the `local D1 in` part) must not leak into the
		// enclosing scope; only names Right adds on top of Left are kept.
		inner := cx.WithEnv(cx.Env.Clone())
		ElabDec(st, inner, dec.Local.Left)
		beforeVal := map[ast.Name]bool{}
		inner.Env.ValEnv.Iter(func(n ast.Name, _ types.ValInfo) { beforeVal[n] = true })
		beforeTy := map[ast.Name]bool{}
		for n := range inner.Env.TyEnv {
			beforeTy[n] = true
		}
		ElabDec(st, inner, dec.Local.Right)
		inner.Env.ValEnv.Iter(func(n ast.Name, v types.ValInfo) {
			if !beforeVal[n] {
				cx.Env.ValEnv.Insert(n, v)
			}
		})
		for n, info := range inner.Env.TyEnv {
			if !beforeTy[n] {
				cx.Env.TyEnv[n] = info
			}
		}

	case hir.DecOpen:
		for _, p := range dec.Open.Paths {
			sub, ok := resolveStr(cx.Env, p)
			if !ok {
				st.errDec(idx, diag.StaticsUndefined, "undefined structure "+pathString(p))
				continue
			}
			cx.Env.Extend(sub)
		}

	case hir.DecSeq:
		for _, d := range dec.Seq.Decs {
			ElabDec(st, cx, d)
		}
	}
}

// elabValDec elaborates one Val declaration's bindings. Recursive (`rec`)
// bindings must all be functions (StaticsValRecExpNotFn otherwise, since
// `val rec x = e` with a non-fn e has no well-defined dynamics); every
// binding is generalized independently once its pattern and expression
// have both been elaborated.
func elabValDec(st *St, cx Cx, dec hir.ValDec) {
	inner := Cx{Env: cx.Env, TyVars: map[ast.Name]types.Ty{}}
	for k, v := range cx.TyVars {
		inner.TyVars[k] = v
	}
	for _, tv := range dec.TyVars {
		inner.TyVars[tv.Name] = st.Store.NewFixedVar(tv.Equality)
	}

	rec, nonRec := splitRec(dec.Binds)

	// Recursive bindings: pre-bind each pattern's variables to fresh meta-
	// vars before elaborating any body, so the bodies can refer to each
	// other (and themselves).
	recTys := make([]types.Ty, len(rec))
	recVe := types.NewValEnv()
	for i, b := range rec {
		recTys[i] = st.newMetaVar()
		tmpVe := types.NewValEnv()
		ElabPat(st, inner, tmpVe, b.Pat, recTys[i])
		tmpVe.Iter(func(n ast.Name, v types.ValInfo) { recVe.Insert(n, v) })
	}
	recCx := inner.WithEnv(Env{StrEnv: inner.Env.StrEnv, TyEnv: inner.Env.TyEnv, ValEnv: mergedValEnv(inner.Env.ValEnv, recVe)})
	for i, b := range rec {
		bodyTy := ElabExp(st, recCx, b.Exp)
		if !isFnExp(st, b.Exp) {
			st.errExp(b.Exp, diag.StaticsValRecExpNotFn, "the right-hand side of a recursive binding must be a function")
		}
		UnifyExp(st, recTys[i], bodyTy, b.Exp)
	}
	recVe.Iter(func(n ast.Name, v types.ValInfo) {
		v.Scheme = Generalize(st, cx, v.Scheme.Ty)
		cx.Env.ValEnv.Insert(n, v)
	})

	for _, b := range nonRec {
		bodyTy := ElabExp(st, inner, b.Exp)
		ve := types.NewValEnv()
		ElabPat(st, inner, ve, b.Pat, bodyTy)
		ve.Iter(func(n ast.Name, v types.ValInfo) {
			v.Scheme = Generalize(st, cx, v.Scheme.Ty)
			cx.Env.ValEnv.Insert(n, v)
		})
	}
}

func splitRec(binds []hir.ValBind) (rec, nonRec []hir.ValBind) {
	for _, b := range binds {
		if b.Rec {
			rec = append(rec, b)
		} else {
			nonRec = append(nonRec, b)
		}
	}
	return rec, nonRec
}

func mergedValEnv(base *types.ValEnv, extra *types.ValEnv) *types.ValEnv {
	out := types.NewValEnv()
	base.Iter(func(n ast.Name, v types.ValInfo) { out.Insert(n, v) })
	extra.Iter(func(n ast.Name, v types.ValInfo) { out.Insert(n, v) })
	return out
}

func isFnExp(st *St, idx hir.Idx[hir.Exp]) bool {
	if !idx.IsValid() {
		return false
	}
	e := st.Prog.Exps.Get(idx)
	switch e.Kind {
	case hir.ExpFn:
		return true
	case hir.ExpTyped:
		return isFnExp(st, e.Typed.Exp)
	default:
		return false
	}
}

func elabTyBind(st *St, cx Cx, b hir.TyBind) {
	inner := Cx{Env: cx.Env, TyVars: map[ast.Name]types.Ty{}}
	for _, tv := range b.TyVars {
		inner.TyVars[tv.Name] = st.Store.NewFixedVar(tv.Equality)
	}
	ty := ElabTy(st, inner, b.Ty)
	bound := make([]types.TyVarKind, len(b.TyVars))
	for i := range bound {
		bound[i] = types.Regular
	}
	cx.Env.TyEnv[b.Name] = types.TyInfo{Scheme: types.TyScheme{Bound: bound, Ty: ty}, ValEnv: *types.NewValEnv()}
}

// elabDatatypeDec elaborates a (possibly mutually-recursive) group of
// datatype bindings: each gets a fresh Sym started before any constructor
// is elaborated, so constructors may reference sibling (or their own)
// datatypes recursively.
func elabDatatypeDec(st *St, cx Cx, dec hir.DatatypeDec) {
	started := make([]symbols.StartedSym, len(dec.Binds))
	tyVars := make([][]types.Ty, len(dec.Binds))
	for i, b := range dec.Binds {
		started[i] = st.Syms.Start(ast.Path{Last: b.Name})
		vars := make([]types.Ty, len(b.TyVars))
		for j := range b.TyVars {
			vars[j] = types.BoundVar(uint32(j))
		}
		tyVars[i] = vars
		sym := started[i].Sym()
		ty := st.Store.Con(sym, vars)
		bound := make([]types.TyVarKind, len(b.TyVars))
		for j := range bound {
			bound[j] = types.Regular
		}
		cx.Env.TyEnv[b.Name] = types.TyInfo{Scheme: types.TyScheme{Bound: bound, Ty: ty}}
	}
	for _, b := range dec.WithType {
		elabTyBind(st, cx, b)
	}

	for i, b := range dec.Binds {
		sym := started[i].Sym()
		selfTy := st.Store.Con(sym, tyVars[i])
		fixed := map[ast.Name]types.Ty{}
		for j, tv := range b.TyVars {
			fixed[tv.Name] = tyVars[i][j]
		}
		conCx := Cx{Env: cx.Env, TyVars: fixed}
		ve := types.NewValEnv()
		allEq := true
		for _, c := range b.Cons {
			if c.Arg.IsValid() {
				argTy := ElabTy(st, conCx, c.Arg)
				if !admitsEquality(st, argTy) {
					allEq = false
				}
				ve.Insert(c.Name, types.ValInfo{
					Scheme:   types.TyScheme{Bound: boundRegular(len(b.TyVars)), Ty: st.Store.Fn(argTy, selfTy)},
					IdStatus: types.IdStatus{Tag: types.IdCon},
				})
			} else {
				ve.Insert(c.Name, types.ValInfo{
					Scheme:   types.TyScheme{Bound: boundRegular(len(b.TyVars)), Ty: selfTy},
					IdStatus: types.IdStatus{Tag: types.IdCon},
				})
			}
		}
		eq := symbols.EqualitySometimes
		if !allEq {
			eq = symbols.EqualityNever
		}
		st.Syms.Finish(started[i], types.TyInfo{
			Scheme: types.TyScheme{Bound: boundRegular(len(b.TyVars)), Ty: selfTy},
			ValEnv: *ve,
		}, eq)
		cx.Env.TyEnv[b.Name] = types.TyInfo{
			Scheme: types.TyScheme{Bound: boundRegular(len(b.TyVars)), Ty: selfTy},
			ValEnv: *ve,
		}
		ve.Iter(func(n ast.Name, v types.ValInfo) { cx.Env.ValEnv.Insert(n, v) })
	}
}

func boundRegular(n int) []types.TyVarKind {
	out := make([]types.TyVarKind, n)
	for i := range out {
		out[i] = types.Regular
	}
	return out
}

func elabDatatypeCopyDec(st *St, cx Cx, idx hir.Idx[hir.Dec], d hir.DatatypeCopyDec) {
	info, ok := resolveTy(cx.Env, d.Path)
	if !ok {
		st.errDec(idx, diag.StaticsUndefined, "undefined datatype "+pathString(d.Path))
		return
	}
	cx.Env.TyEnv[d.Name] = info
	info.ValEnv.Iter(func(n ast.Name, v types.ValInfo) { cx.Env.ValEnv.Insert(n, v) })
}

func resolveTy(env Env, path ast.Path) (types.TyInfo, bool) {
	for _, s := range path.Structures {
		sub, ok := env.StrEnv[s]
		if !ok {
			return types.TyInfo{}, false
		}
		env = sub
	}
	info, ok := env.TyEnv[path.Last]
	return info, ok
}

func resolveStr(env Env, path ast.Path) (Env, bool) {
	for _, s := range path.Structures {
		sub, ok := env.StrEnv[s]
		if !ok {
			return Env{}, false
		}
		env = sub
	}
	sub, ok := env.StrEnv[path.Last]
	return sub, ok
}

func elabExBind(st *St, cx Cx, idx hir.Idx[hir.Dec], b hir.ExBind) {
	if b.IsCopy {
		info, ok := lookupVal(cx.Env, b.Source)
		if !ok || info.IdStatus.Tag != types.IdExn {
			st.errDec(idx, diag.StaticsUndefined, "undefined exception "+pathString(b.Source))
			return
		}
		cx.Env.ValEnv.Insert(b.Name, info)
		return
	}
	argTy := types.None
	if b.Arg.IsValid() {
		argTy = ElabTy(st, cx, b.Arg)
	}
	exn := st.Syms.InsertExn(ast.Path{Last: b.Name}, argTy)
	ty := st.Store.Con(types.SymExn, nil)
	if argTy.Kind != types.KindNone {
		ty = st.Store.Fn(argTy, ty)
	}
	cx.Env.ValEnv.Insert(b.Name, types.ValInfo{
		Scheme:   types.Mono(ty),
		IdStatus: types.IdStatus{Tag: types.IdExn, Exn: types.Sym(exn)},
	})
}
