package statics

import (
	"millet/internal/ast"
	"millet/internal/types"
)

// Generalize computes the TyScheme for ty: the meta-vars free in ty but
// not free in cx's enclosing environment become bound variables, each
// preserving its current constraint kind (spec.md §4.6 "Generalization").
func Generalize(st *St, cx Cx, ty types.Ty) types.TyScheme {
	ty = st.apply(ty)
	enclosing := map[types.MetaTyVar]bool{}
	collectEnvMetaVars(st, cx.Env, enclosing)

	order := []types.MetaTyVar{}
	seen := map[types.MetaTyVar]bool{}
	collectFreeMetaVars(st, ty, func(mv types.MetaTyVar) {
		if enclosing[mv] || seen[mv] {
			return
		}
		seen[mv] = true
		order = append(order, mv)
	})

	bound := make([]types.TyVarKind, len(order))
	index := make(map[types.MetaTyVar]uint32, len(order))
	for i, mv := range order {
		index[mv] = uint32(i)
		bound[i] = metaVarKind(st, mv)
	}

	body := generalizeTy(st, ty, index)
	return types.TyScheme{Bound: bound, Ty: body}
}

func metaVarKind(st *St, mv types.MetaTyVar) types.TyVarKind {
	entry, ok := st.Subst.Get(mv)
	if !ok || entry.Tag != types.SubstKind {
		return types.Regular
	}
	return entry.Kind
}

// generalizeTy rewrites every meta-var in index to the BoundVar it maps
// to, leaving everything else (including meta-vars not being generalized)
// untouched.
func generalizeTy(st *St, ty types.Ty, index map[types.MetaTyVar]uint32) types.Ty {
	ty = st.apply(ty)
	switch ty.Kind {
	case types.KindMetaVar:
		if i, ok := index[ty.AsMetaVar()]; ok {
			return types.BoundVar(i)
		}
		return ty
	case types.KindRecord:
		rows := st.Store.RecordRows(ty)
		out := make([]types.Row, len(rows))
		for i, r := range rows {
			out[i] = types.Row{Lab: r.Lab, Ty: generalizeTy(st, r.Ty, index)}
		}
		return st.Store.Record(out)
	case types.KindCon:
		info := st.Store.ConInfo(ty)
		args := make([]types.Ty, len(info.Args))
		for i, a := range info.Args {
			args[i] = generalizeTy(st, a, index)
		}
		return st.Store.Con(info.Sym, args)
	case types.KindFn:
		info := st.Store.FnInfo(ty)
		return st.Store.Fn(generalizeTy(st, info.Param, index), generalizeTy(st, info.Res, index))
	default:
		return ty
	}
}

func collectFreeMetaVars(st *St, ty types.Ty, f func(types.MetaTyVar)) {
	ty = st.apply(ty)
	switch ty.Kind {
	case types.KindMetaVar:
		f(ty.AsMetaVar())
	case types.KindRecord:
		for _, r := range st.Store.RecordRows(ty) {
			collectFreeMetaVars(st, r.Ty, f)
		}
	case types.KindCon:
		for _, a := range st.Store.ConInfo(ty).Args {
			collectFreeMetaVars(st, a, f)
		}
	case types.KindFn:
		info := st.Store.FnInfo(ty)
		collectFreeMetaVars(st, info.Param, f)
		collectFreeMetaVars(st, info.Res, f)
	}
}

func collectEnvMetaVars(st *St, env Env, out map[types.MetaTyVar]bool) {
	env.ValEnv.Iter(func(_ ast.Name, v types.ValInfo) {
		if v.Scheme.IsMono() {
			collectFreeMetaVars(st, v.Scheme.Ty, func(mv types.MetaTyVar) { out[mv] = true })
		}
	})
	for _, sub := range env.StrEnv {
		collectEnvMetaVars(st, sub, out)
	}
}

// Instantiate replaces scheme's bound variables with fresh meta-vars
// carrying the bound kind's constraint, producing a usable Ty for one use
// site (e.g. each occurrence of a polymorphic identifier).
func Instantiate(st *St, scheme types.TyScheme) types.Ty {
	if scheme.IsMono() {
		return scheme.Ty
	}
	fresh := make([]types.Ty, len(scheme.Bound))
	for i, kind := range scheme.Bound {
		mv := st.newMetaVar()
		if kind.Tag != types.TyVarRegular {
			st.Subst.Insert(mv.AsMetaVar(), types.KindEntry(kind))
		}
		fresh[i] = mv
	}
	return substBound(st, scheme.Ty, fresh)
}

func substBound(st *St, ty types.Ty, fresh []types.Ty) types.Ty {
	switch ty.Kind {
	case types.KindBoundVar:
		return fresh[ty.BoundVarIndex()]
	case types.KindRecord:
		rows := st.Store.RecordRows(ty)
		out := make([]types.Row, len(rows))
		for i, r := range rows {
			out[i] = types.Row{Lab: r.Lab, Ty: substBound(st, r.Ty, fresh)}
		}
		return st.Store.Record(out)
	case types.KindCon:
		info := st.Store.ConInfo(ty)
		args := make([]types.Ty, len(info.Args))
		for i, a := range info.Args {
			args[i] = substBound(st, a, fresh)
		}
		return st.Store.Con(info.Sym, args)
	case types.KindFn:
		info := st.Store.FnInfo(ty)
		return st.Store.Fn(substBound(st, info.Param, fresh), substBound(st, info.Res, fresh))
	default:
		return ty
	}
}
