package statics

import (
	"millet/internal/symbols"
	"millet/internal/types"
)

// admitsEquality reports whether ty admits the equality relation,
// mutating unconstrained meta-vars to Equality along the way (spec.md
// §4.6 "Equality checking"; grounded on
// original_source/crates/sml-statics/src/equality.rs's get_ty).
func admitsEquality(st *St, ty types.Ty) bool {
	ty = st.apply(ty)
	switch ty.Kind {
	case types.KindNone:
		return true
	case types.KindMetaVar:
		return admitsEqualityMetaVar(st, ty.AsMetaVar())
	case types.KindFixedVar:
		return st.Store.FixedVarEquality(ty)
	case types.KindRecord:
		for _, r := range st.Store.RecordRows(ty) {
			if !admitsEquality(st, r.Ty) {
				return false
			}
		}
		return true
	case types.KindCon:
		info := st.Store.ConInfo(ty)
		switch st.Syms.EqualityOf(info.Sym) {
		case symbols.EqualityAlways:
			return true
		case symbols.EqualityNever:
			return false
		default: // Sometimes
			for _, a := range info.Args {
				if !admitsEquality(st, a) {
					return false
				}
			}
			return true
		}
	case types.KindFn:
		return false
	default: // BoundVar: only meaningful once instantiated; treat as opaque-ok
		return true
	}
}

func admitsEqualityMetaVar(st *St, mv types.MetaTyVar) bool {
	entry, ok := st.Subst.Get(mv)
	if !ok {
		st.Subst.Insert(mv, types.KindEntry(types.Equality))
		return true
	}
	switch entry.Tag {
	case types.SubstSolved:
		return admitsEquality(st, entry.Ty)
	default: // SubstKind
		switch entry.Kind.Tag {
		case types.TyVarEquality:
			return true
		case types.TyVarOverloaded:
			for _, c := range entry.Kind.Overload.Classes() {
				if c != types.OverloadReal {
					continue
				}
				return false
			}
			return true
		case types.TyVarUnresolvedRecord:
			for _, r := range entry.Kind.Rows {
				if !admitsEquality(st, r.Ty) {
					return false
				}
			}
			return true
		default:
			return true
		}
	}
}
