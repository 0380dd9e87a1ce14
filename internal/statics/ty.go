package statics

import (
	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/types"
)

// ElabTy elaborates a surface hir.Ty into a semantic types.Ty, resolving
// `ast.TyVar` occurrences against cx.TyVars (spec.md §4.6 "Ty elaboration").
// A missing idx or an unresolved constructor path yields types.None: a
// diagnostic is reported and elaboration proceeds with the poison type
// rather than aborting the file.
func ElabTy(st *St, cx Cx, idx hir.Idx[hir.Ty]) types.Ty {
	if !idx.IsValid() {
		return types.None
	}
	ty := st.Prog.Tys.Get(idx)
	switch ty.Kind {
	case hir.TyVar:
		name := ty.Var.Var.Name
		if t, ok := cx.TyVars[name]; ok {
			return t
		}
		st.errTy(idx, diag.StaticsUndefined, "undefined type variable '"+string(name)+"'")
		return types.None

	case hir.TyRecord:
		rows := make([]types.Row, 0, len(ty.Record.Rows))
		seen := map[string]bool{}
		for _, r := range ty.Record.Rows {
			key := labKeyOf(types.Row{Lab: r.Lab})
			if seen[key] {
				st.errTy(idx, diag.StaticsDuplicateLab, "duplicate record label "+key)
				continue
			}
			seen[key] = true
			rows = append(rows, types.Row{Lab: r.Lab, Ty: ElabTy(st, cx, r.Ty)})
		}
		return st.Store.Record(rows)

	case hir.TyCon:
		args := make([]types.Ty, len(ty.Con.Args))
		for i, a := range ty.Con.Args {
			args[i] = ElabTy(st, cx, a)
		}
		sym, arity, ok := lookupTyCon(st, cx, ty.Con.Path)
		if !ok {
			st.errTy(idx, diag.StaticsUndefined, "undefined type constructor "+pathString(ty.Con.Path))
			return types.None
		}
		if arity != len(args) {
			st.errTy(idx, diag.StaticsMismatchedTypes, "type constructor applied to the wrong number of arguments")
			return types.None
		}
		return st.Store.Con(sym, args)

	case hir.TyFn:
		param := ElabTy(st, cx, ty.Fn.Param)
		res := ElabTy(st, cx, ty.Fn.Result)
		return st.Store.Fn(param, res)

	default: // TyHole
		return types.None
	}
}

// lookupTyCon resolves path to a type constructor's Sym and declared
// arity, searching cx.Env's structures for a qualified path.
func lookupTyCon(st *St, cx Cx, path ast.Path) (types.Sym, int, bool) {
	env := cx.Env
	for _, s := range path.Structures {
		sub, ok := env.StrEnv[s]
		if !ok {
			return 0, 0, false
		}
		env = sub
	}
	info, ok := env.TyEnv[path.Last]
	if !ok {
		return 0, 0, false
	}
	if info.Scheme.Ty.Kind != types.KindCon {
		return 0, 0, false
	}
	return st.Store.ConInfo(info.Scheme.Ty).Sym, len(info.Scheme.Bound), true
}

func pathString(p ast.Path) string {
	s := ""
	for _, n := range p.Structures {
		s += string(n) + "."
	}
	return s + string(p.Last)
}
