package statics

import (
	"fmt"

	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/types"
)

// ElabPat elaborates idx against expected ty, inserting every variable it
// binds into ve (spec.md §4.6 "Pattern matching and exhaustiveness":
// "Patterns are elaborated against an expected type, producing ValEnv
// additions and a normalized pat-match pattern"). The returned matchPat
// feeds straight into exhaustive()/useful() once every arm of the
// enclosing matcher has been elaborated.
func ElabPat(st *St, cx Cx, ve *types.ValEnv, idx hir.Idx[hir.Pat], ty types.Ty) matchPat {
	if !idx.IsValid() {
		return wildMatch()
	}
	pat := st.Prog.Pats.Get(idx)
	switch pat.Kind {
	case hir.PatWild:
		return wildMatch()

	case hir.PatSCon:
		return elabSConPat(st, idx, pat.SCon, ty)

	case hir.PatCon:
		return elabConPat(st, cx, ve, idx, pat.Con, ty)

	case hir.PatRecord:
		return elabRecordPat(st, cx, ve, idx, pat.Record, ty)

	case hir.PatTyped:
		want := ElabTy(st, cx, pat.Typed.Ty)
		UnifyPat(st, want, ty, idx)
		return ElabPat(st, cx, ve, pat.Typed.Pat, ty)

	case hir.PatAs:
		insertVar(ve, pat.As.Name, ty)
		return ElabPat(st, cx, ve, pat.As.Pat, ty)

	case hir.PatOr:
		// Every alternative of an or-pattern must bind the same names at
		// the same types; ve is populated from the first alternative only,
		// since the Definition treats them as interchangeable. Later
		// alternatives are still elaborated (for their side-effecting
		// unifications) into a throwaway ValEnv.
		first := ElabPat(st, cx, ve, pat.Or.First, ty)
		for _, restIdx := range pat.Or.Rest {
			ElabPat(st, cx, types.NewValEnv(), restIdx, ty)
		}
		return first

	default:
		return wildMatch()
	}
}

func insertVar(ve *types.ValEnv, name ast.Name, ty types.Ty) {
	if name == "_" {
		return
	}
	ve.Insert(name, types.ValInfo{Scheme: types.Mono(ty), IdStatus: types.IdStatus{Tag: types.IdVal}})
}

func elabSConPat(st *St, idx hir.Idx[hir.Pat], sc hir.SCon, ty types.Ty) matchPat {
	if sc.Kind == hir.SConReal {
		st.errPat(idx, diag.StaticsRealPat, "pattern matching on real numbers is not allowed")
	}
	UnifyPat(st, ty, sconTy(st, sc), idx)
	return matchPat{kind: matchSCon, sconKind: sc.Kind, sconKey: sconKey(sc)}
}

func sconTy(st *St, sc hir.SCon) types.Ty {
	switch sc.Kind {
	case hir.SConInt:
		return st.Store.Con(st.Basis.Int, nil)
	case hir.SConWord:
		return st.Store.Con(st.Basis.Word, nil)
	case hir.SConReal:
		return st.Store.Con(st.Basis.Real, nil)
	case hir.SConChar:
		return st.Store.Con(st.Basis.Char, nil)
	default: // SConString
		return st.Store.Con(st.Basis.String, nil)
	}
}

func sconKey(sc hir.SCon) string {
	switch sc.Kind {
	case hir.SConInt, hir.SConWord:
		if sc.IsSmall {
			return fmt.Sprintf("%d", sc.Small)
		}
		if sc.Int != nil {
			return sc.Int.String()
		}
		return ""
	default:
		return sc.Text
	}
}

// elabConPat resolves pat.Path to a ValEnv entry, checks its IdStatus is
// Con or Exn (StaticsPatValIdStatus otherwise), checks the arg-presence
// matches the constructor's declared arity (StaticsPatMustHaveArg /
// StaticsPatMustNotHaveArg), and elaborates the argument pattern if any.
func elabConPat(st *St, cx Cx, ve *types.ValEnv, idx hir.Idx[hir.Pat], con hir.ConPat, ty types.Ty) matchPat {
	info, ok := lookupVal(cx.Env, con.Path)
	if !ok {
		// A bare unqualified name with no existing binding is a fresh
		// variable pattern, not a constructor reference.
		if len(con.Path.Structures) == 0 && !con.Arg.IsValid() {
			insertVar(ve, con.Path.Last, ty)
			return wildMatch()
		}
		st.errPat(idx, diag.StaticsUndefined, "undefined constructor "+pathString(con.Path))
		return wildMatch()
	}
	if info.IdStatus.Tag == types.IdVal {
		if len(con.Path.Structures) == 0 && !con.Arg.IsValid() {
			insertVar(ve, con.Path.Last, ty)
			return wildMatch()
		}
		st.errPat(idx, diag.StaticsPatValIdStatus, "expected a constructor, found a value identifier")
		return wildMatch()
	}

	conTy := Instantiate(st, info.Scheme)
	var sym types.Sym
	var argTy types.Ty
	switch conTy.Kind {
	case types.KindFn:
		fn := st.Store.FnInfo(conTy)
		argTy = fn.Param
		UnifyPat(st, ty, fn.Res, idx)
		sym = conSym(st, fn.Res)
	default:
		UnifyPat(st, ty, conTy, idx)
		sym = conSym(st, conTy)
	}

	hasArg := con.Arg.IsValid()
	needsArg := argTy.Kind != types.KindNone
	switch {
	case needsArg && !hasArg:
		st.errPat(idx, diag.StaticsPatMustHaveArg, "constructor requires an argument pattern")
		return matchPat{kind: matchCon, sym: sym, con: con.Path.Last}
	case !needsArg && hasArg:
		st.errPat(idx, diag.StaticsPatMustNotHaveArg, "constructor takes no argument")
		return matchPat{kind: matchCon, sym: sym, con: con.Path.Last}
	case hasArg:
		arg := ElabPat(st, cx, ve, con.Arg, argTy)
		return matchPat{kind: matchCon, sym: sym, con: con.Path.Last, arg: &arg}
	default:
		return matchPat{kind: matchCon, sym: sym, con: con.Path.Last}
	}
}

func conSym(st *St, ty types.Ty) types.Sym {
	ty = st.apply(ty)
	if ty.Kind == types.KindCon {
		return st.Store.ConInfo(ty).Sym
	}
	return 0
}

func elabRecordPat(st *St, cx Cx, ve *types.ValEnv, idx hir.Idx[hir.Pat], rec hir.RecordPat, ty types.Ty) matchPat {
	rows := make([]types.Row, 0, len(rec.Rows))
	elems := make([]matchPat, 0, len(rec.Rows))
	labs := make([]ast.Lab, 0, len(rec.Rows))
	seen := map[string]bool{}
	for _, r := range rec.Rows {
		key := labKeyOf(types.Row{Lab: r.Lab})
		if seen[key] {
			st.errPat(idx, diag.StaticsDuplicateLab, "duplicate record label "+key)
			continue
		}
		seen[key] = true
		elemTy := st.newMetaVar()
		elem := ElabPat(st, cx, ve, r.Pat, elemTy)
		rows = append(rows, types.Row{Lab: r.Lab, Ty: elemTy})
		elems = append(elems, elem)
		labs = append(labs, r.Lab)
	}
	if rec.AllowsOther {
		mv := st.newMetaVar()
		st.Subst.Insert(mv.AsMetaVar(), types.KindEntry(types.UnresolvedRecord(rows, true)))
		UnifyPat(st, ty, mv, idx)
	} else {
		UnifyPat(st, ty, st.Store.Record(rows), idx)
	}
	return matchPat{kind: matchRecord, rows: labs, elems: elems}
}

// lookupVal resolves path to a ValEnv entry, searching cx's structures for
// a qualified path.
func lookupVal(env Env, path ast.Path) (types.ValInfo, bool) {
	for _, s := range path.Structures {
		sub, ok := env.StrEnv[s]
		if !ok {
			return types.ValInfo{}, false
		}
		env = sub
	}
	return env.ValEnv.Get(path.Last)
}
