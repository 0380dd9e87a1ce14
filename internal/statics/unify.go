package statics

import (
	"fmt"

	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/types"
)

// Unify unifies want and got, reporting a statics diagnostic at idx on
// failure (spec.md §4.6 "Unification"). Callers pass the expected type as
// want and the inferred type as got; the rendered message names neither
// type.
func Unify(st *St, want, got types.Ty, idx hir.AnyIdx) {
	if err := unify(st, want, got); err != nil {
		code, msg := err.render(st, want, got)
		st.err(st.Prog.SpanOf(idx), code, msg)
	}
}

// UnifyExp is Unify reporting at an Exp's span.
func UnifyExp(st *St, want, got types.Ty, idx hir.Idx[hir.Exp]) {
	if err := unify(st, want, got); err != nil {
		code, msg := err.render(st, want, got)
		st.errExp(idx, code, msg)
	}
}

// UnifyPat is Unify reporting at a Pat's span.
func UnifyPat(st *St, want, got types.Ty, idx hir.Idx[hir.Pat]) {
	if err := unify(st, want, got); err != nil {
		code, msg := err.render(st, want, got)
		st.errPat(idx, code, msg)
	}
}

type unifyErrKind uint8

const (
	errOccursCheck unifyErrKind = iota
	errHeadMismatch
	errOverloadMismatch
	errMissingRow
	errExtraRows
)

type unifyError struct {
	kind unifyErrKind
	mv   types.MetaTyVar
	ty   types.Ty
	ov   types.Overload
	lab  string
}

func (e *unifyError) render(_ *St, want, got types.Ty) (diag.Code, string) {
	switch e.kind {
	case errOccursCheck:
		return diag.StaticsCircularity, "circular type: a type variable occurs within the type it would be bound to"
	case errOverloadMismatch:
		return diag.StaticsOverloadMismatch, fmt.Sprintf("type does not support the required overload class (%v)", e.ov.Classes())
	case errMissingRow:
		return diag.StaticsMissingField, fmt.Sprintf("missing record field %q", e.lab)
	case errExtraRows:
		return diag.StaticsExtraFields, "record has extra fields not present in the expected type"
	default:
		return diag.StaticsMismatchedTypes, "mismatched types"
	}
}

// unify is the recursive structural unifier (spec.md §4.6 "Unification"),
// grounded on original_source/crates/statics/src/unify.rs's unify_: apply
// the Subst to both sides on entry, then case on their (resolved) shapes.
func unify(st *St, want, got types.Ty) *unifyError {
	want = st.apply(want)
	got = st.apply(got)

	switch {
	case want.IsNone() || got.IsNone():
		return nil
	case want.Kind == types.KindMetaVar || got.Kind == types.KindMetaVar:
		return unifyMetaVar(st, want, got)
	case want.Kind != got.Kind:
		return &unifyError{kind: errHeadMismatch}
	}

	switch want.Kind {
	case types.KindBoundVar:
		if want.BoundVarIndex() != got.BoundVarIndex() {
			return &unifyError{kind: errHeadMismatch}
		}
		return nil
	case types.KindFixedVar:
		if want != got {
			return &unifyError{kind: errHeadMismatch}
		}
		return nil
	case types.KindRecord:
		return unifyRecord(st, want, got)
	case types.KindCon:
		return unifyCon(st, want, got)
	case types.KindFn:
		wf, gf := st.Store.FnInfo(want), st.Store.FnInfo(got)
		if e := unify(st, wf.Param, gf.Param); e != nil {
			return e
		}
		return unify(st, wf.Res, gf.Res)
	default:
		return &unifyError{kind: errHeadMismatch}
	}
}

func unifyMetaVar(st *St, want, got types.Ty) *unifyError {
	var mv types.MetaTyVar
	var other types.Ty
	switch {
	case want.Kind == types.KindMetaVar && got.Kind == types.KindMetaVar:
		if want == got {
			return nil
		}
		mv, other = want.AsMetaVar(), got
	case want.Kind == types.KindMetaVar:
		mv, other = want.AsMetaVar(), got
	default:
		mv, other = got.AsMetaVar(), want
	}

	if occurs(st, mv, other) {
		return &unifyError{kind: errOccursCheck, mv: mv, ty: other}
	}

	old, hadEntry := st.Subst.Insert(mv, types.Solved(other))
	if !hadEntry {
		return nil
	}
	if old.Tag == types.SubstSolved {
		// Unreachable in practice: apply() resolved both sides on entry.
		return nil
	}
	return fuseKind(st, old.Kind, other)
}

// fuseKind applies the constraint that mv (now solved to other) previously
// carried, per spec.md §4.6 "Overload fusion" / "Equality checking".
func fuseKind(st *St, kind types.TyVarKind, other types.Ty) *unifyError {
	switch kind.Tag {
	case types.TyVarEquality:
		if !admitsEquality(st, other) {
			return &unifyError{kind: errHeadMismatch}
		}
		return nil
	case types.TyVarOverloaded:
		return fuseOverload(st, kind.Overload, other)
	case types.TyVarUnresolvedRecord:
		return fuseUnresolvedRecord(st, kind, other)
	default:
		return nil
	}
}

func fuseOverload(st *St, ov types.Overload, other types.Ty) *unifyError {
	switch {
	case other.IsNone():
		return nil
	case other.Kind == types.KindCon:
		info := st.Store.ConInfo(other)
		if len(info.Args) != 0 {
			return &unifyError{kind: errOverloadMismatch, ov: ov}
		}
		for _, c := range ov.Classes() {
			for _, s := range st.Syms.Overloads().ForClass(c) {
				if s == info.Sym {
					return nil
				}
			}
		}
		return &unifyError{kind: errOverloadMismatch, ov: ov}
	case other.Kind == types.KindMetaVar:
		mv2 := other.AsMetaVar()
		old, had := st.Subst.Insert(mv2, types.KindEntry(types.Overloaded(ov)))
		if !had {
			return nil
		}
		switch old.Tag {
		case types.SubstKind:
			if old.Kind.Tag == types.TyVarEquality {
				return nil
			}
			if old.Kind.Tag == types.TyVarOverloaded {
				if !ov.ContainsAll(old.Kind.Overload) {
					return &unifyError{kind: errOverloadMismatch, ov: ov}
				}
			}
		}
		return nil
	default:
		return &unifyError{kind: errOverloadMismatch, ov: ov}
	}
}

func fuseUnresolvedRecord(st *St, kind types.TyVarKind, other types.Ty) *unifyError {
	if other.Kind != types.KindRecord {
		if other.Kind == types.KindMetaVar {
			return nil
		}
		return &unifyError{kind: errHeadMismatch}
	}
	gotRows := st.Store.RecordRows(other)
	gotByLab := make(map[string]types.Ty, len(gotRows))
	for _, r := range gotRows {
		gotByLab[labKeyOf(r)] = r.Ty
	}
	for _, want := range kind.Rows {
		gt, ok := gotByLab[labKeyOf(want)]
		if !ok {
			return &unifyError{kind: errMissingRow, lab: labKeyOf(want)}
		}
		if e := unify(st, want.Ty, gt); e != nil {
			return e
		}
	}
	if !kind.HasTail && len(kind.Rows) != len(gotRows) {
		return &unifyError{kind: errExtraRows}
	}
	return nil
}

func unifyRecord(st *St, want, got types.Ty) *unifyError {
	wantRows := st.Store.RecordRows(want)
	gotRows := st.Store.RecordRows(got)
	gotByLab := make(map[string]types.Ty, len(gotRows))
	for _, r := range gotRows {
		gotByLab[labKeyOf(r)] = r.Ty
	}
	matched := 0
	for _, w := range wantRows {
		gt, ok := gotByLab[labKeyOf(w)]
		if !ok {
			return &unifyError{kind: errHeadMismatch}
		}
		matched++
		if e := unify(st, w.Ty, gt); e != nil {
			return e
		}
	}
	if matched != len(gotRows) {
		return &unifyError{kind: errHeadMismatch}
	}
	return nil
}

func unifyCon(st *St, want, got types.Ty) *unifyError {
	wi, gi := st.Store.ConInfo(want), st.Store.ConInfo(got)
	if wi.Sym != gi.Sym || len(wi.Args) != len(gi.Args) {
		return &unifyError{kind: errHeadMismatch}
	}
	for i := range wi.Args {
		if e := unify(st, wi.Args[i], gi.Args[i]); e != nil {
			return e
		}
	}
	return nil
}

func occurs(st *St, mv types.MetaTyVar, ty types.Ty) bool {
	ty = st.apply(ty)
	switch ty.Kind {
	case types.KindMetaVar:
		return ty.AsMetaVar() == mv
	case types.KindRecord:
		for _, r := range st.Store.RecordRows(ty) {
			if occurs(st, mv, r.Ty) {
				return true
			}
		}
		return false
	case types.KindCon:
		for _, a := range st.Store.ConInfo(ty).Args {
			if occurs(st, mv, a) {
				return true
			}
		}
		return false
	case types.KindFn:
		info := st.Store.FnInfo(ty)
		return occurs(st, mv, info.Param) || occurs(st, mv, info.Res)
	default:
		return false
	}
}

func labKeyOf(r types.Row) string {
	if r.Lab.IsTuple() {
		return fmt.Sprintf("#%d", r.Lab.Index)
	}
	return string(r.Lab.Name)
}
