package statics

import (
	"millet/internal/ast"
	"millet/internal/diag"
	"millet/internal/hir"
	"millet/internal/source"
	"millet/internal/symbols"
	"millet/internal/types"
)

// St is the mutable state threaded through every elaboration pass of
// every file in one Analysis invocation (spec.md §4.6 "St { syms, subst,
// errors, ...context... }"). Syms outlives a single file; Subst is
// per-file (spec.md §3 Lifecycles).
type St struct {
	Prog  *hir.Program
	Syms  *symbols.Syms
	Store *types.Store
	Subst *types.Subst
	Errs  *diag.Bag
	Basis symbols.Basis

	// Sigs and Functors hold this file's signature and functor bindings
	// (spec.md §4.6 module elaboration). Kept file-scoped like Subst
	// rather than process-lifetime like Syms: a signature or functor
	// bound in one file is visible to the rest of that file only, which
	// matches how most SML projects declare them (a shared .sig file
	// `use`d at the top of every file that needs it) without this port
	// needing a cross-file name-resolution pass of its own.
	Sigs     map[ast.Name]Env
	Functors map[ast.Name]FunctorInfo

	// level is not read or written by any pass: Generalize (generalize.go)
	// picks the meta-vars to bind by excluding those free in the enclosing
	// Env, not by nesting depth.
	level int
}

// NewFileSt creates an St for elaborating one file, sharing syms/store
// (process-lifetime) but with a fresh per-file Subst.
func NewFileSt(prog *hir.Program, syms *symbols.Syms, store *types.Store, basis symbols.Basis) *St {
	return &St{
		Prog:     prog,
		Syms:     syms,
		Store:    store,
		Subst:    types.NewSubst(),
		Errs:     diag.NewBag(),
		Basis:    basis,
		Sigs:     map[ast.Name]Env{},
		Functors: map[ast.Name]FunctorInfo{},
	}
}

// err reports a statics diagnostic at span (spec.md §4.6 "Error indices":
// every statics error carries an HIR Idx, resolved to a span by the
// caller via one of Prog's *Span lookups before reaching here).
func (st *St) err(span source.Span, code diag.Code, msg string) {
	st.Errs.Add(diag.NewError(code, span, msg))
}

func (st *St) errExp(idx hir.Idx[hir.Exp], code diag.Code, msg string) {
	st.err(st.Prog.ExpSpan(idx), code, msg)
}

func (st *St) errPat(idx hir.Idx[hir.Pat], code diag.Code, msg string) {
	st.err(st.Prog.PatSpan(idx), code, msg)
}

func (st *St) errDec(idx hir.Idx[hir.Dec], code diag.Code, msg string) {
	st.err(st.Prog.DecSpan(idx), code, msg)
}

func (st *St) errTy(idx hir.Idx[hir.Ty], code diag.Code, msg string) {
	st.err(st.Prog.TySpan(idx), code, msg)
}

func (st *St) errStrDec(idx hir.Idx[hir.StrDec], code diag.Code, msg string) {
	st.err(st.Prog.StrDecSpan(idx), code, msg)
}

// newMetaVar mints a fresh meta-var Ty at the current level.
func (st *St) newMetaVar() types.Ty { return types.MetaVar(st.Store.NewMetaVar()) }

// apply resolves t through st's current Subst.
func (st *St) apply(t types.Ty) types.Ty { return types.Apply(st.Store, st.Subst, t) }
