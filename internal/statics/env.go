// Package statics is the elaborator: spec.md §4.6. It walks a lowered
// hir.Program, threading a shared symbols.Syms and types.Subst through
// every file's core and module-level declarations, producing ValEnv/TyEnv/
// StrEnv environments and a diag.Bag of errors.
package statics

import (
	"millet/internal/ast"
	"millet/internal/symbols"
	"millet/internal/types"
)

// Env is one structure's (or the top level's) environment: the three maps
// the Definition of Standard ML calls StrEnv/TyEnv/ValEnv, bundled
// together (spec.md §4.6 "Env = { str_env, ty_env, val_env }").
type Env struct {
	StrEnv map[ast.Name]Env
	TyEnv  types.TyEnv
	ValEnv *types.ValEnv
}

// NewEnv creates an empty Env.
func NewEnv() Env {
	return Env{StrEnv: map[ast.Name]Env{}, TyEnv: types.TyEnv{}, ValEnv: types.NewValEnv()}
}

// Clone makes a shallow-independent copy of e: a new top-level map and
// ValEnv, so inserting into the clone never affects e (needed when
// entering a `let`/`local`/`struct` scope that must not leak its additions
// back into the enclosing Env on exit).
func (e Env) Clone() Env {
	out := NewEnv()
	for k, v := range e.StrEnv {
		out.StrEnv[k] = v
	}
	for k, v := range e.TyEnv {
		out.TyEnv[k] = v
	}
	e.ValEnv.Iter(func(n ast.Name, v types.ValInfo) { out.ValEnv.Insert(n, v) })
	return out
}

// Extend inserts every binding of other into e (a `local`/`open`'s effect:
// bring another Env's names into scope).
func (e Env) Extend(other Env) {
	for k, v := range other.StrEnv {
		e.StrEnv[k] = v
	}
	for k, v := range other.TyEnv {
		e.TyEnv[k] = v
	}
	other.ValEnv.Iter(func(n ast.Name, v types.ValInfo) { e.ValEnv.Insert(n, v) })
}

// Cx is the elaboration context: the current environment plus the set of
// type variables currently in scope by name (for explicit `'a`
// occurrences inside a val binding to resolve to the same FixedVar).
type Cx struct {
	Env    Env
	TyVars map[ast.Name]types.Ty
}

// NewCx creates a Cx with an empty Env and no in-scope type variables.
func NewCx() Cx { return Cx{Env: NewEnv(), TyVars: map[ast.Name]types.Ty{}} }

// RootCx creates the Cx every top-level declaration sequence starts
// elaborating in: basis's type and value identifiers already in scope.
func RootCx(basis symbols.Basis) Cx {
	cx := NewCx()
	for name, info := range basis.RootTyEnv {
		cx.Env.TyEnv[name] = info
	}
	basis.RootValEnv.Iter(func(n ast.Name, v types.ValInfo) { cx.Env.ValEnv.Insert(n, v) })
	return cx
}

// WithEnv returns a copy of cx with Env replaced by env (TyVars shared).
func (cx Cx) WithEnv(env Env) Cx { return Cx{Env: env, TyVars: cx.TyVars} }
