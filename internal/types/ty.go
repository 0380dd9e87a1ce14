// Package types is the compact, semantic type representation that statics
// computes and dynamics never sees: the "Semantic types (statics)" layer of
// spec.md §3, distinct from hir.Ty (which only records surface syntax).
package types

import "millet/internal/ast"

// Kind enumerates the shapes a Ty can take.
type Kind uint8

const (
	KindNone Kind = iota
	KindBoundVar
	KindMetaVar
	KindFixedVar
	KindRecord
	KindCon
	KindFn
)

// Ty is a compact (8-byte) handle: Kind plus a payload index whose meaning
// depends on Kind. It is cheap to copy and safe to use as a map key, which
// unify's occurs-check and Subst rely on.
type Ty struct {
	Kind Kind
	Idx  uint32
}

// None is the "no useful type" poison value: it silently unifies with
// anything (spec.md §7, "None is a poison type").
var None = Ty{Kind: KindNone}

// IsNone reports whether t is the None poison type.
func (t Ty) IsNone() bool { return t.Kind == KindNone }

// BoundVar returns the Ty for de Bruijn-indexed bound variable n, as found
// inside a TyScheme body.
func BoundVar(n uint32) Ty { return Ty{Kind: KindBoundVar, Idx: n} }

// BoundVarIndex returns the de Bruijn index of a KindBoundVar Ty.
func (t Ty) BoundVarIndex() uint32 { return t.Idx }

// MetaTyVar is an opaque, generation-ordered meta type variable id, minted
// by (*Store).NewMetaVar. It never resolves structurally; its solution (or
// constraint kind) lives in a Subst, keyed by this id.
type MetaTyVar uint32

// MetaVar wraps a MetaTyVar as a Ty.
func MetaVar(mv MetaTyVar) Ty { return Ty{Kind: KindMetaVar, Idx: uint32(mv)} }

// AsMetaVar returns t's MetaTyVar; only valid when t.Kind == KindMetaVar.
func (t Ty) AsMetaVar() MetaTyVar { return MetaTyVar(t.Idx) }

// FixedTyVar is an opaque id for a rigid (skolem) type variable introduced
// while elaborating a val binding's explicit or implicit type variables.
type FixedTyVar uint32

// FixedVar wraps a FixedTyVar as a Ty.
func FixedVar(fv FixedTyVar) Ty { return Ty{Kind: KindFixedVar, Idx: uint32(fv)} }

// AsFixedVar returns t's FixedTyVar; only valid when t.Kind == KindFixedVar.
func (t Ty) AsFixedVar() FixedTyVar { return FixedTyVar(t.Idx) }

// Row is one label/type pair of a record type, kept in canonical
// (sorted) order so two structurally-equal records intern to the same Ty.
type Row struct {
	Lab ast.Lab
	Ty  Ty
}

// ConInfo is the payload of a KindCon Ty: a symbol applied to zero or more
// argument types, e.g. `int`, `'a list`, `('a, 'b) t`.
type ConInfo struct {
	Args []Ty
	Sym  Sym
}

// FnInfo is the payload of a KindFn Ty.
type FnInfo struct {
	Param Ty
	Res   Ty
}
