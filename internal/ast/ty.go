package ast

import "millet/internal/source"

// Ty is a surface type expression.
type Ty interface{ tySpan() source.Span }

func TySpan(t Ty) source.Span {
	if t == nil {
		return source.Span{}
	}
	return t.tySpan()
}

// VarTy is a reference to a type variable.
type VarTy struct {
	Var  TyVar
	Span source.Span
}

func (t *VarTy) tySpan() source.Span { return t.Span }

// TyRow is one label: type pair inside a record type.
type TyRow struct {
	Lab  Lab
	Ty   Ty
	Span source.Span
}

// RecordTy is `{ lab : ty, ... }`.
type RecordTy struct {
	Rows []TyRow
	Span source.Span
}

func (t *RecordTy) tySpan() source.Span { return t.Span }

// ConTy is `ty1 ... tyn path`, e.g. `int list`, `(int, string) pair`, or
// `int` (zero arguments).
type ConTy struct {
	Args []Ty
	Path Path
	Span source.Span
}

func (t *ConTy) tySpan() source.Span { return t.Span }

// FnTy is `ty1 -> ty2`.
type FnTy struct {
	Param, Result Ty
	Span          source.Span
}

func (t *FnTy) tySpan() source.Span { return t.Span }

// HoleTy marks a recovery point: parsing expected a type and found none.
type HoleTy struct{ Span source.Span }

func (t *HoleTy) tySpan() source.Span { return t.Span }
