package hir

import "millet/internal/ast"

// ValBind is one `pat = exp` clause of a Val declaration.
type ValBind struct {
	Rec bool
	Pat Idx[Pat]
	Exp Idx[Exp]
}

// TyBind is one `tyvarseq name = ty` clause of a Ty/withtype declaration.
type TyBind struct {
	TyVars []ast.TyVar
	Name   ast.Name
	Ty     Idx[Ty]
}

// ConBind is one constructor clause of a datatype.
type ConBind struct {
	Name ast.Name
	Arg  Idx[Ty] // zero if nullary
}

// DatBind is one `tyvarseq name = conbind | ...` clause of a Datatype
// declaration.
type DatBind struct {
	TyVars []ast.TyVar
	Name   ast.Name
	Cons   []ConBind
}

// ExBind is one clause of an Exception declaration: a fresh exception
// (Arg set, Source zero-valued) or a copy of an existing one (Source set).
type ExBind struct {
	Name   ast.Name
	Arg    Idx[Ty]
	Source ast.Path // non-empty Last iff this is a `= path` copy
	IsCopy bool
}

// DecKind enumerates the shapes a Dec node can take (spec.md §3).
type DecKind uint8

const (
	DecHole DecKind = iota
	DecVal
	DecTy
	DecDatatype
	DecDatatypeCopy
	DecAbstype
	DecException
	DecLocal
	DecOpen
	DecSeq
)

type ValDec struct {
	TyVars []ast.TyVar
	Binds  []ValBind
}

type TyDec struct{ Binds []TyBind }

type DatatypeDec struct {
	Binds    []DatBind
	WithType []TyBind
}

type DatatypeCopyDec struct {
	Name ast.Name
	Path ast.Path
}

type AbstypeDec struct {
	Binds    []DatBind
	WithType []TyBind
	Dec      Idx[Dec]
}

type ExceptionDec struct{ Binds []ExBind }

type LocalDec struct{ Left, Right Idx[Dec] }

type OpenDec struct{ Paths []ast.Path }

type SeqDec struct{ Decs []Idx[Dec] }

// Dec is one lowered core declaration node, stored by value in
// Program.Decs.
type Dec struct {
	Kind DecKind

	Val           ValDec
	Ty            TyDec
	Datatype      DatatypeDec
	DatatypeCopy  DatatypeCopyDec
	Abstype       AbstypeDec
	Exception     ExceptionDec
	Local         LocalDec
	Open          OpenDec
	Seq           SeqDec
}
