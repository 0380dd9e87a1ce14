package ast

import "millet/internal/source"

// Dec is a surface core-level declaration (as opposed to StrDec, a
// module-level declaration).
type Dec interface{ decSpan() source.Span }

func DecSpan(d Dec) source.Span {
	if d == nil {
		return source.Span{}
	}
	return d.decSpan()
}

// ValBind is one `pat = exp` inside a `val [rec] ... and ...` declaration.
type ValBind struct {
	Rec  bool
	Pat  Pat
	Exp  Exp
	Span source.Span
}

// ValDec is `val tyvarseq valbind`.
type ValDec struct {
	TyVars []TyVar
	Binds  []ValBind
	Span   source.Span
}

func (d *ValDec) decSpan() source.Span { return d.Span }

// FunBind is one clause-group (one function name, possibly several arity
// clauses, possibly curried) inside a `fun ... and ...` declaration.
// Lowering desugars this to a single ValBind: `val rec f = fn arg1 => ...`
// built from a case matcher per spec.md's standard `fun`-to-`val rec`
// translation.
type FunClause struct {
	Op     bool
	Name   Name
	Args   []Pat
	RetTy  Ty // nil if absent
	Body   Exp
	Span   source.Span
}

type FunBind struct {
	Clauses []FunClause
	Span    source.Span
}

// FunDec is `fun tyvarseq funbind`.
type FunDec struct {
	TyVars []TyVar
	Binds  []FunBind
	Span   source.Span
}

func (d *FunDec) decSpan() source.Span { return d.Span }

// TyBind is one `tyvarseq name = ty` clause of a `type`/`withtype`
// declaration.
type TyBind struct {
	TyVars []TyVar
	Name   Name
	Ty     Ty
	Span   source.Span
}

// TypeDec is `type tybind and ...`.
type TypeDec struct {
	Binds []TyBind
	Span  source.Span
}

func (d *TypeDec) decSpan() source.Span { return d.Span }

// ConBind is one constructor clause of a `datatype` declaration.
type ConBind struct {
	Op   bool
	Name Name
	Arg  Ty // nil if nullary
	Span source.Span
}

// DatBind is one `tyvarseq name = conbind | ...` clause.
type DatBind struct {
	TyVars []TyVar
	Name   Name
	Cons   []ConBind
	Span   source.Span
}

// DatatypeDec is `datatype datbind and ... [withtype tybind and ...]`. The
// `withtype` clauses stay attached here rather than becoming a separate
// top-level Dec, per spec.md §4.5, so statics resolves them with full
// knowledge of the sibling datatypes' type constructors.
type DatatypeDec struct {
	Binds    []DatBind
	WithType []TyBind
	Span     source.Span
}

func (d *DatatypeDec) decSpan() source.Span { return d.Span }

// DatatypeCopyDec is `datatype name = datatype path`.
type DatatypeCopyDec struct {
	Name Name
	Path Path
	Span source.Span
}

func (d *DatatypeCopyDec) decSpan() source.Span { return d.Span }

// AbstypeDec is `abstype datbind and ... [withtype ...] with dec end`.
type AbstypeDec struct {
	Binds    []DatBind
	WithType []TyBind
	Dec      Dec
	Span     source.Span
}

func (d *AbstypeDec) decSpan() source.Span { return d.Span }

// ExBindKind distinguishes a fresh exception from a renaming one.
type ExBindKind uint8

const (
	ExBindNew ExBindKind = iota
	ExBindCopy
)

// ExBind is one clause of an `exception` declaration: either
// `name [of ty]` (fresh) or `name = path` (copy of an existing exception).
type ExBind struct {
	Kind   ExBindKind
	Op     bool
	Name   Name
	Arg    Ty   // ExBindNew, nil if nullary
	Source Path // ExBindCopy
	Span   source.Span
}

// ExceptionDec is `exception exbind and ...`.
type ExceptionDec struct {
	Binds []ExBind
	Span  source.Span
}

func (d *ExceptionDec) decSpan() source.Span { return d.Span }

// LocalDec is `local dec1 in dec2 end`.
type LocalDec struct {
	Left, Right Dec
	Span        source.Span
}

func (d *LocalDec) decSpan() source.Span { return d.Span }

// OpenDec is `open path ...`.
type OpenDec struct {
	Paths []Path
	Span  source.Span
}

func (d *OpenDec) decSpan() source.Span { return d.Span }

// SeqDec sequences several declarations (separated by `;` or by
// whitespace at the grammar's top level).
type SeqDec struct {
	Decs []Dec
	Span source.Span
}

func (d *SeqDec) decSpan() source.Span { return d.Span }

// FixityKind is the flavor of a fixity declaration.
type FixityKind uint8

const (
	FixityInfix FixityKind = iota
	FixityInfixr
	FixityNonfix
)

// FixityDec is `infix|infixr [d] vid ...` or `nonfix vid ...`. It affects
// only the parser's operator precedence table; lowering drops it (there is
// no corresponding HIR node, matching the Dec list in spec.md §3).
type FixityDec struct {
	Kind  FixityKind
	Level int
	Names []Name
	Span  source.Span
}

func (d *FixityDec) decSpan() source.Span { return d.Span }

// HoleDec marks a recovery point: parsing expected a declaration and
// found none usable.
type HoleDec struct{ Span source.Span }

func (d *HoleDec) decSpan() source.Span { return d.Span }
