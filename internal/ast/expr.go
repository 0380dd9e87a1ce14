package ast

import "millet/internal/source"

// Exp is a surface expression node. SML's AtExp/AppExp/InfExp/Exp grammar
// layers are already resolved by the parser's precedence climbing, so Exp
// does not separately distinguish "atomic" expressions (the same
// simplification spec.md §4.5 records HIR as making).
type Exp interface{ expSpan() source.Span }

// ExpSpan returns e's source span, or the zero Span if e is nil (a recovery
// hole).
func ExpSpan(e Exp) source.Span {
	if e == nil {
		return source.Span{}
	}
	return e.expSpan()
}

type SConKind uint8

const (
	SConInt SConKind = iota
	SConWord
	SConReal
	SConChar
	SConString
)

// SCon is a special constant literal.
type SCon struct {
	Kind SConKind
	Text string // original lexeme, sign/radix intact; lowering parses it
	Span source.Span
}

func (e *SCon) expSpan() source.Span { return e.Span }

// PathExp is a (possibly qualified, possibly `op`-prefixed) value
// reference.
type PathExp struct {
	Op   bool
	Path Path
	Span source.Span
}

func (e *PathExp) expSpan() source.Span { return e.Span }

// ExpRow is one label: expression pair inside a record expression.
type ExpRow struct {
	Lab  Lab
	Exp  Exp
	Span source.Span
}

// RecordExp is `{ lab = exp, ... }`; a tuple `(e1, e2)` desugars to this
// with tuple labels during parsing.
type RecordExp struct {
	Rows []ExpRow
	Span source.Span
}

func (e *RecordExp) expSpan() source.Span { return e.Span }

// LetExp is `let dec in exp end`.
type LetExp struct {
	Dec  Dec
	Body Exp
	Span source.Span
}

func (e *LetExp) expSpan() source.Span { return e.Span }

// AppExp is function application `func arg`.
type AppExp struct {
	Func Exp
	Arg  Exp
	Span source.Span
}

func (e *AppExp) expSpan() source.Span { return e.Span }

// Arm is one `pat => exp`-shaped alternative in a matcher (fn, case,
// handle).
type Arm struct {
	Pat  Pat
	Exp  Exp
	Span source.Span
}

// HandleExp is `exp handle matcher`.
type HandleExp struct {
	Exp     Exp
	Matcher []Arm
	Span    source.Span
}

func (e *HandleExp) expSpan() source.Span { return e.Span }

// RaiseExp is `raise exp`.
type RaiseExp struct {
	Exp  Exp
	Span source.Span
}

func (e *RaiseExp) expSpan() source.Span { return e.Span }

// FnExp is `fn matcher`.
type FnExp struct {
	Matcher []Arm
	Span    source.Span
}

func (e *FnExp) expSpan() source.Span { return e.Span }

// TypedExp is `exp : ty`.
type TypedExp struct {
	Exp  Exp
	Ty   Ty
	Span source.Span
}

func (e *TypedExp) expSpan() source.Span { return e.Span }

// CaseExp is `case exp of matcher`; lowering desugars it to
// `(fn matcher) exp`.
type CaseExp struct {
	Exp     Exp
	Matcher []Arm
	Span    source.Span
}

func (e *CaseExp) expSpan() source.Span { return e.Span }

// IfExp is `if c then t else f`; lowering desugars it to a two-arm case
// over `true`/`false`.
type IfExp struct {
	Cond, Then, Else Exp
	Span             source.Span
}

func (e *IfExp) expSpan() source.Span { return e.Span }

// AndalsoExp / OrelseExp are the short-circuiting logical connectives;
// lowering desugars both to IfExp-shaped HIR.
type AndalsoExp struct {
	Left, Right Exp
	Span        source.Span
}

func (e *AndalsoExp) expSpan() source.Span { return e.Span }

type OrelseExp struct {
	Left, Right Exp
	Span        source.Span
}

func (e *OrelseExp) expSpan() source.Span { return e.Span }

// WhileExp is `while c do body`; lowering desugars it via a recursive
// local function, as the Definition prescribes.
type WhileExp struct {
	Cond, Body Exp
	Span       source.Span
}

func (e *WhileExp) expSpan() source.Span { return e.Span }

// SeqExp is `(e1; e2; ...; en)`.
type SeqExp struct {
	Exps []Exp
	Span source.Span
}

func (e *SeqExp) expSpan() source.Span { return e.Span }

// HoleExp marks a syntax error recovery point: parsing expected an
// expression and found none.
type HoleExp struct{ Span source.Span }

func (e *HoleExp) expSpan() source.Span { return e.Span }
