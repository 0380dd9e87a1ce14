// Package dynamics is a small-step stack machine over lowered HIR
// expressions and declarations (spec.md §4.7), grounded on
// original_source/crates/sml-dynamics/src/step.rs. It exists for
// illustrative reduction of a checked program, not as a full SML
// implementation: there is no mutable-reference cell, no I/O, and no
// built-in arithmetic/library primitive evaluation, matching the original
// step function's own scope (it steps only Exp/Dec/Pat/Val shapes; `ref`
// behaves as an ordinary unary data constructor, never dereferenced).
package dynamics

import (
	"millet/internal/ast"
	"millet/internal/hir"
	"millet/internal/symbols"
)

// ConTag distinguishes a datatype constructor value from an exception
// value (spec.md §4.7 "Values: ... Con{kind, arg?} ...").
type ConTag uint8

const (
	ConDat ConTag = iota
	ConExn
)

// ConKind identifies which constructor or exception a Con value was built
// from. Exn additionally carries the declared exception's identity, which
// keeps values of two same-named-but-distinct `exception Foo` declarations
// apart in the Val data; pattern matching (matchVal) compares Name only and
// does not consult it.
type ConKind struct {
	Tag  ConTag
	Name ast.Name
	Exn  symbols.Exn // valid iff Tag == ConExn
}

// Con is a fully- or partially-applied data/exception constructor value.
type Con struct {
	Kind ConKind
	Arg  *Val // nil for a nullary constructor, or one not yet applied
}

// Closure is a function value: the matcher, the environment it closes
// over, and (for `val rec`) the set of names the binding's pattern
// introduced, each of which resolves back to this same Closure when
// looked up in env (spec.md §4.7 "Recursive val rec captures all names
// from the pattern into Closure.this").
type Closure struct {
	Env     Env
	This    map[ast.Name]bool
	Matcher []hir.Arm
}

// ValKind enumerates the shapes a Val can take.
type ValKind uint8

const (
	ValSCon ValKind = iota
	ValCon
	ValClosure
	ValRecord
)

// Val is a fully-reduced value of the stack machine.
type Val struct {
	Kind    ValKind
	SCon    hir.SCon
	Con     Con
	Closure Closure
	Record  map[string]Val // keyed by labKey(lab), see pat_match.go
}

// Env is the runtime environment: every name currently bound to a value,
// including every in-scope datatype constructor and exception name (each
// inserted as a nullary Con the moment its declaration is stepped — see
// declare.go) so ExpPath never needs a separate statics-computed
// IdStatus side table the way the original's cx.exp cache does.
type Env struct {
	Val map[ast.Name]Val
}

// NewEnv returns an empty Env.
func NewEnv() Env { return Env{Val: map[ast.Name]Val{}} }

// Clone makes an independent shallow copy of e.
func (e Env) Clone() Env {
	out := make(map[ast.Name]Val, len(e.Val))
	for k, v := range e.Val {
		out[k] = v
	}
	return Env{Val: out}
}

// Extend inserts every binding of other into e.
func (e Env) Extend(other Env) {
	for k, v := range other.Val {
		e.Val[k] = v
	}
}
