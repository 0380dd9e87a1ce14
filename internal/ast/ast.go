// Package ast is the parser's output tree: a concrete syntax tree with
// first-class "missing" nodes so error recovery never needs to fail the
// whole parse (spec.md §4.4). internal/lower walks this tree into HIR.
package ast

import "millet/internal/source"

// Name is an interned small identifier. Interning happens in the parser
// via a shared *Names table so HIR/statics can compare names by value.
type Name string

// Path is a (possibly empty) qualified name: structures.last.
type Path struct {
	Structures []Name
	Last       Name
	Span       source.Span
}

// TyVar is a user-written type variable, optionally equality-marked
// ('a vs ''a).
type TyVar struct {
	Name     Name // without leading quotes
	Equality bool
	Span     source.Span
}

// Lab is a record/tuple label: either a name (#foo) or a 1-based tuple
// index (#1).
type Lab struct {
	Name  Name
	Index int // > 0 for tuple labels, 0 for named labels
	Span  source.Span
}

func (l Lab) IsTuple() bool { return l.Index > 0 }

// File is one parsed top-level source file: a sequence of top-level
// structure-level declarations (SML permits bare `val`/`fun`/... at top
// level as sugar for an implicit structure).
type File struct {
	Decs  []StrDec
	Span  source.Span
}
