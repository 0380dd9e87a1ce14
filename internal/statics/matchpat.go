package statics

import (
	"millet/internal/ast"
	"millet/internal/hir"
	"millet/internal/types"
)

// matchKind enumerates the four normalized pattern shapes the
// default-matrix exhaustiveness algorithm operates over (spec.md §4.6:
// "the standard default-matrix algorithm over Wild | Con | Record | SCon").
type matchKind uint8

const (
	matchWild matchKind = iota
	matchCon
	matchRecord
	matchSCon
)

// matchPat is the normalized pattern pat.go elaborates every hir.Pat down
// to, alongside the ValEnv additions and expected type it also produces.
// It discards everything exhaustiveness doesn't need: variable names,
// `as`-bindings, type ascriptions, and `or`-patterns (expanded into
// multiple matchPat rows by the caller instead of represented inline).
type matchPat struct {
	kind matchKind

	// matchCon: which type (sym) and which constructor of it, plus its
	// argument sub-pattern if the constructor takes one.
	sym types.Sym
	con ast.Name
	arg *matchPat

	// matchRecord: one sub-pattern per row, in the row's canonical order.
	rows  []ast.Lab
	elems []matchPat

	// matchSCon: a canonical text key so equal literals compare equal
	// regardless of surface formatting (e.g. `0x1` vs `1`).
	sconKind hir.SConKind
	sconKey  string
}

func wildMatch() matchPat { return matchPat{kind: matchWild} }
