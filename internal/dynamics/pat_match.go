package dynamics

import (
	"fmt"

	"millet/internal/ast"
	"millet/internal/hir"
)

// labKey collapses a hir.ExpRow/PatRow's ast.Lab to a span-insensitive
// identity, matching internal/statics's labKeyOf: two labels naming the
// same field (or the same tuple position) must compare equal as map keys
// regardless of which AST node each came from.
func labKey(l ast.Lab) string {
	if l.IsTuple() {
		return fmt.Sprintf("#%d", l.Index)
	}
	return string(l.Name)
}

// sconEq reports whether two special constants denote the same literal
// (spec.md §4.6's sconKey idea, reused here for runtime literal-pattern
// matching instead of exhaustiveness bucketing).
func sconEq(a, b hir.SCon) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case hir.SConInt, hir.SConWord:
		if a.IsSmall && b.IsSmall {
			return a.Small == b.Small
		}
		if a.Int != nil && b.Int != nil {
			return a.Int.Cmp(b.Int) == 0
		}
		return false
	default:
		return a.Text == b.Text
	}
}

// matchVal attempts to match val against the pattern at patIdx, inserting
// every variable the pattern binds into ac. It reports whether the match
// succeeded; on failure ac may still have been partially populated by the
// caller, which must discard it (spec.md §4.7's pat_match::get).
func matchVal(prog *hir.Program, ac *Env, patIdx hir.Idx[hir.Pat], val Val) bool {
	if !patIdx.IsValid() {
		return true
	}
	pat := prog.Pats.Get(patIdx)
	switch pat.Kind {
	case hir.PatWild:
		return true

	case hir.PatSCon:
		return val.Kind == ValSCon && sconEq(pat.SCon, val.SCon)

	case hir.PatCon:
		if val.Kind != ValCon {
			return false
		}
		if val.Con.Kind.Name != pat.Con.Path.Last {
			return false
		}
		if !pat.Con.Arg.IsValid() {
			return val.Con.Arg == nil
		}
		if val.Con.Arg == nil {
			return false
		}
		return matchVal(prog, ac, pat.Con.Arg, *val.Con.Arg)

	case hir.PatRecord:
		if val.Kind != ValRecord {
			return false
		}
		for _, row := range pat.Record.Rows {
			field, ok := val.Record[labKey(row.Lab)]
			if !ok {
				return false
			}
			if !matchVal(prog, ac, row.Pat, field) {
				return false
			}
		}
		return true

	case hir.PatTyped:
		return matchVal(prog, ac, pat.Typed.Pat, val)

	case hir.PatAs:
		insertVar(ac, pat.As.Name, val)
		return matchVal(prog, ac, pat.As.Pat, val)

	case hir.PatOr:
		if matchVal(prog, ac, pat.Or.First, val) {
			return true
		}
		for _, alt := range pat.Or.Rest {
			if matchVal(prog, ac, alt, val) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

func insertVar(ac *Env, name ast.Name, val Val) {
	if name == "_" {
		return
	}
	ac.Val[name] = val
}

// recFnNames collects every name a `val rec` binding's pattern introduces,
// so the resulting Closure can tie each of them back to itself (spec.md
// §4.7 "Recursive val rec captures all names from the pattern").
func recFnNames(prog *hir.Program, ac map[ast.Name]bool, patIdx hir.Idx[hir.Pat]) {
	if !patIdx.IsValid() {
		return
	}
	pat := prog.Pats.Get(patIdx)
	switch pat.Kind {
	case hir.PatCon:
		ac[pat.Con.Path.Last] = true
	case hir.PatTyped:
		recFnNames(prog, ac, pat.Typed.Pat)
	case hir.PatAs:
		ac[pat.As.Name] = true
		recFnNames(prog, ac, pat.As.Pat)
	}
}
