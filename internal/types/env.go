package types

import "millet/internal/ast"

// IdStatus distinguishes the three kinds of bound identifiers (Definition
// of Standard ML's `IdStatus`): an ordinary value, a datatype constructor,
// or an exception constructor.
type IdStatusTag uint8

const (
	IdVal IdStatusTag = iota
	IdCon
	IdExn
)

// IdStatus is a value identifier's status; Exn carries which exception it
// names (needed to look up its parameter type in the Exn table).
type IdStatus struct {
	Tag IdStatusTag
	Exn Sym // valid iff Tag == IdExn; names the owning Sym's Exn slot
}

// SameKind reports whether a and b are the same IdStatus variant,
// regardless of payload (mirrors info.rs's IdStatus::same_kind_as, used by
// signature matching to reject e.g. ascribing a constructor as a plain
// value).
func (a IdStatus) SameKind(b IdStatus) bool { return a.Tag == b.Tag }

// ValInfo is what a ValEnv maps a name to: its type scheme and identifier
// status.
type ValInfo struct {
	Scheme   TyScheme
	IdStatus IdStatus
}

// TyInfo is what a TyEnv maps a name to: a datatype or type abbreviation's
// scheme, plus the constructors (if any) it brings into scope.
type TyInfo struct {
	Scheme TyScheme
	ValEnv ValEnv
}

// ValEnv is an insertion-ordered name -> ValInfo map (spec.md §3 invariant:
// "A ValEnv preserves insertion order", used for signature-declaration
// ordering and for deterministic diagnostic/hover output).
type ValEnv struct {
	order []ast.Name
	m     map[ast.Name]ValInfo
}

// NewValEnv creates an empty ValEnv.
func NewValEnv() *ValEnv { return &ValEnv{m: make(map[ast.Name]ValInfo)} }

// Insert adds or overwrites name's binding, preserving its original
// insertion position on overwrite (shadowing within one ValEnv keeps the
// earlier slot, matching a single record/let scope's declaration order).
func (e *ValEnv) Insert(name ast.Name, v ValInfo) {
	if _, ok := e.m[name]; !ok {
		e.order = append(e.order, name)
	}
	e.m[name] = v
}

// Get looks up name.
func (e *ValEnv) Get(name ast.Name) (ValInfo, bool) {
	v, ok := e.m[name]
	return v, ok
}

// Iter calls f for every binding in insertion order.
func (e *ValEnv) Iter(f func(ast.Name, ValInfo)) {
	for _, name := range e.order {
		f(name, e.m[name])
	}
}

// Len returns the number of bindings.
func (e *ValEnv) Len() int { return len(e.order) }

// TyEnv is a name -> TyInfo map. Unlike ValEnv, iteration order is never
// observed (type declarations don't have a user-visible signature-matching
// order requirement), so a plain map suffices.
type TyEnv map[ast.Name]TyInfo
