// Package symbols holds the process-lifetime table of generated type
// names (spec.md §3 "Syms"): the `types.Sym` -> definition-site info
// mapping threaded mutably through every file's elaboration, grounded on
// original_source/crates/sml-statics-types/src/sym.rs.
package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"millet/internal/ast"
	"millet/internal/types"
)

// Equality records whether a Sym's values admit the equality relation, and
// whether that depends on its type arguments (spec.md §4.6 "Equality
// checking" case (f)).
type Equality uint8

const (
	// EqualityAlways: admits equality regardless of type arguments (e.g. int).
	EqualityAlways Equality = iota
	// EqualitySometimes: admits equality iff all type arguments do (e.g. 'a list).
	EqualitySometimes
	// EqualityNever: never admits equality (e.g. real, ->).
	EqualityNever
)

// SymInfo is the information recorded for one types.Sym.
type SymInfo struct {
	Path     ast.Path
	TyInfo   types.TyInfo
	Equality Equality
}

// ExnInfo is the information recorded for one exception constructor.
type ExnInfo struct {
	Path  ast.Path
	Param types.Ty // None if the exception carries no argument
}

// Exn is an opaque id for one declared exception, looked up via Syms.GetExn.
type Exn uint32

// SymsMarker records Syms's length at some point in time, to later ask
// "was this Sym generated after the marker?" (signature matching's
// generated_after / TyNameEscape check, spec.md §4.6).
type SymsMarker struct{ n int }

// Syms is the process-lifetime symbol table: every generated type name and
// every declared exception, across every file in one Analysis invocation
// (spec.md §3 Lifecycles).
type Syms struct {
	infos     []SymInfo // indexed by types.Sym, minus the EXN offset (see idx)
	exns      []ExnInfo
	overloads Overloads
}

// Overloads maps each basic overload class to its (possibly widened-by-the-
// standard-basis) set of admissible syms. Each field is non-empty once the
// standard basis has been installed.
type Overloads struct {
	Int, Real, Word, String, Char []types.Sym
}

// ForClass returns the syms registered for overload class c.
func (o Overloads) ForClass(c types.OverloadClass) []types.Sym {
	switch c {
	case types.OverloadInt:
		return o.Int
	case types.OverloadReal:
		return o.Real
	case types.OverloadWord:
		return o.Word
	case types.OverloadString:
		return o.String
	case types.OverloadChar:
		return o.Char
	default:
		return nil
	}
}

// New creates a Syms table with no entries yet, not even the special
// syms: callers insert those via Start/Finish (see NewWithBasis for the
// usual entry point, in prelude.go).
func New() *Syms { return &Syms{} }

// symIdx maps a types.Sym to an index into infos. EXN (0) is a sentinel
// with no SymInfo entry of its own (it never needs one: it's only ever
// referenced via an ExnInfo.Param or similar, never elaborated as a type
// constructor).
func symIdx(s types.Sym) int { return int(s) - 1 }

// StartedSym is returned by Start and must be passed to Finish once the
// sym's full TyInfo is known (e.g. after elaborating a datatype's
// constructors, which may recursively mention the sym being defined).
type StartedSym struct {
	sym types.Sym
}

// Sym returns the sym this StartedSym will finish into.
func (s StartedSym) Sym() types.Sym { return s.sym }

// Start begins constructing a new Sym at path, reserving its slot (at a
// temporary, "sometimes equality" assumption, since a datatype's own
// constructors may need to look up its own Sym before its equality is
// known) until Finish is called.
func (s *Syms) Start(path ast.Path) StartedSym {
	n, err := safecast.Conv[uint32](len(s.infos) + 1) // +1 to skip EXN=0
	if err != nil {
		panic(fmt.Errorf("symbols: overflow: %w", err))
	}
	s.infos = append(s.infos, SymInfo{Path: path, Equality: EqualitySometimes})
	return StartedSym{sym: types.Sym(n)}
}

// Finish completes a Sym started with Start, recording its final TyInfo
// and Equality.
func (s *Syms) Finish(started StartedSym, tyInfo types.TyInfo, eq Equality) {
	idx := symIdx(started.sym)
	s.infos[idx].TyInfo = tyInfo
	s.infos[idx].Equality = eq
}

// Get returns sym's info. Returns false only for SymExn (a sentinel with
// no direct SymInfo) or a sym from a different Syms table.
func (s *Syms) Get(sym types.Sym) (SymInfo, bool) {
	if sym == types.SymExn {
		return SymInfo{}, false
	}
	idx := symIdx(sym)
	if idx < 0 || idx >= len(s.infos) {
		return SymInfo{}, false
	}
	return s.infos[idx], true
}

// EqualityOf returns sym's Equality, treating an unknown sym as Never.
func (s *Syms) EqualityOf(sym types.Sym) Equality {
	info, ok := s.Get(sym)
	if !ok {
		return EqualityNever
	}
	return info.Equality
}

// InsertExn registers a new exception constructor and returns its id.
func (s *Syms) InsertExn(path ast.Path, param types.Ty) Exn {
	id := Exn(len(s.exns))
	s.exns = append(s.exns, ExnInfo{Path: path, Param: param})
	return id
}

// GetExn returns e's info.
func (s *Syms) GetExn(e Exn) ExnInfo { return s.exns[e] }

// Mark returns a marker capturing the table's current length, for a later
// GeneratedAfter query.
func (s *Syms) Mark() SymsMarker { return SymsMarker{n: len(s.infos)} }

// GeneratedAfter reports whether sym was minted after marker was taken
// (spec.md §4.6: prevents a freshly-generated abstract sym from a signature
// ascription from leaking past the scope that generated it).
func (s *Syms) GeneratedAfter(sym types.Sym, marker SymsMarker) bool {
	if sym == types.SymExn {
		return false
	}
	return symIdx(sym) >= marker.n
}

// Overloads returns the installed overload class -> syms table.
func (s *Syms) Overloads() Overloads { return s.overloads }

// SetOverloads installs ov as the table's overload classes (called once,
// while building the standard basis).
func (s *Syms) SetOverloads(ov Overloads) { s.overloads = ov }

// Iter calls f for every registered sym in definition order.
func (s *Syms) Iter(f func(types.Sym, SymInfo)) {
	for i, info := range s.infos {
		n, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("symbols: overflow: %w", err))
		}
		f(types.Sym(n), info)
	}
}
