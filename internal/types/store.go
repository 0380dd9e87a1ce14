package types

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"millet/internal/ast"
)

// Store interns the structural payloads (record rows, constructor
// applications, function arrows) that a compact Ty indexes into, and mints
// fresh meta and fixed type variables. It is the "indexes into type data"
// half of spec.md §3's "Semantic types" paragraph, adapted from the
// teacher's types.Interner (internal/types/interner.go in the teacher
// repo): dedup structural descriptors behind a small-key map so two
// structurally-equal types intern to the same payload slot.
type Store struct {
	records    [][]Row
	recordKey  map[string]uint32
	cons       []ConInfo
	conKey     map[string]uint32
	fns        []FnInfo
	fnKey      map[fnKey]uint32
	fixedVars  []fixedVarInfo
	nextMetaID uint32
}

type fixedVarInfo struct {
	equality bool
}

type fnKey struct{ param, res Ty }

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		recordKey: make(map[string]uint32),
		conKey:    make(map[string]uint32),
		fnKey:     make(map[fnKey]uint32),
	}
}

// Record interns a record type from rows, which need not be pre-sorted;
// Store canonicalizes the order so structurally-equal records compare
// equal as Ty values.
func (s *Store) Record(rows []Row) Ty {
	sorted := append([]Row(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return rowLess(sorted[i].Lab, sorted[j].Lab) })
	key := recordKeyOf(sorted)
	if idx, ok := s.recordKey[key]; ok {
		return Ty{Kind: KindRecord, Idx: idx}
	}
	idx := mustIdx(len(s.records))
	s.records = append(s.records, sorted)
	s.recordKey[key] = idx
	return Ty{Kind: KindRecord, Idx: idx}
}

// RecordRows returns the canonical (sorted) rows of a KindRecord Ty.
func (s *Store) RecordRows(t Ty) []Row {
	if t.Kind != KindRecord {
		return nil
	}
	return s.records[t.Idx]
}

// Con interns a constructor application sym(args...).
func (s *Store) Con(sym Sym, args []Ty) Ty {
	key := conKeyOf(sym, args)
	if idx, ok := s.conKey[key]; ok {
		return Ty{Kind: KindCon, Idx: idx}
	}
	idx := mustIdx(len(s.cons))
	s.cons = append(s.cons, ConInfo{Sym: sym, Args: append([]Ty(nil), args...)})
	s.conKey[key] = idx
	return Ty{Kind: KindCon, Idx: idx}
}

// ConInfo returns the payload of a KindCon Ty.
func (s *Store) ConInfo(t Ty) ConInfo {
	if t.Kind != KindCon {
		return ConInfo{}
	}
	return s.cons[t.Idx]
}

// Fn interns a function arrow param -> res.
func (s *Store) Fn(param, res Ty) Ty {
	k := fnKey{param, res}
	if idx, ok := s.fnKey[k]; ok {
		return Ty{Kind: KindFn, Idx: idx}
	}
	idx := mustIdx(len(s.fns))
	s.fns = append(s.fns, FnInfo{Param: param, Res: res})
	s.fnKey[k] = idx
	return Ty{Kind: KindFn, Idx: idx}
}

// FnInfo returns the payload of a KindFn Ty.
func (s *Store) FnInfo(t Ty) FnInfo {
	if t.Kind != KindFn {
		return FnInfo{}
	}
	return s.fns[t.Idx]
}

// NewFixedVar mints a fresh rigid (skolem) type variable, used when
// elaborating a val binding's (explicit or implicit) type variables.
func (s *Store) NewFixedVar(equality bool) Ty {
	idx := mustIdx(len(s.fixedVars))
	s.fixedVars = append(s.fixedVars, fixedVarInfo{equality: equality})
	return Ty{Kind: KindFixedVar, Idx: idx}
}

// FixedVarEquality reports whether a KindFixedVar Ty was declared with the
// `''a` equality marker.
func (s *Store) FixedVarEquality(t Ty) bool {
	if t.Kind != KindFixedVar {
		return false
	}
	return s.fixedVars[t.Idx].equality
}

// NewMetaVar mints a fresh meta type variable id. Meta-vars are not
// structurally interned (they are scratch state, not permanent type data);
// their constraint/solution lives in a Subst, keyed by this id.
func (s *Store) NewMetaVar() MetaTyVar {
	id := s.nextMetaID
	s.nextMetaID++
	return MetaTyVar(id)
}

func mustIdx(n int) uint32 {
	idx, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("types: store overflow: %w", err))
	}
	return idx
}

func rowLess(a, b ast.Lab) bool {
	if a.IsTuple() != b.IsTuple() {
		return a.IsTuple()
	}
	if a.IsTuple() {
		return a.Index < b.Index
	}
	return a.Name < b.Name
}

func labKey(l ast.Lab) string {
	if l.IsTuple() {
		return fmt.Sprintf("#%d", l.Index)
	}
	return string(l.Name)
}

func recordKeyOf(rows []Row) string {
	s := ""
	for _, r := range rows {
		s += labKey(r.Lab) + "=" + tyKeyOf(r.Ty) + ";"
	}
	return s
}

func conKeyOf(sym Sym, args []Ty) string {
	s := fmt.Sprintf("%d(", sym)
	for _, a := range args {
		s += tyKeyOf(a) + ","
	}
	return s + ")"
}

func tyKeyOf(t Ty) string { return fmt.Sprintf("%d:%d", t.Kind, t.Idx) }
