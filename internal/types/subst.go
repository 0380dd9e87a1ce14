package types

// SubstEntryTag distinguishes a meta-var's two possible Subst states.
type SubstEntryTag uint8

const (
	// SubstSolved means the meta-var has been unified to a concrete Ty.
	SubstSolved SubstEntryTag = iota
	// SubstKind means the meta-var is still free, but constrained (e.g.
	// to an equality type, or an overload class).
	SubstKind
)

// SubstEntry is what a Subst maps a MetaTyVar to: either a solution, or a
// remaining constraint (original_source/crates/statics/src/unify.rs's
// `SubstEntry::{Solved,Kind}`).
type SubstEntry struct {
	Tag   SubstEntryTag
	Ty    Ty        // valid iff Tag == SubstSolved
	Kind  TyVarKind // valid iff Tag == SubstKind
}

// Solved constructs a SubstEntry recording that a meta-var was solved to t.
func Solved(t Ty) SubstEntry { return SubstEntry{Tag: SubstSolved, Ty: t} }

// KindEntry constructs a SubstEntry recording a meta-var's remaining
// constraint kind.
func KindEntry(k TyVarKind) SubstEntry { return SubstEntry{Tag: SubstKind, Kind: k} }

// Subst is the per-file map from meta type variables to their current
// solution or constraint (spec.md §3 Lifecycles: "Subst (meta-var
// solutions) is per file"). It is one flat map for the whole file, with no
// nested or child Subst.
type Subst struct {
	entries map[MetaTyVar]SubstEntry
}

// NewSubst creates an empty Subst.
func NewSubst() *Subst { return &Subst{entries: make(map[MetaTyVar]SubstEntry)} }

// Get returns mv's current entry, if any.
func (s *Subst) Get(mv MetaTyVar) (SubstEntry, bool) {
	e, ok := s.entries[mv]
	return e, ok
}

// Insert records an entry for mv, returning its previous entry if any.
// Unification never changes arena HIR, only this map (spec.md §3 invariant).
func (s *Subst) Insert(mv MetaTyVar, e SubstEntry) (SubstEntry, bool) {
	old, ok := s.entries[mv]
	s.entries[mv] = e
	return old, ok
}

// Apply fully resolves t through s: every KindMetaVar that has been Solved
// is replaced by its solution, recursively, leaving unsolved meta-vars (and
// everything else) untouched. Structural children go through store so the
// rebuilt type stays canonically interned.
func Apply(store *Store, s *Subst, t Ty) Ty {
	switch t.Kind {
	case KindMetaVar:
		e, ok := s.Get(t.AsMetaVar())
		if !ok || e.Tag != SubstSolved {
			return t
		}
		return Apply(store, s, e.Ty)
	case KindRecord:
		rows := store.RecordRows(t)
		out := make([]Row, len(rows))
		changed := false
		for i, r := range rows {
			nt := Apply(store, s, r.Ty)
			out[i] = Row{Lab: r.Lab, Ty: nt}
			changed = changed || nt != r.Ty
		}
		if !changed {
			return t
		}
		return store.Record(out)
	case KindCon:
		info := store.ConInfo(t)
		args := make([]Ty, len(info.Args))
		changed := false
		for i, a := range info.Args {
			na := Apply(store, s, a)
			args[i] = na
			changed = changed || na != a
		}
		if !changed {
			return t
		}
		return store.Con(info.Sym, args)
	case KindFn:
		info := store.FnInfo(t)
		param := Apply(store, s, info.Param)
		res := Apply(store, s, info.Res)
		if param == info.Param && res == info.Res {
			return t
		}
		return store.Fn(param, res)
	default:
		return t
	}
}
