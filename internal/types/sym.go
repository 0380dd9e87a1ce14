package types

// Sym names a generated type: a primitive (int, bool, ...) or a
// user-declared datatype. Special syms are reserved at fixed indices so
// core-language unification never has to look them up by name
// (original_source/crates/sml-statics-types/src/sym.rs, "@sync(special_sym_order)").
type Sym uint32

const (
	SymExn Sym = iota
	SymInt
	SymWord
	SymReal
	SymChar
	SymString
	SymBool
	SymList
	SymRef
	SymVector

	symFirstGenerated
)

// IsSpecial reports whether s is one of the reserved primitive syms.
func (s Sym) IsSpecial() bool { return s < symFirstGenerated }
