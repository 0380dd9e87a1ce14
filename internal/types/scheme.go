package types

// TyVarKindTag distinguishes the four shapes a bound (or meta) type
// variable's constraint can take (spec.md §3).
type TyVarKindTag uint8

const (
	TyVarRegular TyVarKindTag = iota
	TyVarEquality
	TyVarOverloaded
	TyVarUnresolvedRecord
)

// TyVarKind is a bound type variable's constraint, as recorded in a
// TyScheme, or a meta-var's constraint, as recorded in a Subst entry.
type TyVarKind struct {
	Tag      TyVarKindTag
	Overload Overload     // valid iff Tag == TyVarOverloaded
	Rows     []Row        // valid iff Tag == TyVarUnresolvedRecord
	HasTail  bool         // record pattern had `...`: more fields may exist
}

// Regular is the unconstrained, non-equality type variable kind.
var Regular = TyVarKind{Tag: TyVarRegular}

// Equality is the `''a`-style equality-constrained kind.
var Equality = TyVarKind{Tag: TyVarEquality}

// Overloaded constrains a type variable to one of ov's classes.
func Overloaded(ov Overload) TyVarKind { return TyVarKind{Tag: TyVarOverloaded, Overload: ov} }

// UnresolvedRecord constrains a type variable to be a record containing at
// least rows, with more fields allowed iff hasTail (a `{x: int, ...}`
// pattern whose tail type is not yet known).
func UnresolvedRecord(rows []Row, hasTail bool) TyVarKind {
	return TyVarKind{Tag: TyVarUnresolvedRecord, Rows: rows, HasTail: hasTail}
}

// TyScheme is a ∀-bound type: Bound[i] gives the kind of the i-th bound
// variable referenced as BoundVar(i) inside Ty.
type TyScheme struct {
	Bound []TyVarKind
	Ty    Ty
}

// Mono wraps a plain (non-generalized) type as a zero-variable scheme.
func Mono(t Ty) TyScheme { return TyScheme{Ty: t} }

// IsMono reports whether the scheme binds no variables.
func (s TyScheme) IsMono() bool { return len(s.Bound) == 0 }
