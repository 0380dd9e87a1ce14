package types

// OverloadClass is one of the five basic overload classes an
// overload-constrained numeral or operator can resolve to (spec.md §3
// "Overloads").
type OverloadClass uint8

const (
	OverloadInt OverloadClass = iota
	OverloadReal
	OverloadWord
	OverloadString
	OverloadChar
)

// Overload is either a single basic class or a composite union of them
// (resolved Open Question 3, SPEC_FULL.md §9): a meta-var's overload
// constraint starts basic (from a numeric literal) and can widen to a
// composite set when unified with an operator's multi-class overload
// (e.g. `+`'s `{int, word, real}`).
type Overload struct {
	classes uint8 // bitset over OverloadClass, at most 5 bits used
}

func classBit(c OverloadClass) uint8 { return 1 << uint8(c) }

// Basic constructs a single-class overload.
func Basic(c OverloadClass) Overload { return Overload{classes: classBit(c)} }

// Composite constructs a union of several overload classes. Panics if cs
// is empty: an overload set is never empty (spec.md §3 invariant).
func Composite(cs ...OverloadClass) Overload {
	if len(cs) == 0 {
		panic("types: empty overload set")
	}
	var o Overload
	for _, c := range cs {
		o.classes |= classBit(c)
	}
	return o
}

// Contains reports whether c is one of o's classes.
func (o Overload) Contains(c OverloadClass) bool { return o.classes&classBit(c) != 0 }

// Classes returns o's member classes in ascending order.
func (o Overload) Classes() []OverloadClass {
	var out []OverloadClass
	for c := OverloadClass(0); c <= OverloadChar; c++ {
		if o.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Intersect returns the intersection of o and other, and whether it is
// non-empty. Two overloaded meta-vars fused by unification must leave a
// non-empty class set (spec.md §4.6 "Overload fusion").
func (o Overload) Intersect(other Overload) (Overload, bool) {
	r := Overload{classes: o.classes & other.classes}
	return r, r.classes != 0
}

// ContainsAll reports whether every class in other is also in o (used when
// fusing mv's existing overload into a newly-solved mv2, original_source's
// unify.rs "the old overload should be entirely contained in this overload").
func (o Overload) ContainsAll(other Overload) bool {
	return other.classes&^o.classes == 0
}

// Syms returns the default special Sym for each of o's classes, for the
// common case where no user overload (e.g. Int16.int) has widened it.
func (o Overload) Syms() []Sym {
	out := make([]Sym, 0, len(o.Classes()))
	for _, c := range o.Classes() {
		out = append(out, classDefaultSym(c))
	}
	return out
}

func classDefaultSym(c OverloadClass) Sym {
	switch c {
	case OverloadInt:
		return SymInt
	case OverloadReal:
		return SymReal
	case OverloadWord:
		return SymWord
	case OverloadString:
		return SymString
	case OverloadChar:
		return SymChar
	default:
		return SymInt
	}
}
