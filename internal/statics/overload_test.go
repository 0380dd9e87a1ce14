package statics_test

import (
	"testing"

	"millet/internal/types"
)

// TestOverloadIntersectBasicInComposite exercises int ∩ {int,word}, the
// simplest case of two overloaded meta-vars fusing (spec.md §9 Open
// Question 3): a basic overload intersected with a composite one that
// contains it resolves back to the basic class.
func TestOverloadIntersectBasicInComposite(t *testing.T) {
	a := types.Basic(types.OverloadInt)
	b := types.Composite(types.OverloadInt, types.OverloadWord)

	r, ok := a.Intersect(b)
	if !ok {
		t.Fatalf("int ∩ {int,word} should be non-empty")
	}
	if !r.Contains(types.OverloadInt) || len(r.Classes()) != 1 {
		t.Fatalf("int ∩ {int,word} should be exactly {int}, got %v", r.Classes())
	}
}

// TestOverloadIntersectCompositeComposite exercises {int,word} ∩
// {word,real}: two composite overload sets that share exactly one class.
// The fusion must keep that one class, not reject the pair outright.
func TestOverloadIntersectCompositeComposite(t *testing.T) {
	a := types.Composite(types.OverloadInt, types.OverloadWord)
	b := types.Composite(types.OverloadWord, types.OverloadReal)

	r, ok := a.Intersect(b)
	if !ok {
		t.Fatalf("{int,word} ∩ {word,real} should be non-empty (shared class word)")
	}
	if !r.Contains(types.OverloadWord) || len(r.Classes()) != 1 {
		t.Fatalf("{int,word} ∩ {word,real} should be exactly {word}, got %v", r.Classes())
	}
}

// TestOverloadIntersectDisjointFails covers the genuinely-empty case: two
// overload sets that share no class must fail to unify.
func TestOverloadIntersectDisjointFails(t *testing.T) {
	a := types.Basic(types.OverloadReal)
	b := types.Basic(types.OverloadString)

	if _, ok := a.Intersect(b); ok {
		t.Fatalf("real ∩ string should be empty, overloads are disjoint")
	}
}

// TestOverloadContainsAll mirrors original_source/crates/statics/src/unify.rs's
// "the old overload should be entirely contained in this overload" check
// used when fusing a solved meta-var's prior constraint into a new one.
func TestOverloadContainsAll(t *testing.T) {
	wide := types.Composite(types.OverloadInt, types.OverloadWord, types.OverloadReal)
	narrow := types.Composite(types.OverloadInt, types.OverloadWord)

	if !wide.ContainsAll(narrow) {
		t.Fatalf("{int,word,real} should contain all of {int,word}")
	}
	if narrow.ContainsAll(wide) {
		t.Fatalf("{int,word} should not contain all of {int,word,real}")
	}
}
