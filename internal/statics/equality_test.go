package statics_test

import (
	"testing"

	"millet/internal/diag"
)

func TestEqualityAcceptsInt(t *testing.T) {
	bag := elaborate(t, "val x = (1 = 1);")
	if bag.HasErrors() {
		t.Fatalf("int equality should be accepted, got %v", bag.Items())
	}
}

func TestEqualityRejectsFunctionType(t *testing.T) {
	bag := elaborate(t, "fun same (f: int -> int) (g: int -> int) = f = g;")
	if !hasCode(bag, diag.StaticsMismatchedTypes) {
		t.Fatalf("expected unifying a function type against an equality var to fail, got %v", bag.Items())
	}
}

func TestEqualityRejectsRealDirectly(t *testing.T) {
	bag := elaborate(t, "val x = (1.0 = 1.0);")
	if !bag.HasErrors() {
		t.Fatal("real does not admit equality; expected a diagnostic")
	}
}
