package statics_test

import (
	"testing"

	"millet/internal/diag"
)

func TestMismatchedTypesRealPlusInt(t *testing.T) {
	bag := elaborate(t, "val x = 1.1 + 1;")
	if !hasCode(bag, diag.StaticsMismatchedTypes) {
		t.Fatalf("expected a mismatched-types diagnostic, got %v", bag.Items())
	}
}

func TestOverloadMismatchDivReal(t *testing.T) {
	bag := elaborate(t, "val x = 1 div 0.5;")
	if !hasCode(bag, diag.StaticsOverloadMismatch) && !hasCode(bag, diag.StaticsMismatchedTypes) {
		t.Fatalf("expected div's int/word overload to reject a real operand, got %v", bag.Items())
	}
}

func TestPolymorphicIdentityHasNoErrors(t *testing.T) {
	bag := elaborate(t, "fun id x = x; val a = id 1; val b = id true;")
	if bag.HasErrors() {
		t.Fatalf("id should generalize over its argument type, got %v", bag.Items())
	}
}

func TestCircularityOccursCheck(t *testing.T) {
	bag := elaborate(t, "fun f x = x x;")
	if !hasCode(bag, diag.StaticsCircularity) {
		t.Fatalf("expected a circularity diagnostic for self-application, got %v", bag.Items())
	}
}
