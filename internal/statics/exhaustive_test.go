package statics_test

import (
	"testing"

	"millet/internal/diag"
)

func TestNonExhaustiveMatchMissingFalse(t *testing.T) {
	bag := elaborate(t, "val f = fn x => case x of true => 1;")
	if !hasCode(bag, diag.StaticsNonExhaustiveMatch) {
		t.Fatalf("expected a non-exhaustive-match diagnostic for a missing false arm, got %v", bag.Items())
	}
}

func TestExhaustiveMatchBothArms(t *testing.T) {
	bag := elaborate(t, "val f = fn x => case x of true => 1 | false => 0;")
	if hasCode(bag, diag.StaticsNonExhaustiveMatch) {
		t.Fatalf("both bool arms present, expected no exhaustiveness diagnostic, got %v", bag.Items())
	}
}

func TestNonExhaustiveMatchMissingNilCase(t *testing.T) {
	bag := elaborate(t, "val f = fn x => case x of a :: b => a;")
	if !hasCode(bag, diag.StaticsNonExhaustiveMatch) {
		t.Fatalf("expected a non-exhaustive-match diagnostic for a missing nil arm, got %v", bag.Items())
	}
}
