package lexer_test

import (
	"testing"

	"millet/internal/diag"
	"millet/internal/lexer"
	"millet/internal/source"
)

func lex(t *testing.T, src string) lexer.Result {
	t.Helper()
	fset := source.NewFileSet()
	fid := fset.AddVirtual("test.sml", []byte(src))
	return lexer.Lex(fset.Get(fid))
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestIncompleteHexLiteral(t *testing.T) {
	res := lex(t, "val x = 0x;")
	if !hasCode(res.Errors, diag.LexInvalidNumeric) {
		t.Fatalf("expected an invalid-numeric diagnostic for a bare 0x, got %v", res.Errors.Items())
	}
}

func TestCompleteHexLiteralHasNoErrors(t *testing.T) {
	res := lex(t, "val x = 0xFF;")
	if res.Errors.HasErrors() {
		t.Fatalf("0xFF is a complete hex literal, got %v", res.Errors.Items())
	}
}

func TestIncompleteTypeVariable(t *testing.T) {
	res := lex(t, "val x : ' = 1;")
	if !hasCode(res.Errors, diag.LexIncompleteTyVar) {
		t.Fatalf("expected an incomplete-type-variable diagnostic for a bare quote, got %v", res.Errors.Items())
	}
}

func TestCompleteTypeVariableHasNoErrors(t *testing.T) {
	res := lex(t, "fun id (x: 'a) = x;")
	if res.Errors.HasErrors() {
		t.Fatalf("'a is a complete type variable, got %v", res.Errors.Items())
	}
}
