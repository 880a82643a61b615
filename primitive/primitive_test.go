package primitive

import (
	"testing"

	"github.com/SymaLang/syma/term"
)

func TestFoldArithmetic(t *testing.T) {
	in := term.NewCall(term.NewSymbol("Add"), term.NewNumber(1), term.NewNumber(2))
	out, err := Fold(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(term.NewNumber(3)) {
		t.Fatalf("want 3, got %v", out)
	}
}

func TestFoldDivisionByZero(t *testing.T) {
	in := term.NewCall(term.NewSymbol("Div"), term.NewNumber(1), term.NewNumber(0))
	_, err := Fold(in)
	if err == nil {
		t.Fatalf("expected division-by-zero error")
	}
}

func TestFoldLeavesUnrecognizedHeadUnchanged(t *testing.T) {
	in := term.NewCall(term.NewSymbol("Frobnicate"), term.NewNumber(1))
	out, err := Fold(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("want unchanged %v, got %v", in, out)
	}
}

func TestFoldLeavesNonGroundCallUnchanged(t *testing.T) {
	in := term.NewCall(term.NewSymbol("Add"), term.NewVar("x"), term.NewNumber(2))
	out, err := Fold(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("want unchanged %v, got %v", in, out)
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	in := term.NewCall(term.NewSymbol("Mul"), term.NewNumber(2),
		term.NewCall(term.NewSymbol("Add"), term.NewNumber(1), term.NewNumber(2)))
	once, err := Fold(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Fold(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !once.Equal(twice) {
		t.Fatalf("fold must be idempotent: once=%v twice=%v", once, twice)
	}
}

func TestFoldEqNeqStructural(t *testing.T) {
	out, _ := Fold(term.NewCall(term.NewSymbol("Eq"), term.NewString("a"), term.NewString("a")))
	if !out.Equal(term.NewSymbol("True")) {
		t.Fatalf("want True, got %v", out)
	}
	out, _ = Fold(term.NewCall(term.NewSymbol("Neq"), term.NewString("a"), term.NewString("b")))
	if !out.Equal(term.NewSymbol("True")) {
		t.Fatalf("want True, got %v", out)
	}
}

func TestFoldStringPrimitives(t *testing.T) {
	out, err := Fold(term.NewCall(term.NewSymbol("Concat"), term.NewString("a"), term.NewNumber(1), term.NewSymbol("b")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(term.NewString("a1b")) {
		t.Fatalf("want a1b, got %v", out)
	}

	out, err = Fold(term.NewCall(term.NewSymbol("Substring"), term.NewString("hello"), term.NewNumber(1), term.NewNumber(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(term.NewString("el")) {
		t.Fatalf("want el, got %v", out)
	}
}

func TestFoldPredicates(t *testing.T) {
	out, _ := Fold(term.NewCall(term.NewSymbol("IsNum"), term.NewNumber(1)))
	if !out.Equal(term.NewSymbol("True")) {
		t.Fatalf("want True, got %v", out)
	}
	out, _ = Fold(term.NewCall(term.NewSymbol("IsStr"), term.NewNumber(1)))
	if !out.Equal(term.NewSymbol("False")) {
		t.Fatalf("want False, got %v", out)
	}
}
