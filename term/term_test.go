package term

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEqualStructural(t *testing.T) {
	a := NewCall(NewSymbol("Add"), NewNumber(1), NewNumber(2))
	b := NewCall(NewSymbol("Add"), NewNumber(1), NewNumber(2))
	if !a.Equal(b) {
		t.Fatalf("expected structurally identical terms to be equal")
	}

	c := NewCall(NewSymbol("Add"), NewNumber(1), NewNumber(3))
	if a.Equal(c) {
		t.Fatalf("expected terms with differing args to be unequal")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := NewCall(NewSymbol("F"), NewString("x"), NewVar("y"))
	b := NewCall(NewSymbol("F"), NewString("x"), NewVar("y"))
	if a.Hash() != b.Hash() {
		t.Fatalf("equal terms must hash equal")
	}
}

func TestIsGround(t *testing.T) {
	if !NewNumber(1).IsGround() {
		t.Fatalf("a number literal is ground")
	}
	if NewVar("x").IsGround() {
		t.Fatalf("a Var is never ground")
	}
	if NewCall(NewSymbol("F"), NewVarRest("xs")).IsGround() {
		t.Fatalf("a call containing a VarRest is never ground")
	}
}

func TestNewCallCopiesArgs(t *testing.T) {
	args := []*Term{NewNumber(1), NewNumber(2)}
	c := NewCall(NewSymbol("L"), args...)
	args[0] = NewNumber(99)
	if !c.Args()[0].Equal(NewNumber(1)) {
		t.Fatalf("NewCall must defensively copy its args slice")
	}
}

func TestBuildArgsFlattensSplice(t *testing.T) {
	parts := []Part{
		NewNumber(1),
		NewSplice([]*Term{NewNumber(2), NewNumber(3)}),
		NewNumber(4),
	}
	got := BuildArgs(parts)
	want := []*Term{NewNumber(1), NewNumber(2), NewNumber(3), NewNumber(4)}
	// *Term implements Equal, so cmp.Diff compares element-by-element
	// through it rather than needing AllowUnexported.
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildArgs mismatch (-want +got):\n%s", diff)
	}
}

func TestAsVarAndAsVarRest(t *testing.T) {
	v := NewVar("x")
	name, ok := v.AsVar()
	if !ok || name != "x" {
		t.Fatalf("expected Var x, got %q %v", name, ok)
	}
	if _, ok := v.AsVarRest(); ok {
		t.Fatalf("a Var must not also report as VarRest")
	}

	r := NewVarRest("xs")
	name, ok = r.AsVarRest()
	if !ok || name != "xs" {
		t.Fatalf("expected VarRest xs, got %q %v", name, ok)
	}
}
