package rewrite

import (
	"testing"

	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/term"
)

func TestApplyOncePriorityBreaksOverlap(t *testing.T) {
	// spec.md section 8: "Priority breaks overlap"
	hi := &rule.Rule{
		Name: "hi", Priority: 10,
		LHS: term.NewCall(term.NewSymbol("F"), term.NewVar("x")),
		RHS: term.NewSymbol("A"),
	}
	lo := &rule.Rule{
		Name: "lo", Priority: 0,
		LHS: term.NewCall(term.NewSymbol("F"), term.NewNumber(0)),
		RHS: term.NewSymbol("B"),
	}
	rules := []*rule.Rule{hi, lo}
	rule.SortByPriority(rules)

	res, err := ApplyOnce(term.NewCall(term.NewSymbol("F"), term.NewNumber(0)), rules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed || !res.Term.Equal(term.NewSymbol("A")) {
		t.Fatalf("want A (higher priority wins), got changed=%v term=%v", res.Changed, res.Term)
	}
}

func TestApplyOnceOutermostPreference(t *testing.T) {
	outer := &rule.Rule{
		Name: "outer",
		LHS:  term.NewCall(term.NewSymbol("F"), term.NewVar("x")),
		RHS:  term.NewSymbol("Done"),
	}
	res, err := ApplyOnce(
		term.NewCall(term.NewSymbol("F"), term.NewCall(term.NewSymbol("G"), term.NewNumber(1))),
		[]*rule.Rule{outer},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed || !res.Term.Equal(term.NewSymbol("Done")) {
		t.Fatalf("expected root rule to fire before any descendant, got %v", res.Term)
	}
}

func TestApplyOnceRecursesIntoArgsWhenNoRootMatch(t *testing.T) {
	inc := &rule.Rule{
		Name: "inc",
		LHS:  term.NewCall(term.NewSymbol("Inc"), term.NewVar("x")),
		RHS:  term.NewNumber(1),
	}
	subject := term.NewCall(term.NewSymbol("L"), term.NewCall(term.NewSymbol("Inc"), term.NewNumber(0)))
	res, err := ApplyOnce(subject, []*rule.Rule{inc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := term.NewCall(term.NewSymbol("L"), term.NewNumber(1))
	if !res.Changed || !res.Term.Equal(want) {
		t.Fatalf("want %v, got %v", want, res.Term)
	}
}

func TestApplyOnceNoMatchLeavesUnchanged(t *testing.T) {
	res, err := ApplyOnce(term.NewNumber(5), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Changed {
		t.Fatalf("expected no change with an empty rule set")
	}
}
