package normalize

import (
	"testing"

	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/term"
)

func TestNormalizeArithmeticFold(t *testing.T) {
	// spec.md section 8: "Arithmetic fold"
	in := term.NewCall(term.NewSymbol("Add"), term.NewNumber(1), term.NewNumber(2))
	out, err := Normalize(in, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(term.NewNumber(3)) {
		t.Fatalf("want 3, got %v", out)
	}
}

func TestNormalizeRestVariableBinding(t *testing.T) {
	// spec.md section 8: "Rest-variable binding"
	rev1 := &rule.Rule{
		Name: "rev/1",
		LHS: term.NewCall(term.NewSymbol("Rev"),
			term.NewCall(term.NewSymbol("L"), term.NewVar("x"), term.NewVarRest("xs"))),
		RHS: term.NewCall(term.NewSymbol("Append"),
			term.NewCall(term.NewSymbol("Rev"), term.NewCall(term.NewSymbol("L"), term.NewVarRest("xs"))),
			term.NewCall(term.NewSymbol("L"), term.NewVar("x"))),
	}
	rev0 := &rule.Rule{
		Name: "rev/0",
		LHS:  term.NewCall(term.NewSymbol("Rev"), term.NewCall(term.NewSymbol("L"))),
		RHS:  term.NewCall(term.NewSymbol("L")),
	}
	appendRule := &rule.Rule{
		Name: "append",
		LHS: term.NewCall(term.NewSymbol("Append"),
			term.NewCall(term.NewSymbol("L"), term.NewVarRest("a")),
			term.NewCall(term.NewSymbol("L"), term.NewVarRest("b"))),
		RHS: term.NewCall(term.NewSymbol("L"), term.NewVarRest("a"), term.NewVarRest("b")),
	}

	rules := []*rule.Rule{rev1, rev0, appendRule}
	rule.SortByPriority(rules)

	in := term.NewCall(term.NewSymbol("Rev"),
		term.NewCall(term.NewSymbol("L"), term.NewNumber(1), term.NewNumber(2), term.NewNumber(3)))

	out, err := Normalize(in, rules, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := term.NewCall(term.NewSymbol("L"), term.NewNumber(3), term.NewNumber(2), term.NewNumber(1))
	if !out.Equal(want) {
		t.Fatalf("want %v, got %v", want, out)
	}
}

func TestNormalizeNonTermination(t *testing.T) {
	loop := &rule.Rule{
		Name: "loop",
		LHS:  term.NewCall(term.NewSymbol("F"), term.NewVar("x")),
		RHS:  term.NewCall(term.NewSymbol("F"), term.NewVar("x")),
	}
	_, err := Normalize(term.NewCall(term.NewSymbol("F"), term.NewNumber(0)), []*rule.Rule{loop}, 100)
	if !errs.Is(err, errs.NonTermination) {
		t.Fatalf("expected NonTermination, got %v", err)
	}
}

func TestNormalizeWithTraceRecordsSteps(t *testing.T) {
	inc := &rule.Rule{
		Name: "inc",
		LHS:  term.NewCall(term.NewSymbol("Inc"), term.NewVar("x")),
		RHS:  term.NewCall(term.NewSymbol("Add"), term.NewVar("x"), term.NewNumber(1)),
	}
	out, records, err := NormalizeWithTrace(term.NewCall(term.NewSymbol("Inc"), term.NewNumber(4)), []*rule.Rule{inc}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(term.NewNumber(5)) {
		t.Fatalf("want 5, got %v", out)
	}
	if len(records) == 0 {
		t.Fatalf("expected at least one trace record")
	}
	if records[0].Rule != "inc" {
		t.Fatalf("expected first step to record rule 'inc', got %q", records[0].Rule)
	}
}
