package runtime

import (
	"testing"

	"github.com/SymaLang/syma/term"
)

func sym(s string) *term.Term                       { return term.NewSymbol(s) }
func num(n float64) *term.Term                       { return term.NewNumber(n) }
func call(h *term.Term, a ...*term.Term) *term.Term { return term.NewCall(h, a...) }

func TestDispatchIncrementsCounter(t *testing.T) {
	// spec.md section 8: "Dispatch"
	countKV := call(sym("KV"), sym("Count"), num(0))
	state := call(sym("State"), countKV)
	ui := call(sym("UI"), sym("Empty"))
	app := call(sym("App"), state, ui)
	program := call(sym("Program"), app)

	incRule := call(sym("R"), term.NewString("inc"),
		call(sym("Apply"), sym("Inc"),
			call(sym("App"),
				call(sym("State"), call(sym("KV"), sym("Count"), term.NewVar("n"))),
				term.NewVar("ui"))),
		call(sym("App"),
			call(sym("State"), call(sym("KV"), sym("Count"), call(sym("Add"), term.NewVar("n"), num(1)))),
			term.NewVar("ui")),
	)
	rules := call(sym("Rules"), incRule)

	universe := NewUniverse(program, rules, nil, nil)

	next, err := Dispatch(universe, sym("Inc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newState, err := State(next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := call(sym("State"), call(sym("KV"), sym("Count"), num(1)))
	if !newState.Equal(want) {
		t.Fatalf("want state %v, got %v", want, newState)
	}
}

func TestDispatchRequiresProgram(t *testing.T) {
	universe := NewUniverse(nil, call(sym("Rules")), nil, nil)
	_, err := Dispatch(universe, sym("Inc"))
	if err == nil {
		t.Fatalf("expected error when Universe has no Program")
	}
}

func TestProjectUnmatchableWhenNoRuleFires(t *testing.T) {
	state := call(sym("State"), call(sym("KV"), sym("Count"), num(0)))
	app := call(sym("App"), state, sym("Empty"))
	program := call(sym("Program"), app)
	universe := NewUniverse(program, call(sym("Rules")), nil, nil)

	_, err := Project(universe, sym("SomeUnmatchedPart"))
	if err == nil {
		t.Fatalf("expected Unmatchable error")
	}
}

func TestProjectReturnsUserRuleResult(t *testing.T) {
	state := call(sym("State"), call(sym("KV"), sym("Count"), num(7)))
	app := call(sym("App"), state, sym("Empty"))
	program := call(sym("Program"), app)

	projRule := call(sym("R"), term.NewString("proj-count"),
		call(sym("/@"), sym("Count"),
			call(sym("App"),
				call(sym("State"), call(sym("KV"), sym("Count"), term.NewVar("n"))),
				term.NewVar("_"))),
		term.NewVar("n"),
	)
	universe := NewUniverse(program, call(sym("Rules"), projRule), nil, nil)

	result, err := Project(universe, sym("Count"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(num(7)) {
		t.Fatalf("want 7, got %v", result)
	}
}
