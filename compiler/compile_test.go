package compiler

import (
	"testing"

	"github.com/SymaLang/syma/ruleset"
	"github.com/SymaLang/syma/term"
)

func sym(s string) *term.Term { return term.NewSymbol(s) }
func str(s string) *term.Term { return term.NewString(s) }
func num(n float64) *term.Term { return term.NewNumber(n) }
func call(h *term.Term, a ...*term.Term) *term.Term { return term.NewCall(h, a...) }

// termRegistry stands in for a parser: term.String() is not invertible,
// so tests register modules as raw *term.Term values keyed by the
// "source text" string handed to NewCompiler.
type termRegistry map[string]*term.Term

func (r termRegistry) parseFunc() ParseFunc {
	return func(src string) (*term.Term, error) {
		return r[src], nil
	}
}

func TestCompileSingleModuleDispatch(t *testing.T) {
	// Module App: a Program and one rule incrementing a counter,
	// mirroring spec.md section 8's "Dispatch" scenario but routed
	// through the full compiler pipeline.
	incRule := call(sym("R"), str("inc"),
		call(sym("Apply"), sym("Inc"),
			call(sym("App"),
				call(sym("State"), call(sym("KV"), sym("Count"), term.NewVar("n"))),
				term.NewVar("ui"))),
		call(sym("App"),
			call(sym("State"), call(sym("KV"), sym("Count"), call(sym("Add"), term.NewVar("n"), num(1)))),
			term.NewVar("ui")),
	)
	program := call(sym("App"),
		call(sym("State"), call(sym("KV"), sym("Count"), num(0))),
		call(sym("UI"), sym("Empty")),
	)
	mod := call(sym("Module"), sym("App"),
		call(sym("Rules"), incRule),
		call(sym("Program"), program),
	)

	reg := termRegistry{"app.syma": mod}
	c := NewCompiler(map[string]string{"App": "app.syma"}, "App", false, reg.parseFunc(), nil)

	universe, err := c.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v (errors: %v)", err, c.Errors)
	}
	if !universe.IsCallTo("Universe") {
		t.Fatalf("expected a Universe[...] term, got %v", universe)
	}

	rules, err := ruleset.ExtractRules(universe)
	if err != nil {
		t.Fatalf("ExtractRules: %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("want 1 rule, got %d", len(rules))
	}
	if rules[0].Name != "inc" {
		t.Fatalf("want rule name %q untouched (R's first arg preserved verbatim), got %q", "inc", rules[0].Name)
	}
}

func TestCompileQualifiesLocalDefinitions(t *testing.T) {
	// Module Util defines `double`; its rule head references `double`
	// unqualified and must come out qualified to Util/double, per
	// spec.md section 4.9 step 5's "appears anywhere else in this module".
	mod := call(sym("Module"), sym("Util"),
		call(sym("Defs"), call(sym("Def"), sym("double"), call(sym("Mul"), term.NewVar("x"), num(2)))),
		call(sym("Rules"), call(sym("R"), str("use-double"),
			call(sym("double"), term.NewVar("x")),
			call(sym("Mul"), term.NewVar("x"), num(2)))),
	)
	reg := termRegistry{"util.syma": mod}
	c := NewCompiler(map[string]string{"Util": "util.syma"}, "Util", true, reg.parseFunc(), nil)

	universe, err := c.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v (errors: %v)", err, c.Errors)
	}

	rules, err := ruleset.ExtractRules(universe)
	if err != nil {
		t.Fatalf("ExtractRules: %v", err)
	}
	// Two definition rules (symbol + nullary-call forms) plus the one
	// hand-written rule.
	if len(rules) != 3 {
		t.Fatalf("want 3 rules (2 def forms + 1 user rule), got %d", len(rules))
	}

	var foundQualifiedDefRule, foundQualifiedCallSite bool
	for _, r := range rules {
		if r.Name == "Util/double/Def" {
			foundQualifiedDefRule = true
			if r.LHS.Kind != term.Symbol || r.LHS.Sym() != "Util/double" {
				t.Fatalf("want Def rule LHS Sym Util/double, got %v", r.LHS)
			}
		}
		if r.Name == "use-double" {
			if r.LHS.Head().Sym() != "Util/double" {
				foundQualifiedCallSite = false
			} else {
				foundQualifiedCallSite = true
			}
		}
	}
	if !foundQualifiedDefRule {
		t.Fatalf("expected a Util/double/Def rule among: %+v", rules)
	}
	if !foundQualifiedCallSite {
		t.Fatalf("expected use-double's call site qualified to Util/double")
	}
}

func TestCompileDetectsImportCycle(t *testing.T) {
	a := call(sym("Module"), sym("A"),
		call(sym("Import"), call(sym("ImportEntry"), sym("B"))),
		call(sym("Rules")),
	)
	b := call(sym("Module"), sym("B"),
		call(sym("Import"), call(sym("ImportEntry"), sym("A"))),
		call(sym("Rules")),
	)
	reg := termRegistry{"a.syma": a, "b.syma": b}
	c := NewCompiler(map[string]string{"A": "a.syma", "B": "b.syma"}, "A", true, reg.parseFunc(), nil)

	if _, err := c.Compile(); err == nil {
		t.Fatalf("expected a CircularDependency error")
	}
}

func TestCompileEntryModeRequiresProgram(t *testing.T) {
	mod := call(sym("Module"), sym("Lib"), call(sym("Rules")))
	reg := termRegistry{"lib.syma": mod}
	c := NewCompiler(map[string]string{"Lib": "lib.syma"}, "Lib", false, reg.parseFunc(), nil)

	if _, err := c.Compile(); err == nil {
		t.Fatalf("expected an error: entry mode requires a Program section")
	}
}
