package ruleset

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/SymaLang/syma/term"
)

func sym(s string) *term.Term                       { return term.NewSymbol(s) }
func str(s string) *term.Term                       { return term.NewString(s) }
func num(n float64) *term.Term                       { return term.NewNumber(n) }
func call(h *term.Term, a ...*term.Term) *term.Term { return term.NewCall(h, a...) }

func r(name string, lhs, rhs *term.Term) *term.Term {
	return call(sym("R"), str(name), lhs, rhs)
}

func TestExtractRulesPlainUntagged(t *testing.T) {
	universe := call(sym("Universe"),
		call(sym("Rules"),
			r("inc", call(sym("Inc"), term.NewVar("x")), call(sym("Add"), term.NewVar("x"), num(1))),
		),
	)
	rules, err := ExtractRules(universe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 1 || rules[0].Name != "inc" {
		t.Fatalf("expected one rule named inc, got %+v", rules)
	}
	wantLHS := call(sym("Inc"), term.NewVar("x"))
	if diff := cmp.Diff(wantLHS, rules[0].LHS); diff != "" {
		t.Fatalf("extracted LHS mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRulesSortsByPriorityThenSource(t *testing.T) {
	universe := call(sym("Universe"),
		call(sym("Rules"),
			call(sym("R"), str("a"), sym("A"), sym("A'"), num(0)),
			call(sym("R"), str("b"), sym("B"), sym("B'"), num(5)),
			call(sym("R"), str("c"), sym("C"), sym("C'"), num(5)),
		),
	)
	rules, err := ExtractRules(universe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
	if rules[0].Name != "b" || rules[1].Name != "c" || rules[2].Name != "a" {
		t.Fatalf("expected order [b c a], got %v %v %v", rules[0].Name, rules[1].Name, rules[2].Name)
	}
}

func TestExtractRulesMetaRewriteAndSplat(t *testing.T) {
	// A RuleRules entry rewrites Def[name, Args[n], Body[expr]] into
	// Splat[r1, r2] (spec.md section 8: "Meta-rewrite + Splat").
	defPattern := call(sym("Def"), term.NewVar("name"),
		call(sym("Args"), term.NewVar("n")),
		call(sym("Body"), term.NewVar("expr")))

	splatRHS := call(sym("Splat"),
		r("defA", call(sym("CallA"), term.NewVar("n")), term.NewVar("expr")),
		r("defB", call(sym("CallB"), term.NewVar("n")), term.NewVar("expr")),
	)

	universe := call(sym("Universe"),
		call(sym("Rules"),
			call(sym("Def"), sym("Double"), call(sym("Args"), term.NewVar("_")), call(sym("Body"), num(0))),
		),
		call(sym("RuleRules"),
			r("expand-def", defPattern, splatRHS),
		),
	)

	rules, err := ExtractRules(universe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected Splat to expand into 2 rules, got %d: %+v", len(rules), rules)
	}
	names := map[string]bool{rules[0].Name: true, rules[1].Name: true}
	if !names["defA"] || !names["defB"] {
		t.Fatalf("expected rules named defA and defB, got %v", names)
	}
}

func TestExtractRulesMacroScopingIsolatesModules(t *testing.T) {
	// A meta-rule tagged to module "M" must not rewrite rules tagged
	// to a module outside M's visible scope (spec.md section 8,
	// property 9).
	metaLHS := call(sym("Marker"), term.NewVar("_"))
	metaRHS := sym("Rewritten")

	taggedRuleOther := call(sym("TaggedRule"), sym("Other"),
		call(sym("Marker"), sym("x")))

	universe := call(sym("Universe"),
		call(sym("Rules"), taggedRuleOther),
		call(sym("RuleRules"),
			call(sym("TaggedRuleRule"), sym("M"), r("mark", metaLHS, metaRHS)),
		),
	)

	_, err := ExtractRules(universe)
	if err == nil {
		t.Fatalf("expected InvalidModule: Marker[...] never resolves to R[...] because M's meta-rule is out of scope for Other")
	}
}
