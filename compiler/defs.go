package compiler

import (
	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/term"
)

const (
	defSymbolPriority = 1000
	defCallPriority   = 999
)

// expandDefs turns a module's qualified defs map into the two
// high-priority rules per definition described by spec.md section 4.9
// step 6: a symbol form (Sym("mod/name") rewrites to expr) and a
// nullary call form (Call(Sym("mod/name")) rewrites to expr). A def's
// own name is always qualified to its defining module, unconditionally
// ("mod/name") — it must not go through the general bare-reference
// qualification heuristic (open-import export redirection, "used
// elsewhere in this module"), since an exported helper that nothing in
// its own module calls by bare name would otherwise come out
// unqualified or aliased to a different module. qualifiedName does
// that unconditional "mod/" + name mapping; expr must already be
// qualified.
func expandDefs(order []string, defs map[string]*term.Term, qualifiedName func(name string) string) []*rule.Rule {
	var out []*rule.Rule
	for _, name := range order {
		expr := defs[name]
		qname := qualifiedName(name)
		out = append(out,
			&rule.Rule{
				Name:     qname + "/Def",
				LHS:      term.NewSymbol(qname),
				RHS:      expr,
				Priority: defSymbolPriority,
			},
			&rule.Rule{
				Name:     qname + "/DefCall",
				LHS:      term.NewCall(term.NewSymbol(qname)),
				RHS:      expr,
				Priority: defCallPriority,
			},
		)
	}
	return out
}
