// Package runtime implements the runtime facade (spec.md section 4.8,
// 6.3): dispatch and project, the two entry points the UI/effects
// layers call, plus accessors over the Universe term shape (section
// 3.4). A Universe is not a distinct Go type: it is exactly a
// *term.Term rooted at Symbol "Universe", following the representation
// spec.md itself specifies.
package runtime

import (
	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/term"
)

// placeholderSymbol is the "_" placeholder substituted for the UI
// subtree inside a projection envelope (spec.md section 4.8).
const placeholderSymbol = "_"

// projectionEnvelopeHead picks "/@" over the alternative
// "__SYMA_PROJECT_WRAPPER__" sibling encoding; see SPEC_FULL.md
// section D for the rationale behind this open-question resolution.
const projectionEnvelopeHead = "/@"

// NewUniverse builds a Universe[...] term from its (possibly absent)
// sections, in the canonical order Program, Rules, RuleRules, MacroScopes.
func NewUniverse(program, rules, ruleRules, macroScopes *term.Term) *term.Term {
	var children []*term.Term
	for _, c := range []*term.Term{program, rules, ruleRules, macroScopes} {
		if c != nil {
			children = append(children, c)
		}
	}
	return term.NewCall(term.NewSymbol("Universe"), children...)
}

// Program returns the Universe's Program child, if present.
func Program(universe *term.Term) (*term.Term, bool) {
	return findChild(universe, "Program")
}

// State returns the program state subtree: Program[ App[State, UI], ... ]
// -> State.
func State(universe *term.Term) (*term.Term, error) {
	program, ok := Program(universe)
	if !ok {
		return nil, errs.New(errs.InvalidModule, "Universe has no Program section")
	}
	app, ok := firstArgCallTo(program, "App")
	if !ok {
		return nil, errs.New(errs.InvalidModule, "Program[...] must contain an App[State, UI] as its first argument")
	}
	if len(app.Args()) < 1 {
		return nil, errs.New(errs.InvalidModule, "App[...] requires a State argument")
	}
	return app.Args()[0], nil
}

// withProgram returns a copy of universe with its Program child
// replaced by newProgram (or inserted, if the Universe had none yet).
func withProgram(universe *term.Term, newProgram *term.Term) *term.Term {
	return replaceOrAppendChild(universe, "Program", newProgram)
}

func findChild(universe *term.Term, name string) (*term.Term, bool) {
	if universe.Kind != term.Call {
		return nil, false
	}
	for _, c := range universe.Args() {
		if c.IsCallTo(name) {
			return c, true
		}
	}
	return nil, false
}

func firstArgCallTo(t *term.Term, name string) (*term.Term, bool) {
	if t.Kind != term.Call || len(t.Args()) == 0 {
		return nil, false
	}
	first := t.Args()[0]
	if first.IsCallTo(name) {
		return first, true
	}
	return nil, false
}

func replaceOrAppendChild(universe *term.Term, name string, newChild *term.Term) *term.Term {
	args := universe.Args()
	out := make([]*term.Term, 0, len(args)+1)
	replaced := false
	for _, c := range args {
		if c.IsCallTo(name) {
			out = append(out, newChild)
			replaced = true
			continue
		}
		out = append(out, c)
	}
	if !replaced {
		out = append(out, newChild)
	}
	return term.NewCall(universe.Head(), out...)
}
