// Package ruleset implements the rule-set extractor (spec.md section
// 4.6): reading the rule list out of a Universe, applying meta-rules
// once (respecting per-module macro scoping, section 4.9 step 8) to
// obtain the effective rule set, expanding Splat directives (section
// 4.7), and sorting the result by priority.
package ruleset

import (
	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/normalize"
	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/term"
)

const metaMaxSteps = 10_000

// ExtractRules reads the Rules (and, if present, RuleRules) children of
// a Universe term, applies the applicable meta-rules to each rule
// entry, expands any surviving Splat directives, and returns the
// effective rule list sorted by priority descending (ties preserving
// source order).
func ExtractRules(universe *term.Term) ([]*rule.Rule, error) {
	rulesChild, ok := findChild(universe, "Rules")
	if !ok {
		return nil, nil
	}

	taggedRules, err := parseTaggedEntries(rulesChild, "TaggedRule")
	if err != nil {
		return nil, err
	}

	metaByModule := map[string][]*rule.Rule{}
	if rrChild, ok := findChild(universe, "RuleRules"); ok {
		taggedMeta, err := parseTaggedEntries(rrChild, "TaggedRuleRule")
		if err != nil {
			return nil, err
		}
		for _, tm := range taggedMeta {
			r, err := parseR(tm.entry)
			if err != nil {
				return nil, err
			}
			r.Module = tm.module
			metaByModule[tm.module] = append(metaByModule[tm.module], r)
		}
	}

	scopes := parseMacroScopes(universe)

	var effective []*rule.Rule
	for _, tr := range taggedRules {
		visible, ok := scopes[tr.module]
		if !ok {
			visible = []string{tr.module}
		}
		var applicable []*rule.Rule
		for _, vm := range visible {
			applicable = append(applicable, metaByModule[vm]...)
		}
		rule.SortByPriority(applicable)

		expanded, err := expandEntry(tr.entry, applicable)
		if err != nil {
			return nil, err
		}
		for _, r := range expanded {
			r.Module = tr.module
			effective = append(effective, r)
		}
	}

	rule.SortByPriority(effective)
	return effective, nil
}

// expandEntry meta-normalizes a single rule-slot term against the
// rules visible to its module, then expands a surviving top-level
// Splat[...] directive into sibling rules (spec.md section 4.7).
func expandEntry(entry *term.Term, metaRules []*rule.Rule) ([]*rule.Rule, error) {
	normalized, err := normalize.Normalize(entry, metaRules, metaMaxSteps)
	if err != nil {
		return nil, err
	}

	var out []*rule.Rule
	for _, piece := range splatExpand(normalized) {
		r, err := parseR(piece)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// splatExpand flattens a (possibly nested) Splat[...] call into its
// constituent rule-slot terms; a non-Splat term expands to itself.
func splatExpand(t *term.Term) []*term.Term {
	if !isSplat(t) {
		return []*term.Term{t}
	}
	var out []*term.Term
	for _, arg := range t.Args() {
		out = append(out, splatExpand(arg)...)
	}
	return out
}

func isSplat(t *term.Term) bool {
	return t.IsCallTo("Splat") || t.IsCallTo("...!")
}

func parseR(t *term.Term) (*rule.Rule, error) {
	if !t.IsCallTo("R") {
		return nil, errs.New(errs.InvalidModule, "expected R[name, lhs, rhs, priority?], got %s", t.String())
	}
	args := t.Args()
	if len(args) != 3 && len(args) != 4 {
		return nil, errs.New(errs.InvalidModule, "R[...] expects 3 or 4 arguments, got %d", len(args))
	}
	if args[0].Kind != term.String {
		return nil, errs.New(errs.InvalidModule, "R[...] first argument (rule name) must be a String")
	}
	r := &rule.Rule{
		Name: args[0].Str(),
		LHS:  args[1],
		RHS:  args[2],
	}
	if len(args) == 4 {
		if args[3].Kind != term.Number {
			return nil, errs.New(errs.InvalidModule, "R[...] priority must be a Number")
		}
		r.Priority = args[3].Num()
	}
	return r, nil
}

type taggedEntry struct {
	module string
	entry  *term.Term
}

// parseTaggedEntries reads a Rules/RuleRules child's argument list,
// accepting both compiler-tagged entries (TaggedRule[Sym(module),
// inner]) and bare untagged entries (a plain R[...] or macro-form
// Call), the latter used by hand-written Universes that never went
// through the module compiler.
func parseTaggedEntries(listTerm *term.Term, wrapperHead string) ([]taggedEntry, error) {
	var out []taggedEntry
	for _, arg := range listTerm.Args() {
		if arg.IsCallTo(wrapperHead) {
			wargs := arg.Args()
			if len(wargs) != 2 || wargs[0].Kind != term.Symbol {
				return nil, errs.New(errs.InvalidModule, "%s[...] expects [Sym(module), entry]", wrapperHead)
			}
			out = append(out, taggedEntry{module: wargs[0].Sym(), entry: wargs[1]})
			continue
		}
		out = append(out, taggedEntry{module: "", entry: arg})
	}
	return out, nil
}

// parseMacroScopes reads the Universe's MacroScopes child (if any) into
// a map from module name to the set of modules whose RuleRules it may
// see, per spec.md section 3.4/4.9 step 8:
// MacroScopes[ Module[ModName, RuleRulesFrom[...]], ... ].
func parseMacroScopes(universe *term.Term) map[string][]string {
	scopes := map[string][]string{}
	child, ok := findChild(universe, "MacroScopes")
	if !ok {
		return scopes
	}
	for _, entry := range child.Args() {
		if !entry.IsCallTo("Module") || len(entry.Args()) != 2 {
			continue
		}
		modNameTerm := entry.Args()[0]
		fromTerm := entry.Args()[1]
		if modNameTerm.Kind != term.Symbol || !fromTerm.IsCallTo("RuleRulesFrom") {
			continue
		}
		modName := modNameTerm.Sym()
		visible := []string{modName}
		for _, f := range fromTerm.Args() {
			if f.Kind == term.Symbol && f.Sym() != modName {
				visible = append(visible, f.Sym())
			}
		}
		scopes[modName] = visible
	}
	return scopes
}

// findChild returns the first argument of universe whose head Symbol
// matches name.
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
