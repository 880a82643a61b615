// Package compiler implements the module compiler/linker (spec.md
// section 4.9): parsing modules, qualifying symbols, topologically
// sorting, expanding definitions into rules, computing macro scopes,
// and emitting a Universe. Grounded on
// github.com/open-policy-agent/opa/ast's Compiler — a staged pipeline
// over parsed modules with early exit on the first failing stage —
// generalized from Rego's policy-module shape to Syma's Module[...] term.
package compiler

import (
	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/term"
)

// Import records one module's import declaration (spec.md section 3.5).
type Import struct {
	Module   string // the imported module's declared name
	Alias    string // local alias, defaults to Module if unset
	FromPath string // optional host-resolved source path
	Open     bool   // importee's exports resolve unqualified in this module
	Macro    bool   // importee's RuleRules are visible during this module's meta-rewrite
}

// Module is the parsed structure of a Module[...] term (spec.md section 3.5).
type Module struct {
	Name      string
	Exports   map[string]bool
	Imports   []Import
	Defs      map[string]*term.Term
	DefOrder  []string // Defs' keys in declaration order, for deterministic rule emission
	Rules     []*term.Term // raw R[...] (or macro-form) terms, unqualified
	RuleRules []*term.Term // raw R[...] terms, unqualified
	Program   *term.Term   // nil unless this module declares one

	// usedSymbols is every Symbol name that appears anywhere in this
	// module's rules/defs/program, collected in the qualification
	// pre-pass (spec.md section 4.9 step 5, "appears anywhere else in
	// this module"). Qualified names and import aliases are recorded
	// too; qualifySymbol handles those before it consults this set.
	usedSymbols map[string]bool
}

// ParseModule validates and extracts a Module[name, section...] term
// into a *Module. expectedName, if non-empty, must match the declared
// name (spec.md section 4.9 step 2).
func ParseModule(t *term.Term, expectedName string) (*Module, error) {
	if !t.IsCallTo("Module") {
		return nil, errs.New(errs.InvalidModule, "expected a Module[...] term, got %s", t.String())
	}
	args := t.Args()
	if len(args) == 0 || args[0].Kind != term.Symbol {
		return nil, errs.New(errs.InvalidModule, "Module[...] requires a name symbol as its first argument")
	}
	name := args[0].Sym()
	if expectedName != "" && name != expectedName {
		return nil, errs.New(errs.InvalidModule, "declared module name %q does not match expected %q", name, expectedName)
	}

	m := &Module{
		Name:    name,
		Exports: map[string]bool{},
		Defs:    map[string]*term.Term{},
	}

	for _, section := range args[1:] {
		if section.Kind != term.Call || section.Head().Kind != term.Symbol {
			return nil, errs.New(errs.InvalidModule, "module %q: malformed section %s", name, section.String())
		}
		switch section.Head().Sym() {
		case "Export":
			for _, e := range section.Args() {
				if e.Kind != term.Symbol {
					return nil, errs.New(errs.InvalidModule, "module %q: Export entries must be symbols", name)
				}
				m.Exports[e.Sym()] = true
			}
		case "Import":
			for _, e := range section.Args() {
				imp, err := parseImportEntry(e)
				if err != nil {
					return nil, err
				}
				m.Imports = append(m.Imports, imp)
			}
		case "Defs":
			for _, e := range section.Args() {
				if !e.IsCallTo("Def") || len(e.Args()) != 2 || e.Args()[0].Kind != term.Symbol {
					return nil, errs.New(errs.InvalidModule, "module %q: Defs entries must be Def[Sym(name), expr]", name)
				}
				defName := e.Args()[0].Sym()
				m.Defs[defName] = e.Args()[1]
				m.DefOrder = append(m.DefOrder, defName)
			}
		case "Rules":
			m.Rules = append(m.Rules, section.Args()...)
		case "RuleRules":
			m.RuleRules = append(m.RuleRules, section.Args()...)
		case "Program":
			if len(section.Args()) != 1 {
				return nil, errs.New(errs.InvalidModule, "module %q: Program[...] must wrap exactly one term", name)
			}
			m.Program = section.Args()[0]
		default:
			return nil, errs.New(errs.InvalidModule, "module %q: unknown section %q", name, section.Head().Sym())
		}
	}

	m.usedSymbols = collectUsedSymbols(m)
	return m, nil
}

// ImportEntry[ Sym(module), Props[ KV[Sym(key), value], ... ] ]
func parseImportEntry(t *term.Term) (Import, error) {
	if !t.IsCallTo("ImportEntry") || len(t.Args()) < 1 || t.Args()[0].Kind != term.Symbol {
		return Import{}, errs.New(errs.InvalidModule, "Import entries must be ImportEntry[Sym(module), Props[...]?]")
	}
	imp := Import{Module: t.Args()[0].Sym()}
	imp.Alias = imp.Module

	if len(t.Args()) >= 2 {
		props := t.Args()[1]
		if !props.IsCallTo("Props") {
			return Import{}, errs.New(errs.InvalidModule, "ImportEntry's second argument must be Props[...]")
		}
		for _, kv := range props.Args() {
			if !kv.IsCallTo("KV") || len(kv.Args()) != 2 || kv.Args()[0].Kind != term.Symbol {
				return Import{}, errs.New(errs.InvalidModule, "Props entries must be KV[Sym(key), value]")
			}
			key := kv.Args()[0].Sym()
			val := kv.Args()[1]
			switch key {
			case "alias":
				if val.Kind != term.Symbol {
					return Import{}, errs.New(errs.InvalidModule, "import alias must be a symbol")
				}
				imp.Alias = val.Sym()
			case "from":
				if val.Kind != term.String {
					return Import{}, errs.New(errs.InvalidModule, "import from-path must be a string")
				}
				imp.FromPath = val.Str()
			case "open":
				imp.Open = isTrueSymbol(val)
			case "macro":
				imp.Macro = isTrueSymbol(val)
			default:
				return Import{}, errs.New(errs.InvalidModule, "unknown import property %q", key)
			}
		}
	}
	return imp, nil
}

func isTrueSymbol(t *term.Term) bool {
	return t.Kind == term.Symbol && t.Sym() == "True"
}

// collectUsedSymbols walks every rule/def/program term in m and
// records every bare Symbol encountered (skipping Var/VarRest inner
// names), for the qualification pre-pass.
func collectUsedSymbols(m *Module) map[string]bool {
	used := map[string]bool{}
	var walk func(t *term.Term)
	walk = func(t *term.Term) {
		if t == nil {
			return
		}
		if _, ok := t.AsVar(); ok {
			return
		}
		if _, ok := t.AsVarRest(); ok {
			return
		}
		switch t.Kind {
		case term.Symbol:
			used[t.Sym()] = true
		case term.Call:
			walk(t.Head())
			for _, a := range t.Args() {
				walk(a)
			}
		}
	}
	for _, r := range m.Rules {
		walk(r)
	}
	for _, r := range m.RuleRules {
		walk(r)
	}
	for _, d := range m.Defs {
		walk(d)
	}
	walk(m.Program)
	return used
}
