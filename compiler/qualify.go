package compiler

import (
	"strings"

	"github.com/SymaLang/syma/ruleset"
	"github.com/SymaLang/syma/term"
)

// qualifyCtx carries everything qualifySymbol needs about one module's
// import environment (spec.md section 4.9 step 5).
type qualifyCtx struct {
	moduleName string
	builtins   map[string]bool
	aliases    map[string]string      // import alias -> real module name
	openExport map[string]string      // exported name -> real module name, for every `open` import
	usedHere   map[string]bool        // every bare symbol appearing anywhere in this module
}

func newQualifyCtx(m *Module, byName map[string]*Module, builtins map[string]bool) qualifyCtx {
	ctx := qualifyCtx{
		moduleName: m.Name,
		builtins:   builtins,
		aliases:    map[string]string{},
		openExport: map[string]string{},
		usedHere:   m.usedSymbols,
	}
	for _, imp := range m.Imports {
		ctx.aliases[imp.Alias] = imp.Module
		if imp.Open {
			if other, ok := byName[imp.Module]; ok {
				for name := range other.Exports {
					ctx.openExport[name] = imp.Module
				}
			}
		}
	}
	return ctx
}

// qualifySymbol applies spec.md section 4.9 step 5's rules to a single
// bare Symbol name, returning its qualified (or unchanged) form.
func (ctx qualifyCtx) qualifySymbol(s string) string {
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		prefix, rest := s[:idx], s[idx+1:]
		if real, ok := ctx.aliases[prefix]; ok {
			return real + "/" + rest
		}
		return s
	}
	if strings.HasPrefix(s, ":") {
		return s
	}
	if ctx.builtins[s] {
		return s
	}
	if real, ok := ctx.openExport[s]; ok {
		return real + "/" + s
	}
	if _, ok := ctx.aliases[s]; ok {
		return s
	}
	if ctx.usedHere[s] {
		return ctx.moduleName + "/" + s
	}
	return s
}

// qualifyTerm recursively qualifies every eligible Symbol in t,
// honoring the exceptions in spec.md section 4.9 step 5: pattern
// variable inner names, R's rule-name argument, Apply's action
// argument, and event-handler action values are all left untouched.
func (ctx qualifyCtx) qualifyTerm(t *term.Term) *term.Term {
	if t == nil {
		return nil
	}
	if _, ok := t.AsVar(); ok {
		return t
	}
	if _, ok := t.AsVarRest(); ok {
		return t
	}

	switch t.Kind {
	case term.Symbol:
		return term.NewSymbol(ctx.qualifySymbol(t.Sym()))
	case term.Number, term.String:
		return t
	case term.Call:
		head := ctx.qualifyTerm(t.Head())
		args := t.Args()

		if t.IsCallTo("R") && len(args) >= 1 {
			out := make([]*term.Term, len(args))
			out[0] = args[0] // rule name String, preserved verbatim
			for i := 1; i < len(args); i++ {
				out[i] = ctx.qualifyTerm(args[i])
			}
			return term.NewCall(head, out...)
		}
		if t.IsCallTo("Apply") && len(args) >= 1 {
			out := make([]*term.Term, len(args))
			out[0] = args[0] // action head, preserved verbatim
			for i := 1; i < len(args); i++ {
				out[i] = ctx.qualifyTerm(args[i])
			}
			return term.NewCall(head, out...)
		}
		if t.IsCallTo("KV") && len(args) == 2 && args[0].Kind == term.Symbol && ruleset.EventHandlerKeys(args[0].Sym()) {
			return term.NewCall(head, args[0], ctx.qualifyHandlerValue(args[1]))
		}

		out := make([]*term.Term, len(args))
		for i, a := range args {
			out[i] = ctx.qualifyTerm(a)
		}
		return term.NewCall(head, out...)
	default:
		return t
	}
}

// qualifyHandlerValue walks an event-handler value tree, recognizing
// the fixed combinator vocabulary and leaving every action
// sub-argument unqualified (spec.md section 4.9 step 5, last bullet).
func (ctx qualifyCtx) qualifyHandlerValue(t *term.Term) *term.Term {
	if t.Kind != term.Call || t.Head().Kind != term.Symbol {
		return t
	}
	if !ruleset.HandlerCombinator(t.Head().Sym()) {
		return t
	}
	args := t.Args()
	out := make([]*term.Term, len(args))
	for i, a := range args {
		out[i] = ctx.qualifyHandlerValue(a)
	}
	return term.NewCall(t.Head(), out...)
}
