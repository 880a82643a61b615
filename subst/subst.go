// Package subst implements the substituter (spec.md section 4.2):
// producing a new Term from a template plus a binding environment,
// expanding sequence variables into in-place argument splices.
package subst

import (
	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/match"
	"github.com/SymaLang/syma/term"
)

// Substitute builds a concrete Term from template using env's bindings.
// A point variable with no binding, or a sequence variable with no
// binding, fails with Kind=UnboundVariable: this implementation picks
// the strict-error reading of spec.md section 4.2/9 for both — see
// DESIGN.md for why the "permit empty splice" alternative is not
// implemented.
func Substitute(template *term.Term, env *match.Env) (*term.Term, error) {
	part, err := substPart(template, env)
	if err != nil {
		return nil, err
	}
	result, ok := part.(*term.Term)
	if !ok {
		return nil, errs.New(errs.InvalidPattern, "sequence variable cannot be substituted outside a Call argument list")
	}
	return result, nil
}

// substPart substitutes t and returns either a *term.Term (the common
// case) or a *term.Splice (only when t is itself a bare VarRest
// reference, legal solely as a direct Call argument).
func substPart(t *term.Term, env *match.Env) (term.Part, error) {
	if name, ok := t.AsVar(); ok {
		v, ok := env.Lookup(name)
		if !ok {
			return nil, errs.New(errs.UnboundVariable, "unbound point variable %q", name).WithRule("")
		}
		return v, nil
	}
	if name, ok := t.AsVarRest(); ok {
		vs, ok := env.LookupSeq(name)
		if !ok {
			return nil, errs.New(errs.UnboundVariable, "unbound sequence variable %q", name)
		}
		return term.NewSplice(vs), nil
	}

	switch t.Kind {
	case term.Symbol, term.Number, term.String:
		return t, nil
	case term.Call:
		headPart, err := substPart(t.Head(), env)
		if err != nil {
			return nil, err
		}
		headTerm, ok := headPart.(*term.Term)
		if !ok {
			return nil, errs.New(errs.InvalidPattern, "a Call's head must not be a sequence-variable splice")
		}

		parts := make([]term.Part, len(t.Args()))
		for i, a := range t.Args() {
			p, err := substPart(a, env)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		return term.NewCall(headTerm, term.BuildArgs(parts)...), nil
	default:
		return t, nil
	}
}
