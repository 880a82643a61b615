// Package rewrite implements the single-step rewriter (spec.md section
// 4.4): outermost-leftmost application of the first matching rule.
package rewrite

import (
	"github.com/SymaLang/syma/match"
	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/subst"
	"github.com/SymaLang/syma/term"
)

// PathStep is one step of the path encoding the rewrite site, drawn
// from {head, index(i)} per spec.md section 4.4.
type PathStep struct {
	Head  bool
	Index int
}

// StepResult is the outcome of one ApplyOnce call.
type StepResult struct {
	Changed           bool
	Term              *term.Term
	Rule              string
	Path              []PathStep
	BacktrackAttempts int // sequence-variable split trials spent finding the match, for metrics
}

// ApplyOnce rewrites t by the first rule (in rules' priority-then-
// source order) whose LHS matches at the outermost-leftmost site. If
// no rule matches at the root and t is a Call, it recurses into the
// head first, then the arguments left to right, and returns at the
// first changed descendant with the root rebuilt around it.
func ApplyOnce(t *term.Term, rules []*rule.Rule) (*StepResult, error) {
	attempts := 0
	for _, r := range rules {
		env, ok, spent, err := match.MatchBudgeted(r.LHS, t, match.NewEnv(), match.DefaultBacktrackBudget)
		attempts += spent
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		newTerm, err := subst.Substitute(r.RHS, env)
		if err != nil {
			return nil, err
		}
		return &StepResult{Changed: true, Term: newTerm, Rule: r.Name, Path: nil, BacktrackAttempts: attempts}, nil
	}

	if t.Kind != term.Call {
		return &StepResult{Changed: false, Term: t}, nil
	}

	headResult, err := ApplyOnce(t.Head(), rules)
	if err != nil {
		return nil, err
	}
	if headResult.Changed {
		rebuilt := term.NewCall(headResult.Term, t.Args()...)
		path := append([]PathStep{{Head: true}}, headResult.Path...)
		return &StepResult{Changed: true, Term: rebuilt, Rule: headResult.Rule, Path: path}, nil
	}

	for i, arg := range t.Args() {
		argResult, err := ApplyOnce(arg, rules)
		if err != nil {
			return nil, err
		}
		if argResult.Changed {
			newArgs := make([]*term.Term, len(t.Args()))
			copy(newArgs, t.Args())
			newArgs[i] = argResult.Term
			rebuilt := term.NewCall(t.Head(), newArgs...)
			path := append([]PathStep{{Index: i}}, argResult.Path...)
			return &StepResult{Changed: true, Term: rebuilt, Rule: argResult.Rule, Path: path}, nil
		}
	}

	return &StepResult{Changed: false, Term: t}, nil
}
