// Package match implements the pattern matcher (spec.md section 4.1):
// binding variables from a pattern against a subject Term, with
// backtracking over sequence-variable splits.
package match

import "github.com/SymaLang/syma/term"

// Env is an immutable binding environment. Point variables bind to a
// single Term; sequence variables bind to an ordered slice of Terms.
// Extending an Env never mutates the receiver, so a failed backtracking
// branch cannot leak its tentative bindings into a sibling branch.
type Env struct {
	vars map[string]*term.Term
	seqs map[string][]*term.Term
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{vars: map[string]*term.Term{}, seqs: map[string][]*term.Term{}}
}

// Lookup returns a point variable's binding, if any.
func (e *Env) Lookup(name string) (*term.Term, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// LookupSeq returns a sequence variable's binding, if any.
func (e *Env) LookupSeq(name string) ([]*term.Term, bool) {
	v, ok := e.seqs[name]
	return v, ok
}

// Bind returns a new Env extending the receiver with name bound to value.
func (e *Env) Bind(name string, value *term.Term) *Env {
	next := e.clone()
	next.vars[name] = value
	return next
}

// BindSeq returns a new Env extending the receiver with name bound to values.
func (e *Env) BindSeq(name string, values []*term.Term) *Env {
	next := e.clone()
	owned := make([]*term.Term, len(values))
	copy(owned, values)
	next.seqs[name] = owned
	return next
}

func (e *Env) clone() *Env {
	next := &Env{
		vars: make(map[string]*term.Term, len(e.vars)+1),
		seqs: make(map[string][]*term.Term, len(e.seqs)+1),
	}
	for k, v := range e.vars {
		next.vars[k] = v
	}
	for k, v := range e.seqs {
		next.seqs[k] = v
	}
	return next
}

// Names returns every point-variable name bound in the environment.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.vars))
	for k := range e.vars {
		names = append(names, k)
	}
	return names
}

func sameSeq(a, b []*term.Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
