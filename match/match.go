package match

import (
	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/term"
)

// DefaultBacktrackBudget bounds the number of sequence-variable splits
// a single Match call may explore before failing with
// Kind=PatternExplosion (spec.md section 5, "Budgets and limits").
const DefaultBacktrackBudget = 100_000

// budget tracks remaining backtracking attempts across one top-level
// Match call (and its recursive descendants).
type budget struct {
	remaining int
}

func (b *budget) spend() error {
	b.remaining--
	if b.remaining < 0 {
		return errs.New(errs.PatternExplosion, "matcher backtracking budget exceeded")
	}
	return nil
}

// Match attempts to bind pattern's variables against subject, starting
// from env. It returns the extended environment on success, or ok=false
// on an ordinary (non-error) match failure. A non-nil error indicates a
// structural problem (malformed pattern, exhausted backtrack budget)
// rather than a local mismatch.
func Match(pattern, subject *term.Term, env *Env) (*Env, bool, error) {
	b := &budget{remaining: DefaultBacktrackBudget}
	return match(pattern, subject, env, b)
}

// MatchBudgeted behaves like Match but also reports how many
// backtracking attempts (sequence-variable split trials) were spent,
// for callers that want to surface matcher cost as a metric.
func MatchBudgeted(pattern, subject *term.Term, env *Env, maxBudget int) (*Env, bool, int, error) {
	b := &budget{remaining: maxBudget}
	env, ok, err := match(pattern, subject, env, b)
	return env, ok, maxBudget - b.remaining, err
}

func match(pattern, subject *term.Term, env *Env, b *budget) (*Env, bool, error) {
	if name, ok := pattern.AsVar(); ok {
		return matchVar(name, subject, env)
	}
	if _, ok := pattern.AsVarRest(); ok {
		return nil, false, errs.New(errs.InvalidPattern, "VarRest used outside a Call argument list")
	}

	if pattern.Kind != subject.Kind {
		return nil, false, nil
	}

	switch pattern.Kind {
	case term.Symbol:
		return env, pattern.Sym() == subject.Sym(), nil
	case term.Number:
		return env, pattern.Num() == subject.Num(), nil
	case term.String:
		return env, pattern.Str() == subject.Str(), nil
	case term.Call:
		env, ok, err := match(pattern.Head(), subject.Head(), env, b)
		if err != nil || !ok {
			return nil, false, err
		}
		return matchArgs(pattern.Args(), subject.Args(), env, b)
	default:
		return nil, false, nil
	}
}

func matchVar(name string, subject *term.Term, env *Env) (*Env, bool, error) {
	if term.IsAnonymous(name) {
		return env, true, nil
	}
	if bound, ok := env.Lookup(name); ok {
		return env, bound.Equal(subject), nil
	}
	return env.Bind(name, subject), true, nil
}

// matchArgs implements the sequence-aware argument matching procedure
// of spec.md section 4.1: find the first VarRest in pattern args (if
// any), match the prefix positionally, then try every admissible split
// of the middle against the suffix, shortest-take first.
func matchArgs(pat, subj []*term.Term, env *Env, b *budget) (*Env, bool, error) {
	restIdx := -1
	restName := ""
	for i, p := range pat {
		if name, ok := p.AsVarRest(); ok {
			restIdx = i
			restName = name
			break
		}
	}

	if restIdx == -1 {
		if len(pat) != len(subj) {
			return nil, false, nil
		}
		return matchPositional(pat, subj, env, b)
	}

	prefix := pat[:restIdx]
	suffix := pat[restIdx+1:]

	if len(subj) < len(prefix) {
		return nil, false, nil
	}
	env, ok, err := matchPositional(prefix, subj[:len(prefix)], env, b)
	if err != nil || !ok {
		return nil, false, err
	}

	minTail := countNonSequence(suffix)
	remaining := subj[len(prefix):]
	maxTake := len(remaining) - minTail
	if maxTake < 0 {
		return nil, false, nil
	}

	for take := 0; take <= maxTake; take++ {
		if err := b.spend(); err != nil {
			return nil, false, err
		}
		middle := remaining[:take]
		tail := remaining[take:]

		candidateEnv := env
		if !term.IsAnonymous(restName) {
			if prior, ok := env.LookupSeq(restName); ok {
				if !sameSeq(prior, middle) {
					continue
				}
			} else {
				candidateEnv = env.BindSeq(restName, middle)
			}
		}

		nextEnv, ok, err := matchArgs(suffix, tail, candidateEnv, b)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return nextEnv, true, nil
		}
	}
	return nil, false, nil
}

func countNonSequence(pat []*term.Term) int {
	n := 0
	for _, p := range pat {
		if _, ok := p.AsVarRest(); !ok {
			n++
		}
	}
	return n
}

func matchPositional(pat, subj []*term.Term, env *Env, b *budget) (*Env, bool, error) {
	for i := range pat {
		var ok bool
		var err error
		env, ok, err = match(pat[i], subj[i], env, b)
		if err != nil || !ok {
			return nil, false, err
		}
	}
	return env, true, nil
}
