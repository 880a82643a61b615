// Package normalize implements the normalizer (spec.md section 4.5):
// iterating the single-step rewriter and the primitive folder to a
// fixed point under a step budget, with an optional trace variant.
package normalize

import (
	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/primitive"
	"github.com/SymaLang/syma/rewrite"
	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/term"
)

// DefaultMaxSteps is the normalizer's default step budget.
const DefaultMaxSteps = 10_000

// StepRecord is one entry of a normalization trace.
type StepRecord struct {
	I                 int
	Rule              string
	Path              []rewrite.PathStep
	Before            string
	After             string
	BacktrackAttempts int
}

// Normalize repeatedly applies ApplyOnce then folds the result until a
// fixed point, or fails with Kind=NonTermination once maxSteps is
// exhausted. maxSteps <= 0 selects DefaultMaxSteps.
func Normalize(t *term.Term, rules []*rule.Rule, maxSteps int) (*term.Term, error) {
	result, _, err := run(t, rules, maxSteps, false)
	return result, err
}

// NormalizeWithTrace behaves like Normalize but also returns every step
// taken.
func NormalizeWithTrace(t *term.Term, rules []*rule.Rule, maxSteps int) (*term.Term, []StepRecord, error) {
	return run(t, rules, maxSteps, true)
}

func run(t *term.Term, rules []*rule.Rule, maxSteps int, trace bool) (*term.Term, []StepRecord, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	var records []StepRecord

	for i := 0; i < maxSteps; i++ {
		res, err := rewrite.ApplyOnce(t, rules)
		if err != nil {
			return nil, nil, err
		}

		next := t
		if res.Changed {
			next = res.Term
		}

		folded, err := primitive.Fold(next)
		if err != nil {
			return nil, nil, err
		}

		if !res.Changed && folded.Equal(t) {
			return t, records, nil
		}

		if trace {
			rec := StepRecord{I: i, Path: res.Path, BacktrackAttempts: res.BacktrackAttempts}
			if res.Changed {
				rec.Rule = res.Rule
				rec.Before = t.String()
				rec.After = folded.String()
			} else {
				rec.Before = t.String()
				rec.After = folded.String()
			}
			records = append(records, rec)
		}

		t = folded
	}

	return nil, nil, errs.New(errs.NonTermination, "normalize exceeded maxSteps=%d", maxSteps)
}
