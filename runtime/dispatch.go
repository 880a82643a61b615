package runtime

import (
	"github.com/sirupsen/logrus"

	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/internal/idgen"
	"github.com/SymaLang/syma/normalize"
	"github.com/SymaLang/syma/ruleset"
	"github.com/SymaLang/syma/runtime/metrics"
	"github.com/SymaLang/syma/term"
)

// Dispatch implements spec.md section 4.8's dispatch(universe, action):
// re-extract the current rule set (so a meta-rewrite that altered the
// rules since the last dispatch is picked up), normalize
// Apply[action, App[State, UI]] (the Program section's first child,
// not the Program[...] wrapper itself, so user rules can pattern-match
// Apply[action, App[State[...], ui]] directly per spec.md section 8's
// worked dispatch scenario), and return a Universe with Program
// replaced, any Effects sibling preserved untouched.
func Dispatch(universe, action *term.Term) (*term.Term, error) {
	metrics.DispatchTotal.Inc()

	rules, err := ruleset.ExtractRules(universe)
	if err != nil {
		return nil, err
	}

	program, ok := Program(universe)
	if !ok {
		return nil, errs.New(errs.InvalidModule, "dispatch requires a Universe with a Program section")
	}
	if len(program.Args()) < 1 {
		return nil, errs.New(errs.InvalidModule, "Program[...] requires an App[State, UI] as its first argument")
	}
	app := program.Args()[0]
	siblings := program.Args()[1:]

	applyTerm := term.NewCall(term.NewSymbol("Apply"), action, app)

	var newApp *term.Term
	if GetTrace() {
		result, steps, err := normalize.NormalizeWithTrace(applyTerm, rules, 0)
		if err != nil {
			return nil, err
		}
		traceID, idErr := idgen.New()
		if idErr != nil {
			traceID = ""
		}
		logrus.WithFields(logrus.Fields{
			"trace_id": traceID,
			"action":   action.String(),
			"steps":    len(steps),
		}).Debug("dispatch: normalization trace")
		attempts := make([]int, len(steps))
		for i, s := range steps {
			attempts[i] = s.BacktrackAttempts
		}
		metrics.ObserveTrace(len(steps), attempts)
		newApp = result
	} else {
		result, err := normalize.Normalize(applyTerm, rules, 0)
		if err != nil {
			return nil, err
		}
		newApp = result
	}

	newProgram := term.NewCall(term.NewSymbol("Program"), append([]*term.Term{newApp}, siblings...)...)
	return withProgram(universe, newProgram), nil
}
