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

// Project implements spec.md section 4.8's project(universe, part):
// build the annotated envelope /@[ part, App[State, _] ], normalize it
// against the current rules, and return the result. If normalization
// leaves the result still rooted at the envelope head, no user rule
// ever fired and the projection fails with Kind=Unmatchable.
func Project(universe, part *term.Term) (*term.Term, error) {
	metrics.ProjectTotal.Inc()

	rules, err := ruleset.ExtractRules(universe)
	if err != nil {
		return nil, err
	}

	state, err := State(universe)
	if err != nil {
		return nil, err
	}

	envelope := term.NewCall(term.NewSymbol(projectionEnvelopeHead),
		part,
		term.NewCall(term.NewSymbol("App"), state, term.NewSymbol(placeholderSymbol)),
	)

	var result *term.Term
	if GetTrace() {
		r, steps, err := normalize.NormalizeWithTrace(envelope, rules, 0)
		if err != nil {
			return nil, err
		}
		traceID, idErr := idgen.New()
		if idErr != nil {
			traceID = ""
		}
		logrus.WithFields(logrus.Fields{
			"trace_id": traceID,
			"part":     part.String(),
			"steps":    len(steps),
		}).Debug("project: normalization trace")
		attempts := make([]int, len(steps))
		for i, s := range steps {
			attempts[i] = s.BacktrackAttempts
		}
		metrics.ObserveTrace(len(steps), attempts)
		result = r
	} else {
		r, err := normalize.Normalize(envelope, rules, 0)
		if err != nil {
			return nil, err
		}
		result = r
	}

	if result.IsCallTo(projectionEnvelopeHead) {
		return nil, errs.New(errs.Unmatchable, "projection of %s yielded no matching rule", part.String())
	}
	return result, nil
}
