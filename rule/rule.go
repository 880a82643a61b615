// Package rule defines the extracted runtime Rule representation
// shared by the single-step rewriter, the normalizer, and the rule-set
// extractor (spec.md section 3.3).
package rule

import (
	"sort"

	"github.com/SymaLang/syma/term"
)

// Rule is a named rewrite rule extracted from a Universe's Rules
// section: R[name, lhs, rhs, priority?].
type Rule struct {
	Name     string
	LHS      *term.Term
	RHS      *term.Term
	Priority float64

	// Module is the originating module tag used for macro-scope
	// filtering (spec.md section 4.6); empty for untagged rules (e.g.
	// hand-written Universes that never went through the compiler).
	Module string
}

// SortByPriority sorts rules by descending priority, using a stable
// sort so that equal-priority rules preserve their existing (source)
// order, per spec.md section 3.3's "equal priorities preserve source
// order" invariant.
func SortByPriority(rules []*Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
}
