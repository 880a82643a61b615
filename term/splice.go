package term

// Splice is a transient, non-persistable value produced only by
// substituting a sequence variable (spec.md section 3.6). It is never
// embedded inside a finished Term: BuildArgs is the single choke point
// that flattens a Splice's Items into the surrounding argument list, so
// the Term type itself has no Splice variant and nothing can serialize
// one by construction.
type Splice struct {
	Items []*Term
}

// NewSplice wraps items as a Splice.
func NewSplice(items []*Term) *Splice {
	return &Splice{Items: items}
}

// Part is either a *Term or a *Splice: the substituter builds a Call's
// argument list out of a mix of the two, and BuildArgs flattens it.
type Part interface{}

// BuildArgs flattens a slice of Part (each a *Term or *Splice) into a
// plain []*Term, splicing each Splice's Items in place. This is the
// "Call constructor must accept and splice" requirement from spec.md
// section 3.6 and section 4.2: any substituter that produces a Call's
// argument list must route it through BuildArgs.
func BuildArgs(parts []Part) []*Term {
	out := make([]*Term, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case *Term:
			out = append(out, v)
		case *Splice:
			out = append(out, v.Items...)
		default:
			panic("term: BuildArgs: part is neither *Term nor *Splice")
		}
	}
	return out
}
