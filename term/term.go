// Package term implements the immutable expression representation
// shared by every stage of the Syma rewrite engine: the matcher, the
// substituter, the primitive folder, the normalizer, and the module
// compiler all operate on *Term values built by this package.
//
// Term is a closed sum of four variants (Symbol, Number, String, Call)
// rather than an interface hierarchy: the engine dispatches on a Kind
// tag instead of Go interface polymorphism, matching spec.md's "prefer
// a closed sum over Term variants" design note. Subtrees may be shared
// (Terms are immutable), but Args is always an owned, non-nil-aliased
// slice once constructed by NewCall.
package term

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Kind tags which of the four Term variants a value holds.
type Kind int

const (
	Symbol Kind = iota
	Number
	String
	Call
)

func (k Kind) String() string {
	switch k {
	case Symbol:
		return "Symbol"
	case Number:
		return "Number"
	case String:
		return "String"
	case Call:
		return "Call"
	default:
		return "Unknown"
	}
}

// Term is an immutable node of the program/expression tree. Exactly
// one of the payload fields is meaningful, selected by Kind.
type Term struct {
	Kind Kind

	sym string
	num float64
	str string

	head *Term
	args []*Term
}

// NewSymbol builds a Symbol Term. Qualified ("Mod/Name") and
// attribute (":attr") forms are ordinary identifier strings here; the
// compiler gives them meaning.
func NewSymbol(name string) *Term {
	return &Term{Kind: Symbol, sym: name}
}

// NewNumber builds a Number Term.
func NewNumber(v float64) *Term {
	return &Term{Kind: Number, num: v}
}

// NewString builds a String Term.
func NewString(s string) *Term {
	return &Term{Kind: String, str: s}
}

// NewCall builds a Call Term from a head and an ordered slice of
// arguments. args is defensively copied so callers may reuse their
// backing array; Terms are immutable once constructed.
func NewCall(head *Term, args ...*Term) *Term {
	owned := make([]*Term, len(args))
	copy(owned, args)
	return &Term{Kind: Call, head: head, args: owned}
}

// Sym returns the Symbol's identifier string. Only valid when Kind == Symbol.
func (t *Term) Sym() string { return t.sym }

// Num returns the Number's value. Only valid when Kind == Number.
func (t *Term) Num() float64 { return t.num }

// Str returns the String's text. Only valid when Kind == String.
func (t *Term) Str() string { return t.str }

// Head returns the Call's head Term. Only valid when Kind == Call.
func (t *Term) Head() *Term { return t.head }

// Args returns the Call's ordered argument slice. Only valid when
// Kind == Call. Callers must not mutate the returned slice.
func (t *Term) Args() []*Term { return t.args }

// IsCallTo reports whether t is a Call whose head is the Symbol name.
func (t *Term) IsCallTo(name string) bool {
	return t.Kind == Call && t.head.Kind == Symbol && t.head.sym == name
}

// Equal reports structural, value equality: two Terms are equal iff
// they are the same Kind with identical payloads, recursively for Call.
func (t *Term) Equal(o *Term) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case Symbol:
		return t.sym == o.sym
	case Number:
		return t.num == o.num
	case String:
		return t.str == o.str
	case Call:
		if len(t.args) != len(o.args) {
			return false
		}
		if !t.head.Equal(o.head) {
			return false
		}
		for i := range t.args {
			if !t.args[i].Equal(o.args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash returns a structural hash code, consistent with Equal: equal
// Terms always hash equal. Used by implementations (e.g. a rule index)
// that want to bucket Terms; not used for security-sensitive keying,
// so a plain FNV hash suffices in place of the teacher's siphash (which
// exists there to resist hash-flooding on attacker-supplied policy
// input, a threat model this embeddable engine does not share).
func (t *Term) Hash() uint64 {
	h := fnv.New64a()
	t.writeHash(h)
	return h.Sum64()
}

func (t *Term) writeHash(h interface{ Write([]byte) (int, error) }) {
	switch t.Kind {
	case Symbol:
		h.Write([]byte{byte(Symbol)})
		h.Write([]byte(t.sym))
	case Number:
		h.Write([]byte{byte(Number)})
		h.Write([]byte(strconv.FormatFloat(t.num, 'g', -1, 64)))
	case String:
		h.Write([]byte{byte(String)})
		h.Write([]byte(t.str))
	case Call:
		h.Write([]byte{byte(Call)})
		t.head.writeHash(h)
		for _, a := range t.args {
			a.writeHash(h)
		}
	}
}

// IsGround reports whether t contains no pattern variable (Var/VarRest) anywhere.
func (t *Term) IsGround() bool {
	if name, ok := t.AsVar(); ok {
		_ = name
		return false
	}
	if name, ok := t.AsVarRest(); ok {
		_ = name
		return false
	}
	if t.Kind != Call {
		return true
	}
	if !t.head.IsGround() {
		return false
	}
	for _, a := range t.args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

// String renders a compact surface-like form of t, used for
// diagnostics and the REPL, not guaranteed to round-trip byte-for-byte.
func (t *Term) String() string {
	var b strings.Builder
	t.writeString(&b)
	return b.String()
}

func (t *Term) writeString(b *strings.Builder) {
	switch t.Kind {
	case Symbol:
		b.WriteString(t.sym)
	case Number:
		fmt.Fprintf(b, "%v", t.num)
	case String:
		fmt.Fprintf(b, "%q", t.str)
	case Call:
		t.head.writeString(b)
		b.WriteByte('[')
		for i, a := range t.args {
			if i > 0 {
				b.WriteByte(' ')
			}
			a.writeString(b)
		}
		b.WriteByte(']')
	}
}
