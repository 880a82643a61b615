// Package wire implements the Universe wire format (spec.md section
// 6.1): a JSON tree of four node shapes (Sym, Num, Str, Call) that the
// compiler emits and the runtime loads. Grounded on the teacher's own
// JSON encoding of ast.Term (ast/term.go's MarshalJSON, which tags
// each node with its Value kind so the decoder can reconstruct the
// right Go type), adapted here to Term's four-variant closed sum
// instead of an open Value interface.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/term"
)

// node is the wire shape of a single Term: exactly one of v/h+a is
// populated, selected by k.
type node struct {
	K string          `json:"k"`
	V json.RawMessage `json:"v,omitempty"`
	H *node           `json:"h,omitempty"`
	A []*node         `json:"a,omitempty"`
}

// Encode renders t as its Universe wire-format JSON document.
func Encode(t *term.Term) ([]byte, error) {
	n, err := toNode(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

// Decode parses a Universe wire-format JSON document back into a *term.Term.
func Decode(data []byte) (*term.Term, error) {
	var n node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, errs.New(errs.Parse, "wire: invalid JSON: %v", err)
	}
	return fromNode(&n)
}

func toNode(t *term.Term) (*node, error) {
	switch t.Kind {
	case term.Symbol:
		v, err := json.Marshal(t.Sym())
		if err != nil {
			return nil, err
		}
		return &node{K: "Sym", V: v}, nil
	case term.Number:
		v, err := json.Marshal(t.Num())
		if err != nil {
			return nil, err
		}
		return &node{K: "Num", V: v}, nil
	case term.String:
		v, err := json.Marshal(t.Str())
		if err != nil {
			return nil, err
		}
		return &node{K: "Str", V: v}, nil
	case term.Call:
		h, err := toNode(t.Head())
		if err != nil {
			return nil, err
		}
		args := t.Args()
		a := make([]*node, len(args))
		for i, arg := range args {
			an, err := toNode(arg)
			if err != nil {
				return nil, err
			}
			a[i] = an
		}
		return &node{K: "Call", H: h, A: a}, nil
	default:
		return nil, fmt.Errorf("wire: unknown Term kind %v", t.Kind)
	}
}

func fromNode(n *node) (*term.Term, error) {
	if n == nil {
		return nil, errs.New(errs.Parse, "wire: null node")
	}
	switch n.K {
	case "Sym":
		var s string
		if err := json.Unmarshal(n.V, &s); err != nil {
			return nil, errs.New(errs.Parse, "wire: Sym node: %v", err)
		}
		return term.NewSymbol(s), nil
	case "Num":
		var f float64
		if err := json.Unmarshal(n.V, &f); err != nil {
			return nil, errs.New(errs.Parse, "wire: Num node: %v", err)
		}
		return term.NewNumber(f), nil
	case "Str":
		var s string
		if err := json.Unmarshal(n.V, &s); err != nil {
			return nil, errs.New(errs.Parse, "wire: Str node: %v", err)
		}
		return term.NewString(s), nil
	case "Call":
		if n.H == nil {
			return nil, errs.New(errs.Parse, "wire: Call node missing head")
		}
		head, err := fromNode(n.H)
		if err != nil {
			return nil, err
		}
		args := make([]*term.Term, len(n.A))
		for i, an := range n.A {
			arg, err := fromNode(an)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return term.NewCall(head, args...), nil
	default:
		return nil, errs.New(errs.Parse, "wire: unknown node kind %q", n.K)
	}
}
