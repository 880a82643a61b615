package surface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SymaLang/syma/term"
)

// Parse reads one surface-dialect document and returns the single top-
// level Term it contains. Documents in this dialect contain exactly
// one top-level form (typically a `{Module ...}` call); callers that
// need to parse a batch of standalone forms should use ParseAll.
func Parse(src string) (*term.Term, error) {
	forms, err := ParseAll(src)
	if err != nil {
		return nil, err
	}
	if len(forms) != 1 {
		return nil, fmt.Errorf("surface: expected exactly one top-level form, got %d", len(forms))
	}
	return forms[0], nil
}

// ParseAll reads every top-level form in src in order.
func ParseAll(src string) ([]*term.Term, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var out []*term.Term
	for p.peek().kind != tokEOF {
		t, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseForm() (*term.Term, error) {
	t := p.next()
	switch t.kind {
	case tokLBrace:
		return p.parseCall()
	case tokSymbol:
		return lowerSymbol(t.text), nil
	case tokEllipsis:
		return term.NewVarRest(term.AnonymousVar), nil
	case tokColonAttr:
		return nil, fmt.Errorf("surface: line %d: ':%s' may only appear inside a {Call ...}", t.line, t.text)
	case tokNumber:
		n, ok := parseNumber(t.text)
		if !ok {
			// A bare "+"/"-" that never attached to digits: treat as
			// an ordinary symbol (e.g. the arithmetic head itself).
			return lowerSymbol(t.text), nil
		}
		return term.NewNumber(n), nil
	case tokString:
		return term.NewString(t.text), nil
	default:
		return nil, fmt.Errorf("surface: line %d: unexpected token", t.line)
	}
}

// parseCall reads the body of a `{Head a b c :attr v ...}` form; the
// opening brace has already been consumed.
func (p *parser) parseCall() (*term.Term, error) {
	headTok := p.next()
	var head *term.Term
	switch headTok.kind {
	case tokSymbol:
		head = lowerSymbol(headTok.text)
	case tokNumber:
		// A bare "+"/"-" word (e.g. "-" or "->") is a symbol head; an
		// actual number is not.
		if _, isNum := parseNumber(headTok.text); isNum {
			return nil, fmt.Errorf("surface: line %d: expected a Call head symbol after '{'", headTok.line)
		}
		head = lowerSymbol(headTok.text)
	case tokString:
		return nil, fmt.Errorf("surface: line %d: a Call's head must be a symbol, not a string", headTok.line)
	default:
		return nil, fmt.Errorf("surface: line %d: expected a Call head symbol after '{'", headTok.line)
	}

	var positional []*term.Term
	var props []*term.Term
	for {
		switch p.peek().kind {
		case tokRBrace:
			p.next()
			args := positional
			if len(props) > 0 {
				args = append([]*term.Term{term.NewCall(term.NewSymbol("Props"), props...)}, positional...)
			}
			return term.NewCall(head, args...), nil
		case tokEOF:
			return nil, fmt.Errorf("surface: line %d: unterminated '{%s ...}'", headTok.line, headTok.text)
		case tokColonAttr:
			attrTok := p.next()
			val, err := p.parseForm()
			if err != nil {
				return nil, err
			}
			props = append(props, term.NewCall(term.NewSymbol("KV"), term.NewSymbol(attrTok.text), val))
		default:
			arg, err := p.parseForm()
			if err != nil {
				return nil, err
			}
			positional = append(positional, arg)
		}
	}
}

func parseNumber(text string) (float64, bool) {
	if text == "-" || text == "+" || text == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// lowerSymbol applies spec.md section 6.2's variable-shorthand rules:
// `x_` -> Var("x"), `xs___`/`xs...` -> VarRest("xs"), `_` -> Var("_"),
// everything else passes through as an ordinary Symbol.
func lowerSymbol(name string) *term.Term {
	if name == term.AnonymousVar {
		return term.NewVar(term.AnonymousVar)
	}
	if strings.HasSuffix(name, "...") && len(name) > 3 {
		return term.NewVarRest(strings.TrimSuffix(name, "..."))
	}
	if strings.HasSuffix(name, "___") && len(name) > 3 {
		return term.NewVarRest(strings.TrimSuffix(name, "___"))
	}
	if strings.HasSuffix(name, "_") && len(name) > 1 && !strings.HasSuffix(name, "__") {
		return term.NewVar(strings.TrimSuffix(name, "_"))
	}
	return term.NewSymbol(name)
}
