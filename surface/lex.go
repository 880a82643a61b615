// Package surface implements the brace-delimited S-expression surface
// dialect (spec.md section 6.2): `{Head a b c}` lowers to
// Call(Sym("Head"), [a,b,c]), trailing-underscore and `...` forms lower
// to Var/VarRest, and `:attr value` pairs lower to a leading
// Props[KV[...], ...] argument. Grounded on the teacher's own parser
// shape, github.com/open-policy-agent/opa/ast's hand-written
// tokenizer-then-recursive-descent parser (ast/parser.go), generalized
// from Rego's infix grammar to this dialect's uniform brace-call form.
package surface

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokLBrace tokenKind = iota
	tokRBrace
	tokSymbol
	tokNumber
	tokString
	tokColonAttr // ":name", the attribute-key form
	tokEllipsis  // "..."
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	line int
}

type lexer struct {
	src   string
	pos   int
	line  int
	toks  []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src, line: 1}
	for {
		l.skipSpaceAndComments()
		if l.pos >= len(l.src) {
			l.toks = append(l.toks, token{kind: tokEOF, line: l.line})
			return l.toks, nil
		}
		c := l.src[l.pos]
		switch {
		case c == '{':
			l.toks = append(l.toks, token{kind: tokLBrace, line: l.line})
			l.pos++
		case c == '}':
			l.toks = append(l.toks, token{kind: tokRBrace, line: l.line})
			l.pos++
		case c == '"':
			s, err := l.lexString()
			if err != nil {
				return nil, err
			}
			l.toks = append(l.toks, token{kind: tokString, text: s, line: l.line})
		case c == ':':
			l.pos++
			name := l.lexBareWord()
			if name == "" {
				return nil, fmt.Errorf("surface: line %d: bare ':' with no attribute name", l.line)
			}
			l.toks = append(l.toks, token{kind: tokColonAttr, text: name, line: l.line})
		case strings.HasPrefix(l.src[l.pos:], "..."):
			l.pos += 3
			l.toks = append(l.toks, token{kind: tokEllipsis, line: l.line})
		case isNumberStart(c):
			n := l.lexBareWord()
			l.toks = append(l.toks, token{kind: tokNumber, text: n, line: l.line})
		default:
			w := l.lexBareWord()
			if w == "" {
				return nil, fmt.Errorf("surface: line %d: unexpected character %q", l.line, c)
			}
			l.toks = append(l.toks, token{kind: tokSymbol, text: w, line: l.line})
		}
	}
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '+'
}

func isWordChar(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '{', '}', '"', ';':
		return false
	}
	return true
}

func (l *lexer) lexBareWord() string {
	start := l.pos
	// A lone '-'/'+' followed by a non-digit is still a valid bare
	// word character sequence (e.g. a symbol named "-" or "->"), so no
	// special-casing is needed beyond isWordChar.
	for l.pos < len(l.src) && isWordChar(l.src[l.pos]) && l.src[l.pos] != ':' {
		l.pos++
	}
	return l.src[start:l.pos]
}

func (l *lexer) lexString() (string, error) {
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return "", fmt.Errorf("surface: line %d: unterminated string literal", l.line)
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			return b.String(), nil
		}
		if c == '\\' {
			l.pos++
			if l.pos >= len(l.src) {
				return "", fmt.Errorf("surface: line %d: unterminated escape", l.line)
			}
			switch l.src[l.pos] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				return "", fmt.Errorf("surface: line %d: unknown escape '\\%c'", l.line, l.src[l.pos])
			}
			l.pos++
			continue
		}
		if c == '\n' {
			l.line++
		}
		b.WriteByte(c)
		l.pos++
	}
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == ';':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			l.pos += 2
			for l.pos+1 < len(l.src) && !(l.src[l.pos] == '*' && l.src[l.pos+1] == '/') {
				if l.src[l.pos] == '\n' {
					l.line++
				}
				l.pos++
			}
			l.pos += 2
		default:
			return
		}
	}
}
