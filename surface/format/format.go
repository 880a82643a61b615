// Package format renders *term.Term values back into the surface
// dialect's brace-delimited text (the inverse of package surface),
// used by the `syma fmt` command. Grounded on the
// teacher's own pretty-printer, github.com/open-policy-agent/opa/format,
// which likewise walks an AST back into the source dialect rather than
// relying on a generic derived Stringer.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SymaLang/syma/term"
)

// Format renders t as surface-dialect text on a single line.
func Format(t *term.Term) string {
	var b strings.Builder
	write(&b, t)
	return b.String()
}

func write(b *strings.Builder, t *term.Term) {
	if name, ok := t.AsVar(); ok {
		if name == term.AnonymousVar {
			b.WriteString("_")
		} else {
			b.WriteString(name)
			b.WriteByte('_')
		}
		return
	}
	if name, ok := t.AsVarRest(); ok {
		if name == term.AnonymousVar {
			b.WriteString("...")
		} else {
			b.WriteString(name)
			b.WriteString("...")
		}
		return
	}

	switch t.Kind {
	case term.Symbol:
		b.WriteString(t.Sym())
	case term.Number:
		b.WriteString(formatNumber(t.Num()))
	case term.String:
		b.WriteString(strconv.Quote(t.Str()))
	case term.Call:
		b.WriteByte('{')
		write(b, t.Head())
		args := t.Args()
		start := 0
		if len(args) > 0 && args[0].IsCallTo("Props") {
			writeProps(b, args[0])
			start = 1
		}
		for _, a := range args[start:] {
			b.WriteByte(' ')
			write(b, a)
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "<?%v>", t.Kind)
	}
}

func writeProps(b *strings.Builder, props *term.Term) {
	for _, kv := range props.Args() {
		if !kv.IsCallTo("KV") || len(kv.Args()) != 2 || kv.Args()[0].Kind != term.Symbol {
			continue
		}
		b.WriteString(" :")
		b.WriteString(kv.Args()[0].Sym())
		b.WriteByte(' ')
		write(b, kv.Args()[1])
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
