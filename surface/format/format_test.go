package format

import (
	"testing"

	"github.com/SymaLang/syma/surface"
	"github.com/SymaLang/syma/term"
)

func TestFormatRoundTripsThroughParse(t *testing.T) {
	src := `{Rev xs... acc_}`
	parsed, err := surface.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	again, err := surface.Parse(Format(parsed))
	if err != nil {
		t.Fatalf("re-parse of formatted output: %v", err)
	}
	if !again.Equal(parsed) {
		t.Fatalf("round trip mismatch: want %v, got %v", parsed, again)
	}
}

func TestFormatPropsRenderedAsAttributes(t *testing.T) {
	t1 := term.NewCall(term.NewSymbol("Div"),
		term.NewCall(term.NewSymbol("Props"),
			term.NewCall(term.NewSymbol("KV"), term.NewSymbol("id"), term.NewString("main")),
		),
	)
	got := Format(t1)
	want := `{Div :id "main"}`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormatAnonymousWildcards(t *testing.T) {
	call := term.NewCall(term.NewSymbol("Match"), term.NewVar("_"), term.NewVarRest("_"))
	got := Format(call)
	want := `{Match _ ...}`
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
