package wire

import (
	"testing"

	"github.com/SymaLang/syma/term"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := term.NewCall(term.NewSymbol("App"),
		term.NewCall(term.NewSymbol("State"), term.NewCall(term.NewSymbol("KV"), term.NewSymbol("Count"), term.NewNumber(7))),
		term.NewString("hi"),
		term.NewVar("x"),
		term.NewVarRest("xs"),
	)

	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(original) {
		t.Fatalf("round trip mismatch: want %v, got %v", original, decoded)
	}
}

func TestEncodeShapesMatchWireFormat(t *testing.T) {
	data, err := Encode(term.NewSymbol("Foo"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"k":"Sym","v":"Foo"}`
	if string(data) != want {
		t.Fatalf("want %s, got %s", want, data)
	}
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	if _, err := Decode([]byte(`{"k":"Bogus"}`)); err == nil {
		t.Fatalf("expected an error for an unknown node kind")
	}
}
