package term

// The pattern sub-language (spec.md section 3.2) is two distinguished
// Call shapes layered on top of Term: a point variable (Var) and a
// sequence/rest variable (VarRest). The engine proper never branches
// on a separate "Pattern" type; matcher and substituter recognize
// these shapes directly via AsVar/AsVarRest.

const (
	varHead     = "Var"
	varRestHead = "VarRest"

	// AnonymousVar is the wildcard name: its binding is not checked for
	// cross-occurrence consistency during matching.
	AnonymousVar = "_"
)

// NewVar builds a point-variable pattern term: Call(Sym("Var"), [Str(name)]).
func NewVar(name string) *Term {
	return NewCall(NewSymbol(varHead), NewString(name))
}

// NewVarRest builds a sequence-variable pattern term: Call(Sym("VarRest"), [Str(name)]).
func NewVarRest(name string) *Term {
	return NewCall(NewSymbol(varRestHead), NewString(name))
}

// AsVar reports whether t is a point-variable pattern term, returning
// its name.
func (t *Term) AsVar() (string, bool) {
	if t.Kind == Call && t.head.Kind == Symbol && t.head.sym == varHead &&
		len(t.args) == 1 && t.args[0].Kind == String {
		return t.args[0].str, true
	}
	return "", false
}

// AsVarRest reports whether t is a sequence-variable pattern term,
// returning its name.
func (t *Term) AsVarRest() (string, bool) {
	if t.Kind == Call && t.head.Kind == Symbol && t.head.sym == varRestHead &&
		len(t.args) == 1 && t.args[0].Kind == String {
		return t.args[0].str, true
	}
	return "", false
}

// IsAnonymous reports whether a variable name denotes the wildcard.
func IsAnonymous(name string) bool {
	return name == AnonymousVar
}
