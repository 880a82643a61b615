// Package primitive implements the primitive folder (spec.md section
// 4.3): after every rewrite, a bottom-up walk replaces fully-ground
// calls to a fixed, documented set of host built-ins with their
// computed values.
package primitive

import (
	"math"
	"strconv"
	"strings"

	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/internal/idgen"
	"github.com/SymaLang/syma/term"
)

// handler folds a Call whose head matched a recognized name and whose
// args have already been folded bottom-up. matched=false means the
// shape did not qualify (wrong arity/kind) and the Call should be left
// as-is; a non-nil error is a genuine primitive failure (div by zero,
// bad types for an otherwise arity-correct call).
type handler func(args []*term.Term) (result *term.Term, matched bool, err error)

// table is the dispatch table for primitives keyed by head symbol,
// following spec.md section 9's "dispatch table for primitives keyed
// by head symbol" design note.
var table = map[string]handler{
	"Add": binaryNumeric(func(a, b float64) (float64, error) { return a + b, nil }),
	"Sub": binaryNumeric(func(a, b float64) (float64, error) { return a - b, nil }),
	"Mul": binaryNumeric(func(a, b float64) (float64, error) { return a * b, nil }),
	"Div": binaryNumeric(func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errs.New(errs.Primitive, "division by zero")
		}
		return a / b, nil
	}),
	"Mod": binaryNumeric(func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errs.New(errs.Primitive, "modulo by zero")
		}
		return math.Mod(a, b), nil
	}),
	"Pow": binaryNumeric(func(a, b float64) (float64, error) { return math.Pow(a, b), nil }),

	"Sqrt":  unaryNumeric(math.Sqrt),
	"Abs":   unaryNumeric(math.Abs),
	"Floor": unaryNumeric(math.Floor),
	"Ceil":  unaryNumeric(math.Ceil),
	"Round": unaryNumeric(math.Round),

	"Eq":  equality(true),
	"Neq": equality(false),

	"Lt":  comparison(func(c int) bool { return c < 0 }),
	"Gt":  comparison(func(c int) bool { return c > 0 }),
	"Lte": comparison(func(c int) bool { return c <= 0 }),
	"Gte": comparison(func(c int) bool { return c >= 0 }),

	"And": boolBinary(func(a, b bool) bool { return a && b }),
	"Or":  boolBinary(func(a, b bool) bool { return a || b }),
	"Not": boolUnary(func(a bool) bool { return !a }),

	"Concat":    concat,
	"ToString":  toString,
	"ToUpper":   stringUnary(strings.ToUpper),
	"ToLower":   stringUnary(strings.ToLower),
	"Trim":      stringUnary(strings.TrimSpace),
	"StrLen":    strLen,
	"Substring": substring,
	"IndexOf":   indexOf,
	"Replace":   replace,

	"IsNum":   isKind(term.Number),
	"IsStr":   isKind(term.String),
	"IsSym":   isKind(term.Symbol),
	"IsTrue":  isBool(true),
	"IsFalse": isBool(false),

	"NewId": newID,
}

// newID folds NewId[] to a fresh random UUID string. Unlike every
// other primitive it isn't a pure function of its (empty) arguments,
// so repeated folds of separately-substituted NewId[] calls produce
// different values by design; once folded a call becomes a String and
// is never re-evaluated.
func newID(args []*term.Term) (*term.Term, bool, error) {
	if len(args) != 0 {
		return nil, false, nil
	}
	id, err := idgen.New()
	if err != nil {
		return nil, false, errs.New(errs.Primitive, "generating id: %v", err)
	}
	return term.NewString(id), true, nil
}

// Fold walks t bottom-up and replaces every fully-ground, recognized
// primitive call with its computed value. It is idempotent: folding an
// already-folded term returns it unchanged (spec.md section 8,
// property 4).
func Fold(t *term.Term) (*term.Term, error) {
	if t.Kind != term.Call {
		return t, nil
	}

	newHead, err := Fold(t.Head())
	if err != nil {
		return nil, err
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	for i, a := range args {
		folded, err := Fold(a)
		if err != nil {
			return nil, err
		}
		newArgs[i] = folded
	}

	rebuilt := term.NewCall(newHead, newArgs...)

	if newHead.Kind != term.Symbol {
		return rebuilt, nil
	}
	h, ok := table[newHead.Sym()]
	if !ok {
		return rebuilt, nil
	}
	if !allGround(newArgs) {
		return rebuilt, nil
	}

	result, matched, err := h(newArgs)
	if err != nil {
		return nil, err
	}
	if !matched {
		return rebuilt, nil
	}
	return result, nil
}

func allGround(args []*term.Term) bool {
	for _, a := range args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

func boolSym(b bool) *term.Term {
	if b {
		return term.NewSymbol("True")
	}
	return term.NewSymbol("False")
}

func binaryNumeric(f func(a, b float64) (float64, error)) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 2 || args[0].Kind != term.Number || args[1].Kind != term.Number {
			return nil, false, nil
		}
		v, err := f(args[0].Num(), args[1].Num())
		if err != nil {
			return nil, false, err
		}
		return term.NewNumber(v), true, nil
	}
}

func unaryNumeric(f func(float64) float64) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 1 || args[0].Kind != term.Number {
			return nil, false, nil
		}
		return term.NewNumber(f(args[0].Num())), true, nil
	}
}

func equality(wantEqual bool) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 2 {
			return nil, false, nil
		}
		eq := args[0].Equal(args[1])
		return boolSym(eq == wantEqual), true, nil
	}
}

func comparison(pred func(cmp int) bool) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 2 {
			return nil, false, nil
		}
		a, b := args[0], args[1]
		switch {
		case a.Kind == term.Number && b.Kind == term.Number:
			return boolSym(pred(cmpFloat(a.Num(), b.Num()))), true, nil
		case a.Kind == term.String && b.Kind == term.String:
			return boolSym(pred(strings.Compare(a.Str(), b.Str()))), true, nil
		default:
			return nil, false, nil
		}
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func asBool(t *term.Term) (bool, bool) {
	if t.Kind != term.Symbol {
		return false, false
	}
	switch t.Sym() {
	case "True":
		return true, true
	case "False":
		return false, true
	default:
		return false, false
	}
}

func boolBinary(f func(a, b bool) bool) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 2 {
			return nil, false, nil
		}
		a, ok1 := asBool(args[0])
		b, ok2 := asBool(args[1])
		if !ok1 || !ok2 {
			return nil, false, nil
		}
		return boolSym(f(a, b)), true, nil
	}
}

func boolUnary(f func(bool) bool) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 1 {
			return nil, false, nil
		}
		a, ok := asBool(args[0])
		if !ok {
			return nil, false, nil
		}
		return boolSym(f(a)), true, nil
	}
}

// stringify coerces a ground Number/String/Symbol term to its string form,
// used by Concat's variadic coercion.
func stringify(t *term.Term) (string, bool) {
	switch t.Kind {
	case term.String:
		return t.Str(), true
	case term.Symbol:
		return t.Sym(), true
	case term.Number:
		return strconv.FormatFloat(t.Num(), 'g', -1, 64), true
	default:
		return "", false
	}
}

func concat(args []*term.Term) (*term.Term, bool, error) {
	var b strings.Builder
	for _, a := range args {
		s, ok := stringify(a)
		if !ok {
			return nil, false, nil
		}
		b.WriteString(s)
	}
	return term.NewString(b.String()), true, nil
}

func toString(args []*term.Term) (*term.Term, bool, error) {
	if len(args) != 1 {
		return nil, false, nil
	}
	s, ok := stringify(args[0])
	if !ok {
		return nil, false, nil
	}
	return term.NewString(s), true, nil
}

func stringUnary(f func(string) string) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 1 || args[0].Kind != term.String {
			return nil, false, nil
		}
		return term.NewString(f(args[0].Str())), true, nil
	}
}

func strLen(args []*term.Term) (*term.Term, bool, error) {
	if len(args) != 1 || args[0].Kind != term.String {
		return nil, false, nil
	}
	return term.NewNumber(float64(len([]rune(args[0].Str())))), true, nil
}

func substring(args []*term.Term) (*term.Term, bool, error) {
	if len(args) != 3 || args[0].Kind != term.String || args[1].Kind != term.Number || args[2].Kind != term.Number {
		return nil, false, nil
	}
	runes := []rune(args[0].Str())
	start := int(args[1].Num())
	end := int(args[2].Num())
	if start < 0 || end < start || end > len(runes) {
		return nil, false, errs.New(errs.Primitive, "Substring: index out of range (start=%d end=%d len=%d)", start, end, len(runes))
	}
	return term.NewString(string(runes[start:end])), true, nil
}

func indexOf(args []*term.Term) (*term.Term, bool, error) {
	if len(args) != 2 || args[0].Kind != term.String || args[1].Kind != term.String {
		return nil, false, nil
	}
	idx := strings.Index(args[0].Str(), args[1].Str())
	return term.NewNumber(float64(idx)), true, nil
}

func replace(args []*term.Term) (*term.Term, bool, error) {
	if len(args) != 3 || args[0].Kind != term.String || args[1].Kind != term.String || args[2].Kind != term.String {
		return nil, false, nil
	}
	return term.NewString(strings.ReplaceAll(args[0].Str(), args[1].Str(), args[2].Str())), true, nil
}

func isKind(k term.Kind) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 1 {
			return nil, false, nil
		}
		return boolSym(args[0].Kind == k), true, nil
	}
}

func isBool(want bool) handler {
	return func(args []*term.Term) (*term.Term, bool, error) {
		if len(args) != 1 {
			return nil, false, nil
		}
		b, ok := asBool(args[0])
		if !ok {
			return boolSym(false), true, nil
		}
		return boolSym(b == want), true, nil
	}
}

// Names returns the recognized primitive head symbols, used by the
// compiler to freeze the built-in vocabulary (spec.md section 4.9 step 5).
func Names() []string {
	names := make([]string, 0, len(table))
	for k := range table {
		names = append(names, k)
	}
	return names
}
