// Package errs defines the typed error taxonomy used across the Syma
// engine (parsing, matching, substitution, compiling, and running).
package errs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies an Error. See spec section 7 for the authoritative
// table this enumeration mirrors.
type Kind int

const (
	// Parse indicates malformed surface source or wire JSON.
	Parse Kind = iota
	// InvalidModule indicates a Module[...] structure violation.
	InvalidModule
	// CircularDependency indicates an import cycle found during linking.
	CircularDependency
	// UnknownModule indicates an import that cannot be resolved.
	UnknownModule
	// UnboundVariable indicates subst saw a variable without a binding.
	UnboundVariable
	// Unmatchable indicates a projection whose envelope never fired a rule.
	Unmatchable
	// Primitive indicates a primitive fold failure (bad types, div by zero).
	Primitive
	// NonTermination indicates normalize exceeded its step budget.
	NonTermination
	// PatternExplosion indicates matcher backtracking exceeded its budget.
	PatternExplosion
	// TermTooLarge indicates a term exceeded the implementation size cap.
	TermTooLarge
	// InvalidPattern indicates a malformed VarRest or unknown variable shape.
	InvalidPattern
)

// String renders the Kind using the same identifiers as spec section 7.
func (k Kind) String() string {
	switch k {
	case Parse:
		return "Parse"
	case InvalidModule:
		return "InvalidModule"
	case CircularDependency:
		return "CircularDependency"
	case UnknownModule:
		return "UnknownModule"
	case UnboundVariable:
		return "UnboundVariable"
	case Unmatchable:
		return "Unmatchable"
	case Primitive:
		return "Primitive"
	case NonTermination:
		return "NonTermination"
	case PatternExplosion:
		return "PatternExplosion"
	case TermTooLarge:
		return "TermTooLarge"
	case InvalidPattern:
		return "InvalidPattern"
	default:
		return "Unknown"
	}
}

// Error is a single typed engine failure. RuleName and Path are filled
// in where applicable (see spec section 7, "user-visible failure").
type Error struct {
	Kind     Kind
	Message  string
	RuleName string
	Path     []string
	Before   string
	After    string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.RuleName != "" {
		fmt.Fprintf(&b, " (rule %q)", e.RuleName)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " at %s", strings.Join(e.Path, "/"))
	}
	if e.Before != "" || e.After != "" {
		fmt.Fprintf(&b, "\n  before: %s\n  after:  %s", e.Before, e.After)
	}
	return b.String()
}

// New builds an Error of the given Kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given Kind around a lower-level cause
// (a loader I/O failure, an underlying parse error), using
// github.com/pkg/errors' Wrapf to prefix the formatted context to the
// cause's message. Only that combined message text is kept in the
// Error: neither the cause value nor the stack trace Wrapf records is
// retained. Used by the compiler's import-resolution and
// source-loading paths.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	wrapped := errors.Wrapf(cause, format, args...)
	return &Error{Kind: kind, Message: wrapped.Error()}
}

// WithRule annotates the error with the offending rule's name.
func (e *Error) WithRule(name string) *Error {
	e.RuleName = name
	return e
}

// WithPath annotates the error with the path into the offending term.
func (e *Error) WithPath(path []string) *Error {
	e.Path = path
	return e
}

// WithTerms annotates the error with a compact before/after rendering.
func (e *Error) WithTerms(before, after string) *Error {
	e.Before = before
	e.After = after
	return e
}

// Is reports whether err is itself a *Error of the given Kind, so
// callers can write errs.Is(err, errs.NonTermination). It does not
// unwrap err and does not look inside an Errors aggregate.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// Errors aggregates multiple Error values, following ast.Errors.
type Errors []*Error

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no error(s)"
	}
	if len(e) == 1 {
		return "1 error occurred: " + e[0].Error()
	}
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(e), strings.Join(parts, "\n"))
}
