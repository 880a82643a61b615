package ruleset

import "github.com/SymaLang/syma/primitive"

// builtinCore is the fixed set of engine-core head symbols that must
// never be qualified by the module compiler (spec.md section 4.9 step
// 5). It is frozen here and versioned by this doc comment, resolving
// the open question in spec.md section 9 ("the built-in vocabulary
// list... should be frozen as part of the specification").
//
// v1: engine core heads, the projection envelope, and the Splat alias.
var builtinCore = []string{
	"R", "Universe", "Program", "Rules", "RuleRules",
	"App", "State", "UI", "Apply", "Bundle",
	"Module", "Import", "Export", "Defs", "Effects",
	"Pending", "Inbox",
	"Var", "VarRest",
	"/@", "Show", "Project",
	"Splat", "...!",
	"TaggedRule", "TaggedRuleRule", "MacroScopes", "RuleRulesFrom",
	"KV", "Props",
}

// builtinDOM is the fixed set of DOM-like tag symbols recognized by
// downstream projectors; qualification must leave these unqualified
// too, even though this core has no projector of its own (spec.md
// section 1 lists projectors as an external collaborator).
var builtinDOM = []string{
	"Div", "Span", "P", "A", "Button", "Input", "Form", "Ul", "Li",
	"H1", "H2", "H3", "Img", "Table", "Tr", "Td", "Th", "Label",
	"Select", "Option", "Textarea",
}

// builtinEventHandlers are KV keys whose values are event-handler
// combinator trees (spec.md section 4.9 step 5, last bullet); their
// action sub-arguments are left unqualified.
var builtinEventHandlers = []string{
	"onClick", "onKeydown", "onSubmit", "onChange", "onInput", "onFocus", "onBlur",
}

// builtinHandlerCombinators are the recognized combinators inside an
// event-handler value; their action sub-arguments are preserved verbatim.
var builtinHandlerCombinators = []string{
	"Seq", "When", "If", "PreventDefault", "StopPropagation", "ClearInput", "SetInput", "KeyIs",
}

// BuiltinVocabulary returns the full frozen set of symbols the module
// compiler must never qualify: engine core heads, DOM tag symbols,
// event-handler keys/combinators, and every primitive recognized by
// the primitive folder (spec.md section 4.3).
func BuiltinVocabulary() map[string]bool {
	set := make(map[string]bool)
	for _, list := range [][]string{builtinCore, builtinDOM, builtinEventHandlers, builtinHandlerCombinators} {
		for _, name := range list {
			set[name] = true
		}
	}
	for _, name := range primitive.Names() {
		set[name] = true
	}
	return set
}

// EventHandlerKeys reports whether key is a recognized event-handler KV key.
func EventHandlerKeys(key string) bool {
	for _, k := range builtinEventHandlers {
		if k == key {
			return true
		}
	}
	return false
}

// HandlerCombinator reports whether name is a recognized event-handler combinator.
func HandlerCombinator(name string) bool {
	for _, c := range builtinHandlerCombinators {
		if c == name {
			return true
		}
	}
	return false
}
