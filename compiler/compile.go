package compiler

import (
	"github.com/sirupsen/logrus"

	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/ruleset"
	"github.com/SymaLang/syma/runtime"
	"github.com/SymaLang/syma/term"
)

// ParseFunc parses one module's surface source text into its
// Module[...] term. Supplied by the caller (the surface package, in
// the CLI) so this package never imports a concrete parser, following
// how github.com/open-policy-agent/opa/ast's Compiler takes already-
// parsed *Module values rather than owning parsing itself.
type ParseFunc func(src string) (*term.Term, error)

// Loader fetches source text for an import's "from" path, for modules
// not already present in the in-memory source set passed to Compile.
type Loader interface {
	Load(path string) (string, error)
}

// NoLoader is a Loader that always fails; used when the caller has no
// "from"-path import resolution to offer.
type NoLoader struct{}

func (NoLoader) Load(path string) (string, error) {
	return "", errs.New(errs.UnknownModule, "no loader configured to resolve import path %q", path)
}

// Compiler drives the module compiler/linker pipeline (spec.md section
// 4.9) as a sequence of named stages, following the staged-pipeline
// style of github.com/open-policy-agent/opa/ast's Compiler: each stage
// may add to Errors, and the pipeline stops at the first stage that does.
type Compiler struct {
	Errors errs.Errors

	sources map[string]string
	entry   string
	library bool
	parse   ParseFunc
	loader  Loader

	modules map[string]*Module
	order   []string

	universe *term.Term
}

// NewCompiler constructs a Compiler over an in-memory module source
// set (keyed by declared module name) and a parser for surface text.
// loader may be nil, in which case imports with a "from" path fail.
func NewCompiler(sources map[string]string, entry string, library bool, parse ParseFunc, loader Loader) *Compiler {
	if loader == nil {
		loader = NoLoader{}
	}
	return &Compiler{
		sources: sources,
		entry:   entry,
		library: library,
		parse:   parse,
		loader:  loader,
		modules: map[string]*Module{},
	}
}

type stage struct {
	name string
	run  func() error
}

// Compile runs the full pipeline and returns the emitted Universe
// term. On failure, c.Errors holds the accumulated diagnostics and the
// returned error is the first stage failure.
func (c *Compiler) Compile() (*term.Term, error) {
	stages := []stage{
		{"parse", c.stageParse},
		{"collect", c.stageCollect},
		{"order", c.stageOrder},
		{"qualify-and-emit", c.stageQualifyAndEmit},
	}
	for _, s := range stages {
		if err := s.run(); err != nil {
			c.Errors = append(c.Errors, asErrorSlice(err)...)
			logrus.WithError(err).WithField("stage", s.name).Error("compile failed")
			return nil, err
		}
	}
	return c.universe, nil
}

func asErrorSlice(err error) errs.Errors {
	if es, ok := err.(errs.Errors); ok {
		return es
	}
	if e, ok := err.(*errs.Error); ok {
		return errs.Errors{e}
	}
	return errs.Errors{errs.New(errs.Parse, "%v", err)}
}

// stageParse parses the entry module only (spec.md section 4.9 steps
// 1-2); every imported module, whether named in c.sources or carrying
// a fromPath, is parsed on demand by stageCollect's resolver.
func (c *Compiler) stageParse() error {
	m, err := c.parseNamed(c.entry, c.entry)
	if err != nil {
		return err
	}
	c.modules[c.entry] = m
	return nil
}

func (c *Compiler) parseNamed(name, expectedName string) (*Module, error) {
	src, ok := c.sources[name]
	if !ok {
		return nil, errs.New(errs.UnknownModule, "no source registered for module %q", name)
	}
	t, err := c.parse(src)
	if err != nil {
		return nil, err
	}
	return ParseModule(t, expectedName)
}

// stageCollect transitively resolves every import reachable from the
// entry module, detecting cycles (spec.md section 4.9 step 3).
func (c *Compiler) stageCollect() error {
	resolve := func(imp Import) (*Module, error) {
		if imp.FromPath != "" {
			src, err := c.loader.Load(imp.FromPath)
			if err != nil {
				return nil, errs.Wrap(errs.UnknownModule, err, "loading import %q from %q", imp.Module, imp.FromPath)
			}
			t, err := c.parse(src)
			if err != nil {
				return nil, errs.Wrap(errs.Parse, err, "parsing import %q from %q", imp.Module, imp.FromPath)
			}
			return ParseModule(t, imp.Module)
		}
		return c.parseNamed(imp.Module, imp.Module)
	}
	return collectReachable(c.modules, c.entry, resolve)
}

// stageOrder topologically sorts the reachable module set, imports
// first, with the well-known core module pinned to the front (spec.md
// section 4.9 step 4).
func (c *Compiler) stageOrder() error {
	order, err := topoSort(c.modules)
	if err != nil {
		return err
	}
	c.order = order
	return nil
}

// stageQualifyAndEmit runs steps 5-9: per-module symbol qualification,
// definition expansion, rule/meta-rule tagging, macro-scope
// computation, and Universe emission.
func (c *Compiler) stageQualifyAndEmit() error {
	builtins := ruleset.BuiltinVocabulary()

	var taggedRules []*term.Term
	var taggedMeta []*term.Term
	macroScopeEntries := map[string][]string{}

	for _, name := range c.order {
		m := c.modules[name]
		ctx := newQualifyCtx(m, c.modules, builtins)

		for _, raw := range m.Rules {
			q := ctx.qualifyTerm(raw)
			taggedRules = append(taggedRules, term.NewCall(term.NewSymbol("TaggedRule"), term.NewSymbol(name), q))
		}
		for _, raw := range m.RuleRules {
			q := ctx.qualifyTerm(raw)
			taggedMeta = append(taggedMeta, term.NewCall(term.NewSymbol("TaggedRuleRule"), term.NewSymbol(name), q))
		}

		qualifiedDefs := make(map[string]*term.Term, len(m.Defs))
		for defName, expr := range m.Defs {
			qualifiedDefs[defName] = ctx.qualifyTerm(expr)
		}
		for _, r := range expandDefs(m.DefOrder, qualifiedDefs, func(defName string) string { return name + "/" + defName }) {
			taggedRules = append(taggedRules, term.NewCall(term.NewSymbol("TaggedRule"), term.NewSymbol(name), ruleToTerm(r)))
		}

		visible := []string{}
		if len(m.RuleRules) > 0 {
			visible = append(visible, name)
		}
		if _, ok := c.modules[coreModuleName]; ok && name != coreModuleName {
			visible = appendUnique(visible, coreModuleName)
		}
		for _, imp := range m.Imports {
			if imp.Macro {
				visible = appendUnique(visible, imp.Module)
			}
		}
		if len(visible) > 0 {
			macroScopeEntries[name] = visible
		}
	}

	var macroScopeTerms []*term.Term
	for _, name := range c.order {
		visible, ok := macroScopeEntries[name]
		if !ok {
			continue
		}
		from := make([]*term.Term, len(visible))
		for i, v := range visible {
			from[i] = term.NewSymbol(v)
		}
		macroScopeTerms = append(macroScopeTerms,
			term.NewCall(term.NewSymbol("Module"), term.NewSymbol(name),
				term.NewCall(term.NewSymbol("RuleRulesFrom"), from...)))
	}

	var programTerm *term.Term
	if !c.library {
		entryMod := c.modules[c.entry]
		if entryMod.Program == nil {
			return errs.New(errs.InvalidModule, "entry module %q has no Program section", c.entry)
		}
		entryCtx := newQualifyCtx(entryMod, c.modules, builtins)
		programTerm = term.NewCall(term.NewSymbol("Program"), entryCtx.qualifyTerm(entryMod.Program))
	}

	rulesTerm := term.NewCall(term.NewSymbol("Rules"), taggedRules...)
	var ruleRulesTerm *term.Term
	if len(taggedMeta) > 0 {
		ruleRulesTerm = term.NewCall(term.NewSymbol("RuleRules"), taggedMeta...)
	}
	var macroScopesTerm *term.Term
	if len(macroScopeTerms) > 0 {
		macroScopesTerm = term.NewCall(term.NewSymbol("MacroScopes"), macroScopeTerms...)
	}

	c.universe = runtime.NewUniverse(programTerm, rulesTerm, ruleRulesTerm, macroScopesTerm)
	return nil
}

func appendUnique(ss []string, s string) []string {
	for _, existing := range ss {
		if existing == s {
			return ss
		}
	}
	return append(ss, s)
}

// ruleToTerm renders a *rule.Rule back into an R[...] term, for
// definition-expansion rules synthesized directly as *rule.Rule values
// rather than parsed from source.
func ruleToTerm(r *rule.Rule) *term.Term {
	return term.NewCall(term.NewSymbol("R"), term.NewString(r.Name), r.LHS, r.RHS, term.NewNumber(r.Priority))
}
