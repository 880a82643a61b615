package compiler

import (
	"sort"

	"github.com/SymaLang/syma/errs"
)

// coreModuleName is the well-known module whose RuleRules are visible
// to every other module without an explicit `macro` import (spec.md
// section 4.9 step 4 and step 8).
const coreModuleName = "Core/Syntax/Global"

// collectReachable walks m.Imports transitively starting from entry,
// resolving each import either against the already-loaded set or via
// resolve (invoked once per module name not already loaded; a later
// import of the same name with a different fromPath reuses the first
// result), and
// detects import cycles.
//
// resolve is handed an Import and must return the parsed Module it
// names; it is expected to consult the in-memory source map for plain
// name-only imports and the host loader for imports carrying a
// FromPath (grounded on how ast.Compiler's loader abstracts "find me
// the source for this reference" in github.com/open-policy-agent/opa/ast).
func collectReachable(modules map[string]*Module, entry string, resolve func(Import) (*Module, error)) error {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS stack
		black = 2 // fully processed
	)
	color := map[string]int{}
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			cycle := append(append([]string{}, stack...), name)
			return errs.New(errs.CircularDependency, "import cycle: %v", cycle)
		}
		color[name] = gray
		stack = append(stack, name)

		m, ok := modules[name]
		if !ok {
			return errs.New(errs.UnknownModule, "module %q not found", name)
		}
		for _, imp := range m.Imports {
			if _, ok := modules[imp.Module]; !ok {
				resolved, err := resolve(imp)
				if err != nil {
					return err
				}
				modules[imp.Module] = resolved
			}
			if err := visit(imp.Module); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		color[name] = black
		return nil
	}

	return visit(entry)
}

// topoSort orders names (all of which must be keys of modules) so that
// every module's imports precede it, with coreModuleName forced to the
// front when present (spec.md section 4.9 step 4).
func topoSort(modules map[string]*Module) ([]string, error) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var order []string

	var visit func(name string) error
	visit = func(name string) error {
		if color[name] == black {
			return nil
		}
		if color[name] == gray {
			return errs.New(errs.CircularDependency, "import cycle involving %q", name)
		}
		color[name] = gray
		m := modules[name]
		for _, imp := range m.Imports {
			if err := visit(imp.Module); err != nil {
				return err
			}
		}
		color[name] = black
		order = append(order, name)
		return nil
	}

	// Deterministic traversal order: core first if present, then the
	// rest in an arbitrary but fixed pass over a sorted key list so
	// output is stable across runs.
	names := sortedKeys(modules)
	if _, ok := modules[coreModuleName]; ok {
		if err := visit(coreModuleName); err != nil {
			return nil, err
		}
	}
	for _, n := range names {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func sortedKeys(modules map[string]*Module) []string {
	keys := make([]string, 0, len(modules))
	for k := range modules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
