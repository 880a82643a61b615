package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/SymaLang/syma/compiler"
	"github.com/SymaLang/syma/errs"
	"github.com/SymaLang/syma/surface"
	"github.com/SymaLang/syma/term"
)

// loadSources reads every *.syma file in dir into a module-name-keyed
// source map, using each file's own declared Module[name, ...] as the
// key rather than its filename (so imports resolve by declared name
// regardless of file layout).
func loadSources(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownModule, err, "reading module directory %s", dir)
	}
	sources := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".syma") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, errs.Wrap(errs.Parse, err, "reading %s", e.Name())
		}
		t, err := surface.Parse(string(data))
		if err != nil {
			return nil, errs.Wrap(errs.Parse, err, "parsing %s", e.Name())
		}
		if !t.IsCallTo("Module") || len(t.Args()) == 0 || t.Args()[0].Kind != term.Symbol {
			continue
		}
		name := t.Args()[0].Sym()
		sources[name] = string(data)
	}
	return sources, nil
}

// dirLoader resolves an import's "from" path relative to baseDir.
type dirLoader struct {
	baseDir string
}

func (l dirLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, path))
	if err != nil {
		return "", errs.Wrap(errs.UnknownModule, err, "loading import %s", path)
	}
	return string(data), nil
}

var _ compiler.Loader = dirLoader{}
