package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SymaLang/syma/cmd/syma/internal/env"
	"github.com/SymaLang/syma/compiler"
	"github.com/SymaLang/syma/surface"
	"github.com/SymaLang/syma/term"
	"github.com/SymaLang/syma/wire"
)

func newCompileCommand() *cobra.Command {
	var library bool
	var out string
	c := &cobra.Command{
		Use:   "compile <dir> <entry-module>",
		Short: "Compile a directory of modules into a Universe wire document",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CheckEnvironmentVariables(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			universe, err := compileDir(args[0], args[1], library)
			if err != nil {
				return err
			}
			data, err := wire.Encode(universe)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Println(string(data))
				return nil
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	c.Flags().BoolVar(&library, "library", false, "compile in library mode (no Program section required)")
	c.Flags().StringVarP(&out, "out", "o", "", "write the Universe wire document to this file instead of stdout")
	return c
}

func compileDir(dir, entry string, library bool) (*term.Term, error) {
	if entry == "" {
		entry = defaultEntry
	}
	sources, err := loadSources(dir)
	if err != nil {
		return nil, err
	}
	if entry == "" && len(sources) == 1 {
		for name := range sources {
			entry = name
		}
	}
	c := compiler.NewCompiler(sources, entry, library, surface.Parse, dirLoader{baseDir: dir})
	universe, err := c.Compile()
	if err != nil {
		return nil, err
	}
	return universe, nil
}
