package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SymaLang/syma/cmd/syma/internal/env"
	"github.com/SymaLang/syma/runtime"
	"github.com/SymaLang/syma/term"
)

func newProjectCommand() *cobra.Command {
	var entry string
	var trace bool
	c := &cobra.Command{
		Use:   "project <dir> <part>",
		Short: "Compile a module directory and project one part out of its current state",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CheckEnvironmentVariables(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			runtime.SetTrace(trace)
			universe, err := compileDir(args[0], entry, false)
			if err != nil {
				return err
			}
			result, err := runtime.Project(universe, term.NewSymbol(args[1]))
			if err != nil {
				return err
			}
			fmt.Println(result.String())
			return nil
		},
	}
	c.Flags().StringVar(&entry, "entry", "", "entry module name (defaults to the only module in dir, if there's exactly one)")
	c.Flags().BoolVar(&trace, "trace", false, "enable normalization trace logging")
	return c
}
