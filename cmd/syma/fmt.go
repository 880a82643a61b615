package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SymaLang/syma/cmd/syma/internal/env"
	"github.com/SymaLang/syma/surface"
	"github.com/SymaLang/syma/surface/format"
)

func newFmtCommand() *cobra.Command {
	var write bool
	c := &cobra.Command{
		Use:   "fmt <file.syma>",
		Short: "Reformat a surface-dialect source file",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CheckEnvironmentVariables(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			forms, err := surface.ParseAll(string(data))
			if err != nil {
				return err
			}
			var out string
			for i, f := range forms {
				if i > 0 {
					out += "\n\n"
				}
				out += format.Format(f)
			}
			out += "\n"
			if write {
				return os.WriteFile(args[0], []byte(out), 0o644)
			}
			fmt.Print(out)
			return nil
		},
	}
	c.Flags().BoolVarP(&write, "write", "w", false, "write the reformatted output back to the file")
	return c
}
