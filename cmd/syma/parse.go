package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SymaLang/syma/cmd/syma/internal/env"
	"github.com/SymaLang/syma/surface"
)

func newParseCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "parse <file.syma>",
		Short: "Parse a surface-dialect source file and print its Term tree",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CheckEnvironmentVariables(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := surface.Parse(string(data))
			if err != nil {
				return err
			}
			fmt.Println(t.String())
			return nil
		},
	}
	return c
}
