// Package main implements the syma CLI: run, parse, compile, project,
// fmt, and repl subcommands over the module compiler and runtime.
// Grounded on github.com/open-policy-agent/opa/cmd's Command(rootCmd,
// brand) + per-subcommand init pattern.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SymaLang/syma/cmd/syma/internal/config"
)

var (
	logLevel   string
	configFile string
	// defaultEntry is the entry module name from the config file, used
	// by subcommands whose --entry flag the user left unset.
	defaultEntry string
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "syma",
		Short: "syma: a symbolic term-rewriting runtime",
		Long:  "syma compiles, runs, and inspects Syma modules over the term-rewriting engine.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			file, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") && file.LogLevel != "" {
				logLevel = file.LogLevel
			}
			defaultEntry = file.Entry
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a syma.yaml config file supplying flag defaults")

	root.AddCommand(newParseCommand())
	root.AddCommand(newFmtCommand())
	root.AddCommand(newCompileCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newProjectCommand())
	root.AddCommand(newReplCommand())
	return root
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := newRootCommand().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
