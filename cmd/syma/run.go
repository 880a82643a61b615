package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SymaLang/syma/cmd/syma/internal/env"
	"github.com/SymaLang/syma/compiler"
	"github.com/SymaLang/syma/runtime"
	"github.com/SymaLang/syma/runtime/watch"
	"github.com/SymaLang/syma/surface"
	"github.com/SymaLang/syma/term"
)

func newRunCommand() *cobra.Command {
	var entry string
	var trace bool
	var watchFlag bool
	c := &cobra.Command{
		Use:   "run <dir> [action...]",
		Short: "Compile a module directory and dispatch a sequence of actions against it",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CheckEnvironmentVariables(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			dir := args[0]
			actions := args[1:]
			runtime.SetTrace(trace)

			universe, err := compileDir(dir, entry, false)
			if err != nil {
				return err
			}

			if watchFlag {
				ctx, cancel := context.WithCancel(context.Background())
				sigs := make(chan os.Signal, 1)
				signal.Notify(sigs, os.Interrupt)
				go func() {
					<-sigs
					cancel()
				}()

				newCompiler := func() *compiler.Compiler {
					sources, srcErr := loadSources(dir)
					if srcErr != nil {
						return compiler.NewCompiler(map[string]string{entry: ""}, entry, false, func(string) (*term.Term, error) {
							return nil, srcErr
						}, nil)
					}
					reloadEntry := entry
					if reloadEntry == "" {
						reloadEntry = defaultEntry
					}
					if reloadEntry == "" && len(sources) == 1 {
						for name := range sources {
							reloadEntry = name
						}
					}
					return compiler.NewCompiler(sources, reloadEntry, false, surface.Parse, dirLoader{baseDir: dir})
				}
				onReload := func(u *term.Term, elapsed time.Duration, reloadErr error) {
					if reloadErr != nil {
						logrus.WithError(reloadErr).Warn("run --watch: recompile failed")
						return
					}
					universe = u
					logrus.WithField("elapsed", elapsed).Info("run --watch: recompiled")
				}
				w := watch.New([]string{dir}, newCompiler, onReload)
				if err := w.Start(ctx); err != nil {
					return err
				}
				logrus.Info("run --watch: watching for changes, Ctrl-C to exit")
				<-ctx.Done()
				return nil
			}

			for _, action := range actions {
				universe, err = runtime.Dispatch(universe, symbolTerm(action))
				if err != nil {
					return err
				}
				state, err := runtime.State(universe)
				if err != nil {
					return err
				}
				fmt.Printf("%s -> %s\n", action, state.String())
			}
			return nil
		},
	}
	c.Flags().StringVar(&entry, "entry", "", "entry module name (defaults to the only module in dir, if there's exactly one)")
	c.Flags().BoolVar(&trace, "trace", false, "enable normalization trace logging")
	c.Flags().BoolVar(&watchFlag, "watch", false, "watch dir for changes and recompile (Ctrl-C to exit)")
	return c
}

func symbolTerm(name string) *term.Term {
	return term.NewSymbol(name)
}
