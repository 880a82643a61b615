package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/SymaLang/syma/cmd/syma/internal/env"
	"github.com/SymaLang/syma/normalize"
	"github.com/SymaLang/syma/rule"
	"github.com/SymaLang/syma/ruleset"
	"github.com/SymaLang/syma/runtime"
	"github.com/SymaLang/syma/surface"
	"github.com/SymaLang/syma/term"
)

// replState holds the interactive session state: the live Universe and
// the dir/entry it was loaded from. Grounded on
// github.com/open-policy-agent/opa/repl's REPL struct and Loop method,
// generalized from Rego queries to dispatch/project/normalize commands.
type replState struct {
	universe *term.Term
	dir      string
	entry    string
}

func newReplCommand() *cobra.Command {
	var dir string
	var entry string
	c := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session over a compiled Universe",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CheckEnvironmentVariables(cmd)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			r := &replState{dir: dir, entry: entry}
			if dir != "" {
				universe, err := compileDir(dir, entry, false)
				if err != nil {
					return err
				}
				r.universe = universe
			}
			return r.loop()
		},
	}
	c.Flags().StringVar(&dir, "dir", "", "module directory to load at startup")
	c.Flags().StringVar(&entry, "entry", "", "entry module name")
	return c
}

func (r *replState) loop() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("syma repl — :help for commands, :quit to exit")
	for {
		input, err := line.Prompt("syma> ")
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if err := r.oneShot(input); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Println("error:", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func (r *replState) oneShot(input string) error {
	switch {
	case input == ":quit" || input == ":exit":
		return errQuit
	case input == ":help":
		fmt.Println(`commands:
  :load <dir> <entry>   compile a module directory and load its Universe
  :dispatch <Action>    dispatch an action symbol against the loaded Universe
  :project <Part>       project a part out of the current state
  :trace on|off          toggle normalization trace logging
  :rules                 list the current effective rule set
  :show                  print the current Program state
  <{...} form>           normalize a bare term against the loaded rules
  :quit                  exit`)
		return nil
	case strings.HasPrefix(input, ":load "):
		fields := strings.Fields(input)
		if len(fields) != 3 {
			return fmt.Errorf(":load requires <dir> <entry>")
		}
		universe, err := compileDir(fields[1], fields[2], false)
		if err != nil {
			return err
		}
		r.universe, r.dir, r.entry = universe, fields[1], fields[2]
		fmt.Println("loaded.")
		return nil
	case strings.HasPrefix(input, ":dispatch "):
		if r.universe == nil {
			return fmt.Errorf("no Universe loaded; use :load first")
		}
		action := strings.TrimSpace(strings.TrimPrefix(input, ":dispatch "))
		next, err := runtime.Dispatch(r.universe, term.NewSymbol(action))
		if err != nil {
			return err
		}
		r.universe = next
		state, err := runtime.State(r.universe)
		if err != nil {
			return err
		}
		fmt.Println(state.String())
		return nil
	case strings.HasPrefix(input, ":project "):
		if r.universe == nil {
			return fmt.Errorf("no Universe loaded; use :load first")
		}
		part := strings.TrimSpace(strings.TrimPrefix(input, ":project "))
		result, err := runtime.Project(r.universe, term.NewSymbol(part))
		if err != nil {
			return err
		}
		fmt.Println(result.String())
		return nil
	case strings.HasPrefix(input, ":trace "):
		mode := strings.TrimSpace(strings.TrimPrefix(input, ":trace "))
		runtime.SetTrace(mode == "on")
		fmt.Println("trace:", mode)
		return nil
	case input == ":rules":
		if r.universe == nil {
			return fmt.Errorf("no Universe loaded; use :load first")
		}
		rules, err := ruleset.ExtractRules(r.universe)
		if err != nil {
			return err
		}
		for _, rl := range rules {
			fmt.Printf("%-30s priority=%v\n", rl.Name, rl.Priority)
		}
		return nil
	case input == ":show":
		if r.universe == nil {
			return fmt.Errorf("no Universe loaded; use :load first")
		}
		state, err := runtime.State(r.universe)
		if err != nil {
			return err
		}
		fmt.Println(state.String())
		return nil
	default:
		t, err := surface.Parse(input)
		if err != nil {
			return err
		}
		var effective []*rule.Rule
		if r.universe != nil {
			effective, err = ruleset.ExtractRules(r.universe)
			if err != nil {
				return err
			}
		}
		result, err := normalize.Normalize(t, effective, 0)
		if err != nil {
			return err
		}
		fmt.Println(result.String())
		return nil
	}
}
