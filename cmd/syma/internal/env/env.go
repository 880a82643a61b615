// Package env maps environment variables onto unset command flags,
// grounded on github.com/open-policy-agent/opa/cmd/internal/env:
// SYMA_<COMMAND>_<FLAG> (or SYMA_<FLAG> for the root command)
// overrides a flag the user didn't pass explicitly.
package env

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const globalPrefix = "syma"

// CheckEnvironmentVariables binds SYMA_*-prefixed environment
// variables onto any flag of command that the user left at its
// default value.
func CheckEnvironmentVariables(command *cobra.Command) error {
	var problems []string
	v := viper.New()
	v.AutomaticEnv()
	if command.Name() == globalPrefix {
		v.SetEnvPrefix(command.Name())
	} else {
		v.SetEnvPrefix(fmt.Sprintf("%s_%s", globalPrefix, command.Name()))
	}
	command.Flags().VisitAll(func(f *pflag.Flag) {
		configName := strings.ReplaceAll(f.Name, "-", "_")
		if !f.Changed && v.IsSet(configName) {
			if err := command.Flags().Set(f.Name, fmt.Sprintf("%v", v.Get(configName))); err != nil {
				problems = append(problems, err.Error())
			}
		}
	})
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("error mapping environment variables to command flags: %s", strings.Join(problems, "; "))
}
