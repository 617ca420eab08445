package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/spf13/cobra"
)

var environNameFlag string

var environCmd = &cobra.Command{
	Use:   "env <file|directory>",
	Short: "Print the environment a Karma configuration runs with",
	Long: `Print the effective environment of a Karma run configuration as sorted
KEY=VALUE lines: the current environment when the configuration inherits
it, overlaid by the configured variables.

Examples:
  karmarun env .run/unit.run.xml
  karmarun env .idea/workspace.xml --name unit`,
	Args: cobra.ExactArgs(1),
	RunE: environCommand,
}

func init() {
	environCmd.Flags().StringVarP(&environNameFlag, "name", "n", "", "Configuration name (required when the document holds several)")
}

func environCommand(cmd *cobra.Command, args []string) error {
	configs, err := loadConfigurations(args[0])
	if err != nil {
		return err
	}
	configs, err = filterByName(configs, environNameFlag)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	switch len(configs) {
	case 0:
		return fmt.Errorf("no Karma configurations found in %s", args[0])
	case 1:
		return writeEnviron(cmd.OutOrStdout(), configs[0], os.Environ())
	default:
		return withExitCode(ExitUsageError, fmt.Errorf("%s holds %d configurations, pick one with --name", args[0], len(configs)))
	}
}

func writeEnviron(w io.Writer, c workspace.Configuration, parent []string) error {
	for _, kv := range c.Settings.EnvData().Environ(parent) {
		if _, err := fmt.Fprintln(w, kv); err != nil {
			return err
		}
	}
	return nil
}
