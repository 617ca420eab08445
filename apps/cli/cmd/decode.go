package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/spf13/cobra"
)

var (
	decodeNameFlag    string
	decodeResolveFlag bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file|directory>",
	Short: "Print the Karma run configurations of a document",
	Long: `Decode the Karma run configurations stored in a workspace file or in
the .run/*.run.xml files of a directory and print them.

Examples:
  karmarun decode .idea/workspace.xml
  karmarun decode . --name unit -o json
  karmarun decode .run/unit.run.xml --resolve`,
	Args: cobra.ExactArgs(1),
	RunE: decodeCommand,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeNameFlag, "name", "n", "", "Only print the configuration with this name")
	decodeCmd.Flags().BoolVar(&decodeResolveFlag, "resolve", false, "Expand $PROJECT_DIR$ style macros in paths")
}

func decodeCommand(cmd *cobra.Command, args []string) error {
	configs, err := loadConfigurations(args[0])
	if err != nil {
		return err
	}
	configs, err = filterByName(configs, decodeNameFlag)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}
	if len(configs) == 0 {
		return fmt.Errorf("no Karma configurations found in %s", args[0])
	}

	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	var resolver *env.MacroResolver
	if decodeResolveFlag {
		resolver = env.NewMacroResolver(cfg.ProjectDir)
		resolver.SetWarnFunc(newConsole(cmd).PrintWarning)
	}

	for _, c := range configs {
		settings := c.Settings
		if resolver != nil {
			settings = expandPaths(resolver, settings)
		}
		if err := printer.Print(c.Name, settings); err != nil {
			return err
		}
	}
	return nil
}

func expandPaths(r *env.MacroResolver, s karma.RunSettings) karma.RunSettings {
	b := s.ToBuilder().
		SetConfigPath(r.Expand(s.ConfigPath())).
		SetTestFilePath(r.Expand(s.TestFilePath()))
	return b.Build()
}
