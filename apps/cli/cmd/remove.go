package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <file> <name>...",
	Short: "Delete Karma run configurations from a document",
	Long: `Remove the named Karma run configurations from a workspace or .run file.
Other configurations and components are left untouched.

Examples:
  karmarun remove .idea/workspace.xml unit
  karmarun remove .run/app.run.xml app`,
	Args: cobra.MinimumNArgs(2),
	RunE: removeCommand,
}

func removeCommand(cmd *cobra.Command, args []string) error {
	path := args[0]
	doc, err := workspace.Load(path)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}

	if err := removeConfigurations(doc, args[1:]); err != nil {
		return withExitCode(ExitUsageError, err)
	}
	if err := doc.Save(path); err != nil {
		return err
	}
	newConsole(cmd).PrintOK("removed %d configuration(s) from %s", len(args)-1, path)
	return nil
}

// removeConfigurations removes every name or nothing at all
func removeConfigurations(doc *workspace.Document, names []string) error {
	for _, name := range names {
		if _, ok := doc.Get(name); !ok {
			return fmt.Errorf("no Karma configuration named %q", name)
		}
	}
	for _, name := range names {
		doc.Remove(name)
	}
	return nil
}
