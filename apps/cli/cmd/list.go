package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>...",
	Short: "List Karma run configurations",
	Long: `List the Karma run configurations found in workspace files or .run directories.

Examples:
  karmarun list .idea/workspace.xml
  karmarun list .`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		configs, err := loadConfigurations(arg)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error reading %s: %v\n", arg, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", arg)
		for _, c := range configs {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s [%s]\n", c.Name, describeScope(c.Settings))
		}
	}

	return nil
}

func describeScope(s karma.RunSettings) string {
	switch kind := s.ScopeKind(); {
	case kind == karma.ScopeTestFile:
		return fmt.Sprintf("%s %s", kind, s.TestFilePath())
	case kind.UsesTestNames() && len(s.TestNames()) > 0:
		return fmt.Sprintf("%s %v", kind, s.TestNames())
	default:
		return kind.String()
	}
}
