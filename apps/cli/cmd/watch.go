package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/abdul-hamid-achik/karmarun/packages/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>...",
	Short: "Print Karma run configurations whenever their files change",
	Long: `Watch workspace or .run files and print their Karma configurations after
each change.

Examples:
  karmarun watch .idea/workspace.xml
  karmarun watch .run/unit.run.xml .run/e2e.run.xml -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: watchCommand,
}

func watchCommand(cmd *cobra.Command, args []string) error {
	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	console := newConsole(cmd)

	printAll := func(path string, configs []workspace.Configuration) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", path)
		for _, c := range configs {
			if err := printer.Print(c.Name, c.Settings); err != nil {
				console.PrintError(err)
			}
		}
	}

	for _, arg := range args {
		configs, err := loadConfigurations(arg)
		if err != nil {
			return err
		}
		printAll(arg, configs)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	w := watch.New(args, printAll, watch.WithWarnFunc(console.PrintWarning))
	return w.Run(ctx)
}
