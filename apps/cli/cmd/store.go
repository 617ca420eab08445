package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/store"
	"github.com/spf13/cobra"
)

var (
	storeNameFlag      string
	storeWorkspaceFlag string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep Karma run configurations in a SQLite store",
	Long: `Save configurations from workspace files into a SQLite store, and read
them back out. The store location comes from the config file or
KARMARUN_STORE (default: sqlite://.karmarun/store.db).

Examples:
  karmarun store save .idea/workspace.xml
  karmarun store list
  karmarun store get unit -o yaml
  karmarun store restore unit --workspace .run/unit.run.xml
  karmarun store delete unit`,
}

var storeSaveCmd = &cobra.Command{
	Use:   "save <file|directory>",
	Short: "Save configurations from a document",
	Args:  cobra.ExactArgs(1),
	RunE:  storeSaveCommand,
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  storeGetCommand,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored configurations",
	Args:  cobra.NoArgs,
	RunE:  storeListCommand,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  storeDeleteCommand,
}

var storeRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Write a stored configuration into a workspace or .run file",
	Args:  cobra.ExactArgs(1),
	RunE:  storeRestoreCommand,
}

func init() {
	storeSaveCmd.Flags().StringVarP(&storeNameFlag, "name", "n", "", "Only save the configuration with this name")
	storeRestoreCmd.Flags().StringVarP(&storeWorkspaceFlag, "workspace", "w", "", "Target workspace or .run file (default from config)")

	storeCmd.AddCommand(storeSaveCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeDeleteCmd)
	storeCmd.AddCommand(storeRestoreCmd)
}

func openStore(ctx context.Context) (*store.Store, error) {
	location := cfg.Store
	if dir := sqliteDir(location); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, withExitCode(ExitStoreError, fmt.Errorf("creating store directory: %w", err))
		}
	}
	s, err := store.Open(ctx, location)
	return s, withExitCode(ExitStoreError, err)
}

// sqliteDir returns the directory a file-backed store lives in, if any
func sqliteDir(location string) string {
	path := strings.TrimPrefix(strings.TrimPrefix(location, "sqlite://"), "sqlite:")
	if path == "" || strings.HasPrefix(path, ":memory:") || strings.HasPrefix(path, "file:") {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}

func storeSaveCommand(cmd *cobra.Command, args []string) error {
	configs, err := loadConfigurations(args[0])
	if err != nil {
		return err
	}
	configs, err = filterByName(configs, storeNameFlag)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	console := newConsole(cmd)
	for _, c := range configs {
		rec, err := s.Save(cmd.Context(), c.Name, c.Settings)
		if err != nil {
			return withExitCode(ExitStoreError, err)
		}
		console.PrintOK("saved %s (%s)", rec.Name, rec.ID)
	}
	return nil
}

func storeGetCommand(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return storeError(err)
	}

	printer, err := newPrinter(cmd)
	if err != nil {
		return err
	}
	return printer.Print(rec.Name, rec.Settings)
}

func storeListCommand(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(cmd.Context())
	if err != nil {
		return storeError(err)
	}
	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
			rec.Name, describeScope(rec.Settings), rec.UpdatedAt.Format("2006-01-02 15:04:05"), rec.ID)
	}
	return nil
}

func storeDeleteCommand(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(cmd.Context(), args[0]); err != nil {
		return storeError(err)
	}
	newConsole(cmd).PrintOK("deleted %s", args[0])
	return nil
}

func storeRestoreCommand(cmd *cobra.Command, args []string) error {
	target := storeWorkspaceFlag
	if target == "" {
		target = cfg.Workspace
	}

	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return storeError(err)
	}

	doc, err := openOrCreateDocument(target)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}
	doc.Put(rec.Name, rec.Settings)
	if err := doc.Save(target); err != nil {
		return err
	}
	newConsole(cmd).PrintOK("restored %s into %s", rec.Name, target)
	return nil
}

func storeError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return withExitCode(ExitUsageError, err)
	}
	return withExitCode(ExitStoreError, err)
}
