package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/abdul-hamid-achik/karmarun/packages/interchange"
	"github.com/spf13/cobra"
)

var (
	exportNameFlag      string
	exportFormatFlag    string
	importNameFlag      string
	importWorkspaceFlag string
)

var exportCmd = &cobra.Command{
	Use:   "export <file|directory>",
	Short: "Export a Karma run configuration as JSON or YAML",
	Long: `Export one configuration of a workspace or .run file as a JSON or YAML document.

Examples:
  karmarun export .idea/workspace.xml --name unit > unit.json
  karmarun export . --name unit --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: exportCommand,
}

var importCmd = &cobra.Command{
	Use:   "import <json|yaml file>",
	Short: "Import a JSON or YAML run configuration",
	Long: `Import a JSON or YAML document produced by export (JSON input is checked
against the run settings schema) and print its XML form or store it in a
workspace or .run file.

Examples:
  karmarun import unit.json --name unit
  karmarun import unit.yaml --name unit --workspace .run/unit.run.xml`,
	Args: cobra.ExactArgs(1),
	RunE: importCommand,
}

func init() {
	exportCmd.Flags().StringVarP(&exportNameFlag, "name", "n", "", "Configuration to export (required when the document holds several)")
	exportCmd.Flags().StringVarP(&exportFormatFlag, "format", "f", "json", "Document format: json, yaml")

	importCmd.Flags().StringVarP(&importNameFlag, "name", "n", "", "Configuration name (default: file name)")
	importCmd.Flags().StringVarP(&importWorkspaceFlag, "workspace", "w", "", "Store into this workspace or .run file instead of printing")
}

func exportCommand(cmd *cobra.Command, args []string) error {
	configs, err := loadConfigurations(args[0])
	if err != nil {
		return err
	}
	configs, err = filterByName(configs, exportNameFlag)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}
	switch len(configs) {
	case 0:
		return fmt.Errorf("no Karma configurations found in %s", args[0])
	case 1:
	default:
		return withExitCode(ExitUsageError, fmt.Errorf("%s holds %d configurations, pick one with --name", args[0], len(configs)))
	}

	var data []byte
	switch strings.ToLower(exportFormatFlag) {
	case "json":
		data, err = interchange.ToJSON(configs[0].Settings)
	case "yaml", "yml":
		data, err = interchange.ToYAML(configs[0].Settings)
	default:
		return withExitCode(ExitUsageError, fmt.Errorf("unknown format %q (want json or yaml)", exportFormatFlag))
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func importCommand(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var settings karma.RunSettings
	switch strings.ToLower(filepath.Ext(args[0])) {
	case ".yaml", ".yml":
		settings, err = interchange.FromYAML(data)
	default:
		settings, err = interchange.FromJSON(data)
	}
	if err != nil {
		return withExitCode(ExitParseError, err)
	}

	name := importNameFlag
	if name == "" {
		base := filepath.Base(args[0])
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if importWorkspaceFlag == "" {
		_, err := workspace.NewConfigurationElement(name, settings).WriteTo(cmd.OutOrStdout())
		return err
	}

	doc, err := openOrCreateDocument(importWorkspaceFlag)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}
	doc.Put(name, settings)
	if err := doc.Save(importWorkspaceFlag); err != nil {
		return err
	}
	newConsole(cmd).PrintOK("imported %q into %s", name, importWorkspaceFlag)
	return nil
}
