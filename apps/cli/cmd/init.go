package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/karmarun/packages/core/config"
	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize karmarun in the current project",
	Long: `Initialize karmarun in the current directory.

This creates:
  - .karmarun.yaml     - Configuration file
  - .run/Karma.run.xml - Shared Karma run configuration using karma.conf.js

Examples:
  karmarun init
  karmarun init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".karmarun.yaml")
	runDir := filepath.Join(cwd, ".run")
	runFile := filepath.Join(runDir, "Karma"+workspace.RunFileSuffix)

	if !forceInit {
		for _, f := range []string{configFile, runFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	projectConfig := config.DefaultConfig()
	projectConfig.Workspace = filepath.Join(".run", "Karma"+workspace.RunFileSuffix)
	if err := projectConfig.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", runDir, err)
	}
	doc := workspace.New(workspace.SharedComponent)
	doc.Put("Karma", karma.NewBuilder().
		SetConfigPath("$PROJECT_DIR$/karma.conf.js").
		SetBrowsers(cfg.DefaultBrowsers).
		Build())
	if err := doc.Save(runFile); err != nil {
		return fmt.Errorf("failed to create run configuration: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", runFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nkarmarun project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'karmarun validate .' to check the configuration.\n")

	return nil
}
