package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/karmarun/packages/core/config"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/abdul-hamid-achik/karmarun/packages/output"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag  string
	outputFlag  string
	noColorFlag bool
	verboseFlag bool

	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "karmarun",
	Short: "Read, write and store Karma run configurations.",
	Long: `karmarun works with Karma test run configurations as stored in IDE
workspace files (.idea/workspace.xml) and shared .run/*.run.xml files.
It can print, build, validate, convert and store them.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("KARMARUN_CONFIG", ""), "Path to config file (env: KARMARUN_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output format: console, json, yaml, xml (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("NO_COLOR", false), "Disable colored output (env: NO_COLOR)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show defaulted fields too")

	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(environCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(configFlag)
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("loading config: %w", err))
	}

	overrides := &config.Config{Output: outputFlag}
	if cmd.Flags().Changed("no-color") || noColorFlag {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	if verboseFlag {
		overrides.Verbose = config.BoolPtr(true)
	}
	cfg = loaded.Merge(overrides)
	return nil
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func newPrinter(cmd *cobra.Command) (output.Printer, error) {
	p, err := output.NewPrinter(cfg.Output, cmd.OutOrStdout(),
		output.WithVerbose(cfg.GetVerbose()),
		output.WithNoColor(cfg.GetNoColor()),
	)
	return p, withExitCode(ExitUsageError, err)
}

func newConsole(cmd *cobra.Command) *output.ConsolePrinter {
	return output.NewConsolePrinter(
		output.WithWriter(cmd.ErrOrStderr()),
		output.WithNoColor(cfg.GetNoColor()),
	)
}

// loadConfigurations reads a workspace/.run file, or every *.run.xml file of a directory
func loadConfigurations(path string) ([]workspace.Configuration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	if info.IsDir() {
		runDir := filepath.Join(path, ".run")
		if sub, err := os.Stat(runDir); err == nil && sub.IsDir() {
			path = runDir
		}
		configs, err := workspace.LoadDir(path)
		return configs, withExitCode(ExitParseError, err)
	}

	doc, err := workspace.Load(path)
	if err != nil {
		return nil, withExitCode(ExitParseError, err)
	}
	return doc.Configurations(), nil
}

func filterByName(configs []workspace.Configuration, name string) ([]workspace.Configuration, error) {
	if name == "" {
		return configs, nil
	}
	for _, c := range configs {
		if c.Name == name {
			return []workspace.Configuration{c}, nil
		}
	}
	return nil, fmt.Errorf("no Karma configuration named %q", name)
}
