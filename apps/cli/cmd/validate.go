package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/abdul-hamid-achik/karmarun/packages/core/xmlnode"
	"github.com/spf13/cobra"
)

var validateStrictFlag bool

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Check Karma run configurations against the project",
	Long: `Validate Karma run configurations: unknown scope kinds, missing config and
test files, invalid karma packages and unresolvable node interpreters.

Examples:
  karmarun validate .idea/workspace.xml
  karmarun validate . --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrictFlag, "strict", false, "Treat warnings as failures")
}

type severity int

const (
	severityWarning severity = iota
	severityError
)

type problem struct {
	severity severity
	message  string
}

func validateCommand(cmd *cobra.Command, args []string) error {
	console := newConsole(cmd)
	resolver := env.NewMacroResolver(cfg.ProjectDir)

	failed := false
	for _, arg := range args {
		configs, err := loadConfigurations(arg)
		if err != nil {
			console.PrintError(err)
			failed = true
			continue
		}

		for _, c := range configs {
			problems := checkConfiguration(c, resolver, cfg.ProjectDir, cfg.ProjectInterpreter)
			if len(problems) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%s)\n", c.Name, arg)
				continue
			}
			for _, p := range problems {
				if p.severity == severityError {
					console.PrintError(fmt.Errorf("%s: %s", c.Name, p.message))
					failed = true
				} else {
					console.PrintWarning("%s: %s", c.Name, p.message)
					failed = failed || validateStrictFlag
				}
			}
		}
	}

	if failed {
		return withExitCode(ExitValidationFailure, fmt.Errorf("validation failed"))
	}
	return nil
}

func checkConfiguration(c workspace.Configuration, resolver *env.MacroResolver, projectDir, projectInterpreter string) []problem {
	var problems []problem
	add := func(sev severity, format string, args ...any) {
		problems = append(problems, problem{severity: sev, message: fmt.Sprintf(format, args...)})
	}
	s := c.Settings

	if c.Element != nil {
		if raw, ok := xmlnode.ReadCustomField(c.Element, karma.ScopeKindField); ok && raw != "" {
			if _, known := karma.ParseScopeKind(raw); !known {
				add(severityWarning, "unknown scope-kind %q, treated as ALL", raw)
			}
		}
	}

	if s.ConfigPath() == "" {
		add(severityError, "no config file set")
	} else if path := projectPath(resolver, projectDir, s.ConfigPath()); !fileExists(path) {
		add(severityError, "config file not found: %s", path)
	}

	if pkg, ok := s.KarmaPackage(); ok {
		expanded := projectPath(resolver, projectDir, pkg.SystemDependentPath())
		resolved := nodejs.NewPackage(expanded)
		if !resolved.IsValid() {
			add(severityError, "karma package is not valid: %s", expanded)
		} else if name, _ := resolved.Name(); name != "karma" {
			add(severityWarning, "package at %s is %q, not karma", expanded, name)
		}
	}

	if _, err := s.InterpreterRef().Resolve(projectInterpreter); err != nil {
		add(severityWarning, "%v", err)
	}

	switch kind := s.ScopeKind(); {
	case kind == karma.ScopeTestFile:
		if s.TestFilePath() == "" {
			add(severityError, "scope TEST_FILE without a test file")
		} else if path := projectPath(resolver, projectDir, s.TestFilePath()); !fileExists(path) {
			add(severityWarning, "test file not found: %s", path)
		}
	case kind.UsesTestNames():
		if len(s.TestNames()) == 0 {
			add(severityWarning, "scope %s without test names runs every test", kind)
		}
	}

	return problems
}

// projectPath expands macros and anchors relative paths at projectDir
func projectPath(resolver *env.MacroResolver, projectDir, path string) string {
	path = filepath.FromSlash(resolver.Expand(path))
	if !filepath.IsAbs(path) && projectDir != "" {
		path = filepath.Join(projectDir, path)
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
