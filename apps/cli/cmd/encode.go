package cmd

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/spf13/cobra"
)

// encodeOptions mirrors the encode flags
type encodeOptions struct {
	name         string
	configFile   string
	browsers     string
	karmaPackage string
	node         string
	envs         []string
	envFile      string
	envPrefix    string
	noParentEnv  bool
	scope        string
	testFile     string
	testNames    []string
	workspace    string
}

var encodeOpts encodeOptions

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a Karma run configuration from flags",
	Long: `Build a Karma run configuration and print its XML form, or store it in a
workspace or .run file.

Examples:
  karmarun encode --name unit --config-file '$PROJECT_DIR$/karma.conf.js'
  karmarun encode --name app --scope SUITE --test-name AppComponent --workspace .run/app.run.xml
  karmarun encode --name ci --browsers ChromeHeadless --env CI=true --env-file .env.test
  karmarun encode --name ci --env-prefix KARMA_ENV_`,
	Args: cobra.NoArgs,
	RunE: encodeCommand,
}

func init() {
	f := encodeCmd.Flags()
	f.StringVarP(&encodeOpts.name, "name", "n", "Karma", "Configuration name")
	f.StringVar(&encodeOpts.configFile, "config-file", "karma.conf.js", "Path to the karma config file")
	f.StringVar(&encodeOpts.browsers, "browsers", "", "Comma separated browsers (default from config)")
	f.StringVar(&encodeOpts.karmaPackage, "karma-package", "", "Directory of the karma package")
	f.StringVar(&encodeOpts.node, "node", "", "Node interpreter reference or path (default: project)")
	f.StringArrayVar(&encodeOpts.envs, "env", nil, "Environment variable KEY=VALUE (repeatable)")
	f.StringVar(&encodeOpts.envFile, "env-file", "", "Read environment variables from a .env file")
	f.StringVar(&encodeOpts.envPrefix, "env-prefix", "", "Copy variables starting with this prefix from the current environment (prefix stripped)")
	f.BoolVar(&encodeOpts.noParentEnv, "no-parent-env", false, "Do not inherit the parent environment")
	f.StringVar(&encodeOpts.scope, "scope", "ALL", "Scope kind: "+strings.Join(scopeNames(), ", "))
	f.StringVar(&encodeOpts.testFile, "test-file", "", "Test file for --scope TEST_FILE")
	f.StringArrayVar(&encodeOpts.testNames, "test-name", nil, "Suite/test name path element for --scope SUITE or TEST (repeatable)")
	f.StringVarP(&encodeOpts.workspace, "workspace", "w", "", "Store into this workspace or .run file instead of printing")

	_ = encodeCmd.RegisterFlagCompletionFunc("scope", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return scopeNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

func scopeNames() []string {
	var names []string
	for _, k := range karma.ScopeKinds() {
		names = append(names, k.String())
	}
	return names
}

func encodeCommand(cmd *cobra.Command, args []string) error {
	opts := encodeOpts
	if opts.browsers == "" {
		opts.browsers = cfg.DefaultBrowsers
	}

	settings, err := buildSettings(opts)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	if opts.workspace == "" {
		_, err := workspace.NewConfigurationElement(opts.name, settings).WriteTo(cmd.OutOrStdout())
		return err
	}

	doc, err := openOrCreateDocument(opts.workspace)
	if err != nil {
		return withExitCode(ExitParseError, err)
	}
	doc.Put(opts.name, settings)
	if err := doc.Save(opts.workspace); err != nil {
		return err
	}
	newConsole(cmd).PrintOK("saved %q to %s", opts.name, opts.workspace)
	return nil
}

func buildSettings(opts encodeOptions) (karma.RunSettings, error) {
	scope, ok := karma.ParseScopeKind(strings.ToUpper(opts.scope))
	if !ok {
		return karma.RunSettings{}, fmt.Errorf("unknown scope %q (want one of %s)", opts.scope, strings.Join(scopeNames(), ", "))
	}
	if scope == karma.ScopeTestFile && opts.testFile == "" {
		return karma.RunSettings{}, fmt.Errorf("--test-file is required for scope TEST_FILE")
	}

	envData := env.New(nil, !opts.noParentEnv)
	if opts.envFile != "" {
		loaded, err := env.FromDotEnv(opts.envFile, !opts.noParentEnv)
		if err != nil {
			return karma.RunSettings{}, err
		}
		envData = loaded
	}
	envs := envData.Envs()
	if opts.envPrefix != "" {
		maps.Copy(envs, env.SystemEnv(opts.envPrefix))
	}
	for _, pair := range opts.envs {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			return karma.RunSettings{}, fmt.Errorf("invalid --env %q, want KEY=VALUE", pair)
		}
		envs[strings.TrimSpace(key)] = value
	}

	b := karma.NewBuilder().
		SetConfigPath(opts.configFile).
		SetBrowsers(opts.browsers).
		SetInterpreterRef(nodejs.NewInterpreterRef(opts.node)).
		SetEnvData(env.New(envs, envData.PassParentEnvs())).
		SetScopeKind(scope)

	if opts.karmaPackage != "" {
		b.SetKarmaPackage(nodejs.NewPackage(opts.karmaPackage))
	}
	switch {
	case scope == karma.ScopeTestFile:
		b.SetTestFilePath(opts.testFile)
	case scope.UsesTestNames():
		b.SetTestNames(opts.testNames)
	}
	return b.Build(), nil
}

// openOrCreateDocument loads path, or starts a new document when it does not exist yet
func openOrCreateDocument(path string) (*workspace.Document, error) {
	doc, err := workspace.Load(path)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if strings.HasSuffix(path, workspace.RunFileSuffix) {
		return workspace.New(workspace.SharedComponent), nil
	}
	return workspace.New(workspace.RunManagerComponent), nil
}
