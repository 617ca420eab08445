package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/abdul-hamid-achik/karmarun/packages/core/xmlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project lays out a minimal karma project and returns its directory and node path
func project(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "karma.conf.js"), []byte("module.exports = () => {}\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "karma"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "karma", "package.json"), []byte(`{"name":"karma","version":"6.4.2"}`), 0644))
	node := filepath.Join(dir, "node")
	require.NoError(t, os.WriteFile(node, []byte("#!/bin/sh\n"), 0755))
	return dir, node
}

func messages(problems []problem) string {
	var parts []string
	for _, p := range problems {
		parts = append(parts, p.message)
	}
	return strings.Join(parts, "\n")
}

func TestCheckConfigurationValid(t *testing.T) {
	dir, node := project(t)
	resolver := env.NewMacroResolver(dir)

	s := karma.NewBuilder().
		SetConfigPath("$PROJECT_DIR$/karma.conf.js").
		SetKarmaPackage(nodejs.NewPackage("node_modules/karma")).
		Build()
	el := workspace.NewConfigurationElement("unit", s)

	problems := checkConfiguration(workspace.Configuration{Name: "unit", Settings: s, Element: el}, resolver, dir, node)
	assert.Empty(t, problems, messages(problems))
}

func TestCheckConfigurationProblems(t *testing.T) {
	dir, node := project(t)
	resolver := env.NewMacroResolver(dir)

	el, err := xmlnode.ParseString(`<configuration name="bad" type="JavaScriptTestRunnerKarma">
  <option name="config-file" value="missing.conf.js"/>
  <option name="karma-package-dir" value="node_modules/nope"/>
  <option name="scope-kind" value="Suite"/>
</configuration>`)
	require.NoError(t, err)
	c := workspace.Configuration{Name: "bad", Settings: karma.ReadXML(el), Element: el}

	problems := checkConfiguration(c, resolver, dir, node)
	out := messages(problems)
	assert.Contains(t, out, `unknown scope-kind "Suite"`)
	assert.Contains(t, out, "config file not found")
	assert.Contains(t, out, "karma package is not valid")
}

func TestCheckConfigurationWrongPackage(t *testing.T) {
	dir, node := project(t)
	resolver := env.NewMacroResolver(dir)
	other := filepath.Join(dir, "node_modules", "jasmine")
	require.NoError(t, os.MkdirAll(other, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(other, "package.json"), []byte(`{"name":"jasmine","version":"5.1.0"}`), 0644))

	s := karma.NewBuilder().
		SetConfigPath("karma.conf.js").
		SetKarmaPackage(nodejs.NewPackage("$PROJECT_DIR$/node_modules/jasmine")).
		Build()

	problems := checkConfiguration(workspace.Configuration{Name: "unit", Settings: s}, resolver, dir, node)
	require.Len(t, problems, 1, messages(problems))
	assert.Equal(t, severityWarning, problems[0].severity)
	assert.Contains(t, problems[0].message, `is "jasmine", not karma`)
}

func TestCheckConfigurationScopes(t *testing.T) {
	dir, node := project(t)
	resolver := env.NewMacroResolver(dir)
	base := karma.NewBuilder().SetConfigPath("karma.conf.js")

	tests := []struct {
		name     string
		settings karma.RunSettings
		want     string
		severity severity
	}{
		{
			name:     "missing config path",
			settings: karma.NewBuilder().Build(),
			want:     "no config file set",
			severity: severityError,
		},
		{
			name:     "test file missing",
			settings: base.SetScopeKind(karma.ScopeTestFile).SetTestFilePath("src/nope.spec.js").Build(),
			want:     "test file not found",
			severity: severityWarning,
		},
		{
			name:     "suite without names",
			settings: karma.NewBuilder().SetConfigPath("karma.conf.js").SetScopeKind(karma.ScopeTest).Build(),
			want:     "without test names",
			severity: severityWarning,
		},
		{
			name:     "unresolvable interpreter",
			settings: karma.NewBuilder().SetConfigPath("karma.conf.js").SetInterpreterRef(nodejs.NewInterpreterRef(filepath.Join(dir, "missing-node"))).Build(),
			want:     "unresolved node interpreter",
			severity: severityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := checkConfiguration(workspace.Configuration{Name: tt.name, Settings: tt.settings}, resolver, dir, node)
			require.Len(t, problems, 1, messages(problems))
			assert.Contains(t, problems[0].message, tt.want)
			assert.Equal(t, tt.severity, problems[0].severity)
		})
	}
}

func TestSqliteDir(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{location: "sqlite://.karmarun/store.db", want: ".karmarun"},
		{location: "sqlite:data/a/b.db", want: filepath.Join("data", "a")},
		{location: "store.db", want: ""},
		{location: "sqlite::memory:", want: ""},
		{location: ":memory:", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDir(tt.location))
		})
	}
}

func TestDescribeScope(t *testing.T) {
	assert.Equal(t, "ALL", describeScope(karma.NewBuilder().Build()))
	assert.Equal(t, "TEST_FILE a.js", describeScope(karma.NewBuilder().SetScopeKind(karma.ScopeTestFile).SetTestFilePath("a.js").Build()))
	assert.Equal(t, "SUITE [App]", describeScope(karma.NewBuilder().SetScopeKind(karma.ScopeSuite).SetTestNames([]string{"App"}).Build()))
	assert.Equal(t, "TEST", describeScope(karma.NewBuilder().SetScopeKind(karma.ScopeTest).Build()))
}

func TestFilterByName(t *testing.T) {
	configs := []workspace.Configuration{{Name: "a"}, {Name: "b"}}

	all, err := filterByName(configs, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := filterByName(configs, "b")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "b", one[0].Name)

	_, err = filterByName(configs, "c")
	assert.Error(t, err)
}
