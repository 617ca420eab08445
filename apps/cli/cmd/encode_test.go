package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSettings(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CHROME_BIN=/usr/bin/chromium\nCI=0\n"), 0644))

	s, err := buildSettings(encodeOptions{
		configFile:   "karma.conf.js",
		browsers:     "ChromeHeadless",
		karmaPackage: "node_modules/karma",
		node:         "/usr/bin/node",
		envs:         []string{"CI=1", "EMPTY="},
		envFile:      envFile,
		noParentEnv:  true,
		scope:        "suite",
		testFile:     "ignored.js",
		testNames:    []string{"App", "renders"},
	})
	require.NoError(t, err)

	assert.Equal(t, "karma.conf.js", s.ConfigPath())
	assert.Equal(t, "ChromeHeadless", s.Browsers())
	pkg, ok := s.KarmaPackage()
	require.True(t, ok)
	assert.Equal(t, "node_modules/karma", pkg.SystemIndependentPath())
	assert.Equal(t, "/usr/bin/node", s.InterpreterRef().ReferenceName())
	assert.Equal(t, map[string]string{"CHROME_BIN": "/usr/bin/chromium", "CI": "1", "EMPTY": ""}, s.EnvData().Envs())
	assert.False(t, s.EnvData().PassParentEnvs())
	assert.Equal(t, karma.ScopeSuite, s.ScopeKind())
	assert.Equal(t, "", s.TestFilePath())
	assert.Equal(t, []string{"App", "renders"}, s.TestNames())
}

func TestBuildSettingsEnvPrefix(t *testing.T) {
	t.Setenv("KARMARUN_TEST_ENV_CHROME_BIN", "/opt/chrome")
	t.Setenv("KARMARUN_TEST_ENV_CI", "from-env")

	s, err := buildSettings(encodeOptions{
		scope:     "ALL",
		envPrefix: "KARMARUN_TEST_ENV_",
		envs:      []string{"CI=flag"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"CHROME_BIN": "/opt/chrome", "CI": "flag"}, s.EnvData().Envs())
	assert.True(t, s.EnvData().PassParentEnvs())
}

func TestScopeNames(t *testing.T) {
	assert.Equal(t, []string{"ALL", "TEST_FILE", "SUITE", "TEST"}, scopeNames())
}

func TestBuildSettingsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts encodeOptions
	}{
		{name: "unknown scope", opts: encodeOptions{scope: "BOGUS"}},
		{name: "test file scope without file", opts: encodeOptions{scope: "TEST_FILE"}},
		{name: "bad env pair", opts: encodeOptions{scope: "ALL", envs: []string{"NOEQUALS"}}},
		{name: "empty env key", opts: encodeOptions{scope: "ALL", envs: []string{"=x"}}},
		{name: "missing env file", opts: encodeOptions{scope: "ALL", envFile: "/nonexistent/.env"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildSettings(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestBuildSettingsDefaults(t *testing.T) {
	s, err := buildSettings(encodeOptions{scope: "ALL"})
	require.NoError(t, err)
	assert.True(t, karma.Equal(karma.NewBuilder().Build(), s))
}

func TestOpenOrCreateDocument(t *testing.T) {
	dir := t.TempDir()

	doc, err := openOrCreateDocument(filepath.Join(dir, "unit.run.xml"))
	require.NoError(t, err)
	assert.Equal(t, "component", doc.Root().Name)
	name, _ := doc.Root().Attr("name")
	assert.Equal(t, workspace.SharedComponent, name)

	doc, err = openOrCreateDocument(filepath.Join(dir, "workspace.xml"))
	require.NoError(t, err)
	name, _ = doc.Root().Child("component").Attr("name")
	assert.Equal(t, workspace.RunManagerComponent, name)

	broken := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<project"), 0644))
	_, err = openOrCreateDocument(broken)
	assert.Error(t, err)
}
