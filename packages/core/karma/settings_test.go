package karma

import (
	"testing"

	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
	"github.com/stretchr/testify/assert"
)

func TestBuilderDefaults(t *testing.T) {
	s := NewBuilder().Build()

	assert.Equal(t, "", s.ConfigPath())
	assert.Equal(t, "", s.Browsers())
	_, ok := s.KarmaPackage()
	assert.False(t, ok)
	assert.True(t, s.InterpreterRef().IsProjectRef())
	assert.True(t, s.EnvData().IsDefault())
	assert.Equal(t, ScopeAll, s.ScopeKind())
	assert.Equal(t, "", s.TestFilePath())
	assert.NotNil(t, s.TestNames())
	assert.Empty(t, s.TestNames())
}

func TestSettingsAreImmutable(t *testing.T) {
	names := []string{"suite", "test"}
	b := NewBuilder().SetScopeKind(ScopeTest).SetTestNames(names)
	s := b.Build()

	names[0] = "changed"
	assert.Equal(t, []string{"suite", "test"}, s.TestNames())

	got := s.TestNames()
	got[1] = "changed"
	assert.Equal(t, []string{"suite", "test"}, s.TestNames())

	b.SetTestNames([]string{"other"})
	assert.Equal(t, []string{"suite", "test"}, s.TestNames())
}

func TestToBuilder(t *testing.T) {
	s := NewBuilder().
		SetConfigPath("karma.conf.js").
		SetKarmaPackage(nodejs.NewPackage("/app/node_modules/karma")).
		Build()

	derived := s.ToBuilder().SetBrowsers("Firefox").Build()

	assert.Equal(t, "karma.conf.js", derived.ConfigPath())
	assert.Equal(t, "Firefox", derived.Browsers())
	_, ok := derived.KarmaPackage()
	assert.True(t, ok)
	assert.Equal(t, "", s.Browsers())
}

func TestBrowserList(t *testing.T) {
	s := NewBuilder().SetBrowsers("Chrome, Firefox  ChromeHeadless,").Build()
	assert.Equal(t, []string{"Chrome", "Firefox", "ChromeHeadless"}, s.BrowserList())
	assert.Empty(t, NewBuilder().Build().BrowserList())
}

func TestEqual(t *testing.T) {
	base := NewBuilder().
		SetConfigPath("karma.conf.js").
		SetEnvData(env.New(map[string]string{"CI": "1"}, true)).
		Build()

	assert.True(t, Equal(base, base.ToBuilder().Build()))
	assert.False(t, Equal(base, base.ToBuilder().SetEnvData(env.Default()).Build()))
	assert.False(t, Equal(base, base.ToBuilder().SetKarmaPackage(nodejs.NewPackage("")).Build()))
	assert.False(t, Equal(base, base.ToBuilder().SetInterpreterRef(nodejs.NewInterpreterRef("/bin/node")).Build()))
	assert.True(t, Equal(base, base.ToBuilder().SetInterpreterRef(nodejs.NewInterpreterRef("project")).Build()))
}
