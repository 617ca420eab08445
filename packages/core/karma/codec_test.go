package karma

import (
	"testing"

	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
	"github.com/abdul-hamid-achik/karmarun/packages/core/xmlnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(s RunSettings) *xmlnode.Element {
	el := xmlnode.NewElement("configuration")
	WriteXML(el, s)
	return el
}

func field(el *xmlnode.Element, key string) (string, bool) {
	return xmlnode.ReadCustomField(el, key)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		settings RunSettings
	}{
		{
			name:     "defaults",
			settings: NewBuilder().Build(),
		},
		{
			name: "everything set, test file scope",
			settings: NewBuilder().
				SetConfigPath("/work/app/karma.conf.js").
				SetBrowsers("Chrome,Firefox").
				SetKarmaPackage(nodejs.NewPackage("/work/app/node_modules/karma")).
				SetInterpreterRef(nodejs.NewInterpreterRef("/usr/bin/node")).
				SetEnvData(env.New(map[string]string{"CI": "true"}, false)).
				SetScopeKind(ScopeTestFile).
				SetTestFilePath("/work/app/src/app.spec.js").
				Build(),
		},
		{
			name: "suite scope",
			settings: NewBuilder().
				SetConfigPath("karma.conf.js").
				SetScopeKind(ScopeSuite).
				SetTestNames([]string{"alpha", "beta test"}).
				Build(),
		},
		{
			name: "test scope with no names",
			settings: NewBuilder().
				SetScopeKind(ScopeTest).
				Build(),
		},
		{
			name: "empty package path",
			settings: NewBuilder().
				SetKarmaPackage(nodejs.NewPackage("")).
				Build(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := encode(tt.settings)
			decoded := ReadXML(el)
			assert.True(t, Equal(tt.settings, decoded), "decoded %+v", decoded)

			// stable after a second pass
			again := encode(decoded)
			assert.Equal(t, el, again)
		})
	}
}

func TestRoundTripThroughText(t *testing.T) {
	s := NewBuilder().
		SetConfigPath("karma.conf.js").
		SetScopeKind(ScopeSuite).
		SetTestNames([]string{"alpha", "beta test", `quote "and" <angle>`}).
		Build()

	parsed, err := xmlnode.ParseString(encode(s).String())
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta test", `quote "and" <angle>`}, ReadXML(parsed).TestNames())
}

func TestWriteXMLDefaultsAreMinimal(t *testing.T) {
	el := encode(NewBuilder().SetConfigPath("karma.conf.js").Build())

	v, ok := field(el, ConfigFileField)
	assert.True(t, ok)
	assert.Equal(t, "karma.conf.js", v)

	v, ok = field(el, NodeInterpreterField)
	assert.True(t, ok)
	assert.Equal(t, "project", v)

	for _, key := range []string{BrowsersField, KarmaPackageDirField, ScopeKindField, TestFilePathField} {
		_, ok := field(el, key)
		assert.False(t, ok, key)
	}
	assert.Nil(t, el.Child(TestNamesElement))
	assert.Nil(t, el.Child("envs"))
	assert.Len(t, el.Children, 2)
}

func TestWriteXMLConfigFileAlwaysWritten(t *testing.T) {
	el := encode(NewBuilder().Build())
	v, ok := field(el, ConfigFileField)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestWriteXMLTestFileScope(t *testing.T) {
	el := encode(NewBuilder().
		SetScopeKind(ScopeTestFile).
		SetTestFilePath("src/a.spec.js").
		SetTestNames([]string{"ignored"}).
		Build())

	v, _ := field(el, ScopeKindField)
	assert.Equal(t, "TEST_FILE", v)
	v, _ = field(el, TestFilePathField)
	assert.Equal(t, "src/a.spec.js", v)
	assert.Nil(t, el.Child(TestNamesElement))
}

func TestWriteXMLNamesScopes(t *testing.T) {
	for _, kind := range []ScopeKind{ScopeSuite, ScopeTest} {
		t.Run(kind.String(), func(t *testing.T) {
			el := encode(NewBuilder().
				SetScopeKind(kind).
				SetTestFilePath("ignored.js").
				Build())

			_, ok := field(el, TestFilePathField)
			assert.False(t, ok)

			names := el.Child(TestNamesElement)
			require.NotNil(t, names)
			assert.Empty(t, names.Children)

			decoded := ReadXML(el)
			assert.NotNil(t, decoded.TestNames())
			assert.Empty(t, decoded.TestNames())
			assert.Equal(t, "", decoded.TestFilePath())
		})
	}
}

func TestWriteXMLAllScopeIgnoresInactiveFields(t *testing.T) {
	el := encode(NewBuilder().
		SetTestFilePath("a.js").
		SetTestNames([]string{"x"}).
		Build())

	_, ok := field(el, ScopeKindField)
	assert.False(t, ok)
	_, ok = field(el, TestFilePathField)
	assert.False(t, ok)
	assert.Nil(t, el.Child(TestNamesElement))
}

func TestReadXML(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		check func(t *testing.T, s RunSettings)
	}{
		{
			name: "empty element",
			doc:  `<configuration/>`,
			check: func(t *testing.T, s RunSettings) {
				assert.True(t, Equal(NewBuilder().Build(), s))
				assert.Equal(t, "project", s.InterpreterRef().ReferenceName())
			},
		},
		{
			name: "unknown scope kind falls back to all",
			doc: `<configuration>
  <option name="scope-kind" value="BOGUS"/>
  <option name="test-file-path" value="a.js"/>
  <test-names><test-name value="x"/></test-names>
</configuration>`,
			check: func(t *testing.T, s RunSettings) {
				assert.Equal(t, ScopeAll, s.ScopeKind())
				assert.Equal(t, "", s.TestFilePath())
				assert.Empty(t, s.TestNames())
			},
		},
		{
			name: "lower case scope kind is unknown",
			doc:  `<configuration><option name="scope-kind" value="suite"/></configuration>`,
			check: func(t *testing.T, s RunSettings) {
				assert.Equal(t, ScopeAll, s.ScopeKind())
			},
		},
		{
			name: "empty scope kind",
			doc:  `<configuration><option name="scope-kind" value=""/></configuration>`,
			check: func(t *testing.T, s RunSettings) {
				assert.Equal(t, ScopeAll, s.ScopeKind())
			},
		},
		{
			name: "suite without test-names element",
			doc:  `<configuration><option name="scope-kind" value="SUITE"/></configuration>`,
			check: func(t *testing.T, s RunSettings) {
				assert.Equal(t, ScopeSuite, s.ScopeKind())
				assert.NotNil(t, s.TestNames())
				assert.Empty(t, s.TestNames())
			},
		},
		{
			name: "test names in document order",
			doc: `<configuration>
  <option name="scope-kind" value="TEST"/>
  <test-names>
    <test-name value="outer"/>
    <other value="skip"/>
    <test-name value="inner test"/>
  </test-names>
</configuration>`,
			check: func(t *testing.T, s RunSettings) {
				assert.Equal(t, ScopeTest, s.ScopeKind())
				assert.Equal(t, []string{"outer", "inner test"}, s.TestNames())
			},
		},
		{
			name: "test file scope ignores names",
			doc: `<configuration>
  <option name="scope-kind" value="TEST_FILE"/>
  <option name="test-file-path" value="src/a.spec.js"/>
  <test-names><test-name value="x"/></test-names>
</configuration>`,
			check: func(t *testing.T, s RunSettings) {
				assert.Equal(t, "src/a.spec.js", s.TestFilePath())
				assert.Empty(t, s.TestNames())
			},
		},
		{
			name: "package absent",
			doc:  `<configuration><option name="config-file" value="k.js"/></configuration>`,
			check: func(t *testing.T, s RunSettings) {
				_, ok := s.KarmaPackage()
				assert.False(t, ok)
			},
		},
		{
			name: "package and interpreter",
			doc: `<configuration>
  <option name="karma-package-dir" value="/app/node_modules/karma"/>
  <option name="node-interpreter" value="/usr/bin/node"/>
  <option name="browsers" value="ChromeHeadless"/>
  <envs><env name="CI" value="1"/></envs>
</configuration>`,
			check: func(t *testing.T, s RunSettings) {
				pkg, ok := s.KarmaPackage()
				require.True(t, ok)
				assert.Equal(t, "/app/node_modules/karma", pkg.SystemIndependentPath())
				assert.Equal(t, "/usr/bin/node", s.InterpreterRef().ReferenceName())
				assert.Equal(t, "ChromeHeadless", s.Browsers())
				assert.Equal(t, map[string]string{"CI": "1"}, s.EnvData().Envs())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := xmlnode.ParseString(tt.doc)
			require.NoError(t, err)
			tt.check(t, ReadXML(el))
		})
	}
}

func TestClearXMLKeepsForeignContent(t *testing.T) {
	el, err := xmlnode.ParseString(`<configuration name="unit" folderName="web">
  <option name="config-file" value="old.conf.js"/>
  <option name="browsers" value="Chrome"/>
  <option name="scope-kind" value="SUITE"/>
  <option name="custom" value="kept"/>
  <envs>
    <env name="CI" value="1"/>
  </envs>
  <option name="pass-parent-envs" value="false"/>
  <test-names>
    <test-name value="App"/>
  </test-names>
  <method v="2"/>
</configuration>`)
	require.NoError(t, err)

	ClearXML(el)
	require.Len(t, el.Children, 2)
	custom, ok := xmlnode.ReadCustomField(el, "custom")
	assert.True(t, ok)
	assert.Equal(t, "kept", custom)
	assert.NotNil(t, el.Child("method"))
	assert.True(t, Equal(NewBuilder().Build(), ReadXML(el)))

	s := NewBuilder().
		SetConfigPath("new.conf.js").
		SetEnvData(env.New(map[string]string{"A": "b"}, true)).
		SetScopeKind(ScopeTest).
		SetTestNames([]string{"App", "renders"}).
		Build()
	WriteXML(el, s)
	assert.True(t, Equal(s, ReadXML(el)))
	folder, _ := el.Attr("folderName")
	assert.Equal(t, "web", folder)
}
