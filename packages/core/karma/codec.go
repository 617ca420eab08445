package karma

import (
	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
	"github.com/abdul-hamid-achik/karmarun/packages/core/xmlnode"
)

// Persisted field keys. Renaming any of them breaks stored configurations.
const (
	ConfigFileField      = "config-file"
	KarmaPackageDirField = "karma-package-dir"
	BrowsersField        = "browsers"
	NodeInterpreterField = "node-interpreter"
	ScopeKindField       = "scope-kind"
	TestFilePathField    = "test-file-path"
	TestNamesElement     = "test-names"
	TestNameElement      = "test-name"
)

// ReadXML decodes settings from el. It never fails: absent fields take their
// defaults and an unknown scope kind reads as ScopeAll.
func ReadXML(el *xmlnode.Element) RunSettings {
	b := NewBuilder()

	configPath, _ := xmlnode.ReadCustomField(el, ConfigFileField)
	b.SetConfigPath(configPath)

	browsers, _ := xmlnode.ReadCustomField(el, BrowsersField)
	b.SetBrowsers(browsers)

	if dir, ok := xmlnode.ReadCustomField(el, KarmaPackageDirField); ok {
		b.SetKarmaPackage(nodejs.NewPackage(dir))
	}

	interpreter, _ := xmlnode.ReadCustomField(el, NodeInterpreterField)
	b.SetInterpreterRef(nodejs.NewInterpreterRef(interpreter))

	b.SetEnvData(env.ReadExternal(el))

	scopeKind := readScopeKind(el)
	b.SetScopeKind(scopeKind)
	switch {
	case scopeKind == ScopeTestFile:
		testFile, _ := xmlnode.ReadCustomField(el, TestFilePathField)
		b.SetTestFilePath(testFile)
	case scopeKind.UsesTestNames():
		b.SetTestNames(readTestNames(el))
	}

	return b.Build()
}

func readScopeKind(el *xmlnode.Element) ScopeKind {
	value, _ := xmlnode.ReadCustomField(el, ScopeKindField)
	if value == "" {
		return ScopeAll
	}
	return ParseScopeKindOrDefault(value)
}

func readTestNames(el *xmlnode.Element) []string {
	names := el.Child(TestNamesElement)
	if names == nil {
		return []string{}
	}
	return xmlnode.ChildrenValueAttributes(names, TestNameElement)
}

// ClearXML removes every option and child element WriteXML owns, leaving
// anything else stored on el untouched. ClearXML followed by WriteXML
// updates a configuration in place.
func ClearXML(el *xmlnode.Element) {
	xmlnode.RemoveCustomFields(el,
		ConfigFileField,
		KarmaPackageDirField,
		BrowsersField,
		NodeInterpreterField,
		ScopeKindField,
		TestFilePathField,
	)
	el.RemoveChildren(TestNamesElement)
	env.RemoveExternal(el)
}

// WriteXML encodes s onto el, appending to whatever el already holds
func WriteXML(el *xmlnode.Element, s RunSettings) {
	xmlnode.WriteCustomField(el, ConfigFileField, s.ConfigSystemIndependentPath())
	if s.Browsers() != "" {
		xmlnode.WriteCustomField(el, BrowsersField, s.Browsers())
	}
	if pkg, ok := s.KarmaPackage(); ok {
		xmlnode.WriteCustomField(el, KarmaPackageDirField, pkg.SystemIndependentPath())
	}
	xmlnode.WriteCustomField(el, NodeInterpreterField, s.InterpreterRef().ReferenceName())
	s.EnvData().WriteExternal(el)

	scopeKind := s.ScopeKind()
	if scopeKind != ScopeAll {
		xmlnode.WriteCustomField(el, ScopeKindField, scopeKind.String())
	}
	switch {
	case scopeKind == ScopeTestFile:
		xmlnode.WriteCustomField(el, TestFilePathField, s.TestFileSystemIndependentPath())
	case scopeKind.UsesTestNames():
		// written even when empty
		names := xmlnode.NewElement(TestNamesElement)
		if len(s.testNames) > 0 {
			xmlnode.AddChildrenWithValueAttribute(names, TestNameElement, s.testNames)
		}
		el.AddChild(names)
	}
}
