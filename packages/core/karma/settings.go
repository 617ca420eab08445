package karma

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
)

// RunSettings describes a Karma run. It is immutable; use NewBuilder or
// ToBuilder to derive new values.
type RunSettings struct {
	configPath     string
	browsers       string
	karmaPackage   *nodejs.Package
	interpreterRef nodejs.InterpreterRef
	envData        env.Data
	scopeKind      ScopeKind
	testFilePath   string
	testNames      []string
}

// ConfigPath returns the karma.conf.js path as stored
func (s RunSettings) ConfigPath() string { return s.configPath }

// ConfigSystemIndependentPath returns the config path with forward slashes
func (s RunSettings) ConfigSystemIndependentPath() string {
	return toSystemIndependent(s.configPath)
}

// Browsers returns the comma separated browser list, empty for the karma.conf.js default
func (s RunSettings) Browsers() string { return s.browsers }

// KarmaPackage returns the configured karma package, if any
func (s RunSettings) KarmaPackage() (nodejs.Package, bool) {
	if s.karmaPackage == nil {
		return nodejs.Package{}, false
	}
	return *s.karmaPackage, true
}

// InterpreterRef returns the interpreter reference. It is never unset.
func (s RunSettings) InterpreterRef() nodejs.InterpreterRef { return s.interpreterRef }

// EnvData returns the environment configuration
func (s RunSettings) EnvData() env.Data { return s.envData }

// ScopeKind returns which tests the run targets
func (s RunSettings) ScopeKind() ScopeKind { return s.scopeKind }

// TestFilePath returns the test file; only meaningful for ScopeTestFile
func (s RunSettings) TestFilePath() string { return s.testFilePath }

// TestFileSystemIndependentPath returns the test file path with forward slashes
func (s RunSettings) TestFileSystemIndependentPath() string {
	return toSystemIndependent(s.testFilePath)
}

// TestNames returns a copy of the suite/test name path; only meaningful for
// ScopeSuite and ScopeTest
func (s RunSettings) TestNames() []string {
	return slices.Clone(s.testNames)
}

// BrowserList splits Browsers on commas and whitespace
func (s RunSettings) BrowserList() []string {
	return strings.FieldsFunc(s.browsers, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// ToBuilder returns a builder initialised from s
func (s RunSettings) ToBuilder() *Builder {
	b := NewBuilder()
	b.s = s
	b.s.testNames = slices.Clone(s.testNames)
	return b
}

// Equal compares the observable fields of two settings values
func Equal(a, b RunSettings) bool {
	aPkg, aOK := a.KarmaPackage()
	bPkg, bOK := b.KarmaPackage()
	return a.configPath == b.configPath &&
		a.browsers == b.browsers &&
		aOK == bOK && aPkg == bPkg &&
		a.interpreterRef.ReferenceName() == b.interpreterRef.ReferenceName() &&
		a.envData.Equal(b.envData) &&
		a.scopeKind == b.scopeKind &&
		a.testFilePath == b.testFilePath &&
		slices.Equal(a.testNames, b.testNames)
}

// Builder assembles RunSettings
type Builder struct {
	s RunSettings
}

// NewBuilder returns a builder holding the defaults: project interpreter,
// default environment, ScopeAll and no test names.
func NewBuilder() *Builder {
	return &Builder{s: RunSettings{
		interpreterRef: nodejs.ProjectRef(),
		envData:        env.Default(),
		scopeKind:      ScopeAll,
		testNames:      []string{},
	}}
}

func (b *Builder) SetConfigPath(path string) *Builder {
	b.s.configPath = path
	return b
}

func (b *Builder) SetBrowsers(browsers string) *Builder {
	b.s.browsers = browsers
	return b
}

// SetKarmaPackage sets the package location
func (b *Builder) SetKarmaPackage(pkg nodejs.Package) *Builder {
	b.s.karmaPackage = &pkg
	return b
}

func (b *Builder) SetInterpreterRef(ref nodejs.InterpreterRef) *Builder {
	b.s.interpreterRef = ref
	return b
}

func (b *Builder) SetEnvData(data env.Data) *Builder {
	b.s.envData = data
	return b
}

func (b *Builder) SetScopeKind(kind ScopeKind) *Builder {
	b.s.scopeKind = kind
	return b
}

func (b *Builder) SetTestFilePath(path string) *Builder {
	b.s.testFilePath = path
	return b
}

// SetTestNames copies names; nil is stored as an empty list
func (b *Builder) SetTestNames(names []string) *Builder {
	if names == nil {
		names = []string{}
	}
	b.s.testNames = slices.Clone(names)
	return b
}

// Build returns the settings value. The builder can keep being used.
func (b *Builder) Build() RunSettings {
	s := b.s
	s.testNames = slices.Clone(b.s.testNames)
	if s.testNames == nil {
		s.testNames = []string{}
	}
	if s.karmaPackage != nil {
		pkg := *s.karmaPackage
		s.karmaPackage = &pkg
	}
	return s
}

func toSystemIndependent(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
}
