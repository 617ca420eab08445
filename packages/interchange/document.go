package interchange

import (
	"github.com/abdul-hamid-achik/karmarun/packages/core/env"
	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
)

// Document is the interchange shape of RunSettings
type Document struct {
	ConfigFile      string            `json:"configFile" yaml:"configFile"`
	Browsers        string            `json:"browsers,omitempty" yaml:"browsers,omitempty"`
	KarmaPackageDir *string           `json:"karmaPackageDir,omitempty" yaml:"karmaPackageDir,omitempty"`
	NodeInterpreter string            `json:"nodeInterpreter" yaml:"nodeInterpreter"`
	Envs            map[string]string `json:"envs,omitempty" yaml:"envs,omitempty"`
	PassParentEnvs  *bool             `json:"passParentEnvs,omitempty" yaml:"passParentEnvs,omitempty"`
	ScopeKind       *karma.ScopeKind  `json:"scopeKind,omitempty" yaml:"scopeKind,omitempty"`
	TestFilePath    string            `json:"testFilePath,omitempty" yaml:"testFilePath,omitempty"`
	TestNames       []string          `json:"testNames,omitempty" yaml:"testNames,omitempty"`
}

// FromSettings builds the interchange document for s
func FromSettings(s karma.RunSettings) Document {
	doc := Document{
		ConfigFile:      s.ConfigSystemIndependentPath(),
		Browsers:        s.Browsers(),
		NodeInterpreter: s.InterpreterRef().ReferenceName(),
	}
	if pkg, ok := s.KarmaPackage(); ok {
		dir := pkg.SystemIndependentPath()
		doc.KarmaPackageDir = &dir
	}

	envData := s.EnvData()
	if envs := envData.Envs(); len(envs) > 0 {
		doc.Envs = envs
	}
	if !envData.PassParentEnvs() {
		pass := false
		doc.PassParentEnvs = &pass
	}

	kind := s.ScopeKind()
	if kind != karma.ScopeAll {
		doc.ScopeKind = &kind
	}
	switch {
	case kind == karma.ScopeTestFile:
		doc.TestFilePath = s.TestFileSystemIndependentPath()
	case kind.UsesTestNames():
		doc.TestNames = s.TestNames()
	}
	return doc
}

// Settings converts the document back to RunSettings
func (d Document) Settings() karma.RunSettings {
	b := karma.NewBuilder().
		SetConfigPath(d.ConfigFile).
		SetBrowsers(d.Browsers).
		SetInterpreterRef(nodejs.NewInterpreterRef(d.NodeInterpreter))

	if d.KarmaPackageDir != nil {
		b.SetKarmaPackage(nodejs.NewPackage(*d.KarmaPackageDir))
	}

	pass := true
	if d.PassParentEnvs != nil {
		pass = *d.PassParentEnvs
	}
	b.SetEnvData(env.New(d.Envs, pass))

	kind := karma.ScopeAll
	if d.ScopeKind != nil {
		kind = *d.ScopeKind
	}
	b.SetScopeKind(kind)
	switch {
	case kind == karma.ScopeTestFile:
		b.SetTestFilePath(d.TestFilePath)
	case kind.UsesTestNames():
		b.SetTestNames(d.TestNames)
	}
	return b.Build()
}
