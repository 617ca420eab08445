package env

import (
	"maps"
	"slices"
	"strconv"

	"github.com/abdul-hamid-achik/karmarun/packages/core/xmlnode"
)

const (
	envsElement    = "envs"
	envElement     = "env"
	nameAttr       = "name"
	valueAttr      = "value"
	passParentEnvs = "pass-parent-envs"
)

// Data is the environment configuration of a run: user-defined variables
// plus whether the parent process environment is inherited.
// Values are immutable; use New to build one.
type Data struct {
	envs           map[string]string
	passParentEnvs bool
}

// Default returns the configuration with no variables that inherits the parent environment
func Default() Data {
	return Data{envs: map[string]string{}, passParentEnvs: true}
}

// New copies envs into a new Data value. Variables with an empty name are
// dropped since they cannot be persisted.
func New(envs map[string]string, passParentEnvs bool) Data {
	copied := make(map[string]string, len(envs))
	for name, value := range envs {
		if name != "" {
			copied[name] = value
		}
	}
	return Data{envs: copied, passParentEnvs: passParentEnvs}
}

// Envs returns a copy of the configured variables
func (d Data) Envs() map[string]string {
	copied := make(map[string]string, len(d.envs))
	maps.Copy(copied, d.envs)
	return copied
}

// Names returns the variable names in sorted order
func (d Data) Names() []string {
	return slices.Sorted(maps.Keys(d.envs))
}

// PassParentEnvs reports whether the parent process environment is inherited
func (d Data) PassParentEnvs() bool {
	return d.passParentEnvs
}

// IsDefault reports whether d carries nothing worth persisting
func (d Data) IsDefault() bool {
	return len(d.envs) == 0 && d.passParentEnvs
}

// Equal compares two configurations
func (d Data) Equal(other Data) bool {
	return d.passParentEnvs == other.passParentEnvs && maps.Equal(d.envs, other.envs)
}

// ReadExternal reads the configuration stored on parent. Missing pieces fall
// back to the defaults: no variables, inherit the parent environment.
func ReadExternal(parent *xmlnode.Element) Data {
	data := Default()

	if envs := parent.Child(envsElement); envs != nil {
		for _, e := range envs.ChildrenNamed(envElement) {
			name, ok := e.Attr(nameAttr)
			if !ok || name == "" {
				continue
			}
			value, _ := e.Attr(valueAttr)
			data.envs[name] = value
		}
	}

	if raw, ok := xmlnode.ReadCustomField(parent, passParentEnvs); ok {
		if pass, err := strconv.ParseBool(raw); err == nil {
			data.passParentEnvs = pass
		}
	}

	return data
}

// WriteExternal stores d on parent. Variables are written sorted by name;
// pass-parent-envs is only written when it differs from the default.
func (d Data) WriteExternal(parent *xmlnode.Element) {
	if len(d.envs) > 0 {
		envs := xmlnode.NewElement(envsElement)
		for _, name := range d.Names() {
			envs.AddChild(xmlnode.NewElement(envElement).
				SetAttr(nameAttr, name).
				SetAttr(valueAttr, d.envs[name]))
		}
		parent.AddChild(envs)
	}
	if !d.passParentEnvs {
		xmlnode.WriteCustomField(parent, passParentEnvs, "false")
	}
}

// RemoveExternal deletes everything WriteExternal stores on parent
func RemoveExternal(parent *xmlnode.Element) {
	parent.RemoveChildren(envsElement)
	xmlnode.RemoveCustomFields(parent, passParentEnvs)
}
