package interchange

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// ValidationError lists every schema violation of an imported document
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid run settings document: " + strings.Join(e.Problems, "; ")
}

// ToJSON encodes s as an indented JSON document
func ToJSON(s karma.RunSettings) ([]byte, error) {
	data, err := json.MarshalIndent(FromSettings(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding run settings: %w", err)
	}
	return append(data, '\n'), nil
}

// Validate checks data against the run settings JSON schema
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating run settings document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, desc := range result.Errors() {
		verr.Problems = append(verr.Problems, desc.String())
	}
	return verr
}

// FromJSON validates and decodes a JSON document
func FromJSON(data []byte) (karma.RunSettings, error) {
	if err := Validate(data); err != nil {
		return karma.RunSettings{}, err
	}

	doc := gjson.ParseBytes(data)
	d := Document{
		ConfigFile:      doc.Get("configFile").String(),
		Browsers:        doc.Get("browsers").String(),
		NodeInterpreter: doc.Get("nodeInterpreter").String(),
		TestFilePath:    doc.Get("testFilePath").String(),
	}

	if v := doc.Get("karmaPackageDir"); v.Exists() {
		dir := v.String()
		d.KarmaPackageDir = &dir
	}
	if v := doc.Get("passParentEnvs"); v.Exists() {
		pass := v.Bool()
		d.PassParentEnvs = &pass
	}
	if v := doc.Get("scopeKind"); v.Exists() {
		// the schema restricts scopeKind to known names
		kind := karma.ParseScopeKindOrDefault(v.String())
		d.ScopeKind = &kind
	}

	envs := doc.Get("envs")
	if envs.Exists() {
		d.Envs = make(map[string]string)
		envs.ForEach(func(key, value gjson.Result) bool {
			d.Envs[key.String()] = value.String()
			return true
		})
	}

	if names := doc.Get("testNames"); names.Exists() {
		d.TestNames = []string{}
		for _, n := range names.Array() {
			d.TestNames = append(d.TestNames, n.String())
		}
	}

	return d.Settings(), nil
}
