package interchange

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"gopkg.in/yaml.v3"
)

// ToYAML encodes s as a YAML document
func ToYAML(s karma.RunSettings) ([]byte, error) {
	data, err := yaml.Marshal(FromSettings(s))
	if err != nil {
		return nil, fmt.Errorf("encoding run settings: %w", err)
	}
	return data, nil
}

// FromYAML decodes a YAML document. Unknown keys and scope kinds are errors;
// an empty document yields the default settings.
func FromYAML(data []byte) (karma.RunSettings, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return karma.RunSettings{}, fmt.Errorf("decoding run settings: %w", err)
	}
	return doc.Settings(), nil
}
