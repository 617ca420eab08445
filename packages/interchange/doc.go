// Package interchange converts run settings to and from JSON and YAML
// documents for use outside the XML workspace files.
//
// Imported JSON is validated against an embedded JSON schema before it is
// read. As with the XML form, scope fields that the scope kind does not use
// are omitted on export and ignored on import.
package interchange
