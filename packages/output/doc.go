// Package output provides printers for displaying run configurations.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: The interchange JSON document
//   - YAML: The interchange YAML document
//   - XML: The <configuration> element as stored in workspace files
package output
