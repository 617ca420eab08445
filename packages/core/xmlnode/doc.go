// Package xmlnode provides a small mutable XML element tree used as the
// persistence medium for run configurations.
//
// It provides:
//   - Element with ordered attributes, named children and text content
//   - Parsing from and writing to XML documents
//   - Custom field helpers storing scalars as <option name=".." value=".."/>
//   - Helpers for repeated child elements carrying a "value" attribute
package xmlnode
