// Package cmd implements the karmarun CLI commands using Cobra.
//
// Available commands:
//   - decode: Print the Karma run configurations of a workspace or .run file
//   - list: List configuration names and scopes
//   - encode: Build a configuration from flags and print or store it
//   - validate: Check configurations against the local project
//   - store: Save, show, list and delete configurations in a SQLite store
//   - export/import: Convert configurations to and from JSON or YAML
//   - watch: Re-print configurations whenever their files change
//   - init: Create a config file and an example .run configuration
//   - version: Show karmarun version information
package cmd
