// Package config handles configuration loading and management for karmarun.
//
// It provides functionality for:
//   - Loading configuration from .karmarun.json or .karmarun.yaml files
//   - Default configuration values
//   - KARMARUN_* environment variable overrides
package config
