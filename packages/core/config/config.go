package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the karmarun configuration
type Config struct {
	ProjectDir         string `json:"projectDir,omitempty" yaml:"projectDir,omitempty" env:"KARMARUN_PROJECT_DIR"`
	Workspace          string `json:"workspace,omitempty" yaml:"workspace,omitempty" env:"KARMARUN_WORKSPACE"`
	Store              string `json:"store,omitempty" yaml:"store,omitempty" env:"KARMARUN_STORE"`
	ProjectInterpreter string `json:"projectInterpreter,omitempty" yaml:"projectInterpreter,omitempty" env:"KARMARUN_NODE"`
	DefaultBrowsers    string `json:"defaultBrowsers,omitempty" yaml:"defaultBrowsers,omitempty" env:"KARMARUN_BROWSERS"`
	Output             string `json:"output,omitempty" yaml:"output,omitempty" env:"KARMARUN_OUTPUT"`
	Verbose            *bool  `json:"verbose,omitempty" yaml:"verbose,omitempty" env:"KARMARUN_VERBOSE"`
	NoColor            *bool  `json:"noColor,omitempty" yaml:"noColor,omitempty" env:"KARMARUN_NO_COLOR"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".karmarun.json",
	"karmarun.json",
	".karmarun.yaml",
	"karmarun.yaml",
	".karmarun.yml",
}

// LoadConfig loads configuration from the specified path or searches for
// config files, then applies environment overrides
func LoadConfig(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = loadConfigFromFile(path)
	} else {
		cfg, err = FindAndLoadConfig(".")
	}
	if err != nil {
		return nil, err
	}

	overrides, err := FromEnv()
	if err != nil {
		return nil, err
	}
	return cfg.Merge(overrides), nil
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	return DefaultConfig(), nil
}

// FromEnv reads KARMARUN_* variables. Unset variables leave fields empty.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fileConfig := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, fileConfig)
	} else {
		err = json.Unmarshal(data, fileConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return DefaultConfig().Merge(fileConfig), nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.ProjectDir != "" {
		result.ProjectDir = other.ProjectDir
	}
	if other.Workspace != "" {
		result.Workspace = other.Workspace
	}
	if other.Store != "" {
		result.Store = other.Store
	}
	if other.ProjectInterpreter != "" {
		result.ProjectInterpreter = other.ProjectInterpreter
	}
	if other.DefaultBrowsers != "" {
		result.DefaultBrowsers = other.DefaultBrowsers
	}
	if other.Output != "" {
		result.Output = other.Output
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file, as YAML for .yaml/.yml paths
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
