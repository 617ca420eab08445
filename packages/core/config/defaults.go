package config

// DefaultStore is the store location used when none is configured
const DefaultStore = "sqlite://.karmarun/store.db"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		ProjectDir:         ".",
		Workspace:          ".idea/workspace.xml",
		Store:              DefaultStore,
		ProjectInterpreter: "",
		DefaultBrowsers:    "",
		Output:             "console",
		Verbose:            BoolPtr(false),
		NoColor:            BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.ProjectDir == defaults.ProjectDir &&
		c.Workspace == defaults.Workspace &&
		c.Store == defaults.Store &&
		c.ProjectInterpreter == defaults.ProjectInterpreter &&
		c.DefaultBrowsers == defaults.DefaultBrowsers &&
		c.Output == defaults.Output &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor()
}
