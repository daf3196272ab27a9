// Package config loads the pipeline configuration: which collector to run,
// which publish plugin instances to create, and the raw settings each hook
// resolves against its schema.
package config

import (
	"golang.org/x/mod/semver"
)

// Config is the root configuration document.
type Config struct {
	// Version identifies the config schema version, e.g. "v1".
	Version string `yaml:"version" toml:"version"`

	// Requires optionally pins the minimum tool version this configuration
	// needs, as a semver string like "v0.3.0".
	Requires string `yaml:"requires,omitempty" toml:"requires,omitempty"`

	Collector CollectorConfig `yaml:"collector" toml:"collector"`
	Plugins   []PluginConfig  `yaml:"plugins" toml:"plugins"`
}

// CollectorConfig configures the collector instance.
type CollectorConfig struct {
	Hook     string                 `yaml:"hook" toml:"hook"`
	Settings map[string]interface{} `yaml:"settings,omitempty" toml:"settings,omitempty"`
}

// PluginConfig configures one publish plugin instance. Several instances may
// share a hook under different names and settings.
type PluginConfig struct {
	Name     string                 `yaml:"name" toml:"name"`
	Hook     string                 `yaml:"hook" toml:"hook"`
	Settings map[string]interface{} `yaml:"settings,omitempty" toml:"settings,omitempty"`
}

// Default returns the configuration used when no config file is given: the
// built-in file collector plus the built-in file publisher writing to
// ./publishes.
func Default() *Config {
	return &Config{
		Version: "v1",
		Collector: CollectorConfig{
			Hook: "collect_files",
		},
		Plugins: []PluginConfig{
			{
				Name: "publish-files",
				Hook: "publish_files",
				Settings: map[string]interface{}{
					"Publish Directory": "./publishes",
				},
			},
		},
	}
}

// Validate checks the document's internal consistency.
func (c *Config) Validate() error {
	ve := &ValidationError{}

	if c.Version == "" {
		ve.Addf("version is required")
	} else if !semver.IsValid(c.Version) {
		ve.Addf("version %q is not a valid semantic version", c.Version)
	}

	if c.Requires != "" && !semver.IsValid(c.Requires) {
		ve.Addf("requires %q is not a valid semantic version", c.Requires)
	}

	if c.Collector.Hook == "" {
		ve.Addf("collector.hook is required")
	}

	seen := make(map[string]bool, len(c.Plugins))
	for i, p := range c.Plugins {
		if p.Name == "" {
			ve.Addf("plugins[%d]: name is required", i)
		}
		if p.Hook == "" {
			ve.Addf("plugins[%d]: hook is required", i)
		}
		if p.Name != "" && seen[p.Name] {
			ve.Addf("plugins[%d]: duplicate plugin name %q", i, p.Name)
		}
		seen[p.Name] = true
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// CheckRequires verifies the running tool version satisfies the config's
// Requires pin. An empty pin always passes.
func (c *Config) CheckRequires(toolVersion string) error {
	if c.Requires == "" {
		return nil
	}
	if !semver.IsValid(toolVersion) {
		return nil
	}
	if semver.Compare(toolVersion, c.Requires) < 0 {
		return &VersionError{Required: c.Requires, Actual: toolVersion}
	}
	return nil
}
