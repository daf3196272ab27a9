package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a config file. The decoder is picked from the
// file extension: .yaml and .yml decode as YAML, .toml as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	default:
		return nil, &FormatError{Path: path}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
