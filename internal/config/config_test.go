package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads yaml", func(t *testing.T) {
		path := writeConfig(t, "publish.yaml", `
version: v1
collector:
  hook: collect_files
  settings:
    Skip Hidden Files: false
plugins:
  - name: publish-files
    hook: publish_files
    settings:
      Publish Directory: /publishes
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "v1", cfg.Version)
		assert.Equal(t, "collect_files", cfg.Collector.Hook)
		assert.Equal(t, false, cfg.Collector.Settings["Skip Hidden Files"])
		require.Len(t, cfg.Plugins, 1)
		assert.Equal(t, "publish-files", cfg.Plugins[0].Name)
		assert.Equal(t, "/publishes", cfg.Plugins[0].Settings["Publish Directory"])
	})

	t.Run("loads toml", func(t *testing.T) {
		path := writeConfig(t, "publish.toml", `
version = "v1"

[collector]
hook = "collect_files"

[[plugins]]
name = "publish-files"
hook = "publish_files"

[plugins.settings]
"Publish Directory" = "/publishes"
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "collect_files", cfg.Collector.Hook)
		require.Len(t, cfg.Plugins, 1)
		assert.Equal(t, "/publishes", cfg.Plugins[0].Settings["Publish Directory"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/does/not/exist.yaml")
		assert.True(t, IsNotFound(err))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeConfig(t, "publish.ini", "version = v1")
		_, err := Load(path)
		var fe *FormatError
		assert.ErrorAs(t, err, &fe)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "publish.yaml", "version: [unclosed")
		_, err := Load(path)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Version:   "v1",
			Collector: CollectorConfig{Hook: "collect_files"},
			Plugins: []PluginConfig{
				{Name: "publish-files", Hook: "publish_files"},
			},
		}
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("requires a version", func(t *testing.T) {
		cfg := valid()
		cfg.Version = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-semver versions", func(t *testing.T) {
		cfg := valid()
		cfg.Version = "one"
		assert.Error(t, cfg.Validate())
	})

	t.Run("requires a collector hook", func(t *testing.T) {
		cfg := valid()
		cfg.Collector.Hook = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects duplicate plugin names", func(t *testing.T) {
		cfg := valid()
		cfg.Plugins = append(cfg.Plugins, PluginConfig{Name: "publish-files", Hook: "publish_files"})
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate")
	})

	t.Run("rejects unnamed plugins", func(t *testing.T) {
		cfg := valid()
		cfg.Plugins[0].Name = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestCheckRequires(t *testing.T) {
	t.Run("no pin always passes", func(t *testing.T) {
		cfg := &Config{}
		assert.NoError(t, cfg.CheckRequires("v0.1.0"))
	})

	t.Run("newer tool passes", func(t *testing.T) {
		cfg := &Config{Requires: "v0.2.0"}
		assert.NoError(t, cfg.CheckRequires("v0.3.0"))
	})

	t.Run("older tool fails", func(t *testing.T) {
		cfg := &Config{Requires: "v0.2.0"}
		err := cfg.CheckRequires("v0.1.0")
		var verr *VersionError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "v0.2.0", verr.Required)
	})

	t.Run("dev builds skip the pin", func(t *testing.T) {
		cfg := &Config{Requires: "v0.2.0"}
		assert.NoError(t, cfg.CheckRequires("dev"))
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "collect_files", cfg.Collector.Hook)
	require.Len(t, cfg.Plugins, 1)
	assert.Equal(t, "publish_files", cfg.Plugins[0].Hook)
}
