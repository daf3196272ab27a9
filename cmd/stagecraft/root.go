package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stagecraft/internal/adapters/fs"
	"github.com/felixgeelhaar/stagecraft/internal/adapters/logging"
	"github.com/felixgeelhaar/stagecraft/internal/config"
	"github.com/felixgeelhaar/stagecraft/internal/domain/pipeline"
	"github.com/felixgeelhaar/stagecraft/internal/domain/plugin"
	"github.com/felixgeelhaar/stagecraft/internal/plugins/basic"
	"github.com/felixgeelhaar/stagecraft/internal/ports"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "stagecraft",
	Short: "A plugin-driven file publisher",
	Long: `Stagecraft collects files into a typed item tree and runs configured
publish plugins over them:

  Collect → Accept → Validate → Publish → Finalize

Each plugin decides per item whether it applies, checks the item is
publishable, and then performs its publish and cleanup steps.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "emit log lines as JSON")

	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(pluginsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the CLI logger from the global flags.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonLog),
	)
}

// loadConfig resolves the effective configuration: the --config file when
// given, the built-in default otherwise.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckRequires(version); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession builds a pipeline manager from the configuration, wiring the
// configured hook names to the built-in hook implementations.
func newSession(cfg *config.Config, logger ports.Logger) (*pipeline.Manager, error) {
	fsys := fs.New()

	collectorHooks := map[string]plugin.CollectorHook{
		"collect_files": basic.NewFileCollector(fsys),
	}
	publishHooks := map[string]plugin.PublishHook{
		"publish_files": basic.NewPublishFiles(fsys),
	}

	collectorHook, ok := collectorHooks[cfg.Collector.Hook]
	if !ok {
		return nil, fmt.Errorf("unknown collector hook %q", cfg.Collector.Hook)
	}
	collector, err := plugin.NewCollector(cfg.Collector.Hook, collectorHook, cfg.Collector.Settings, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to configure collector: %w", err)
	}

	registry := plugin.NewRegistry()
	for _, pc := range cfg.Plugins {
		hook, ok := publishHooks[pc.Hook]
		if !ok {
			return nil, fmt.Errorf("unknown publish hook %q for plugin %q", pc.Hook, pc.Name)
		}
		p, err := plugin.New(pc.Name, hook, pc.Settings, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to configure plugin %q: %w", pc.Name, err)
		}
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}

	return pipeline.NewManager(collector, registry, logger)
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", err.Error())
}
