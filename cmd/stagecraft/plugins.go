package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the configured publish plugins",
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			printError(err)
			return err
		}

		manager, err := newSession(cfg, logger)
		if err != nil {
			printError(err)
			return err
		}
		_ = manager // session construction validates the plugin settings

		fmt.Fprintln(os.Stdout, titleStyle.Render("Configured Plugins"))
		fmt.Fprintf(os.Stdout, "  collector: %s\n", cfg.Collector.Hook)
		for _, pc := range cfg.Plugins {
			line := fmt.Sprintf("  %s (%s)", pc.Name, pc.Hook)
			if len(pc.Settings) > 0 {
				keys := make([]string, 0, len(pc.Settings))
				for k := range pc.Settings {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				line += dimStyle.Render(fmt.Sprintf("  settings: %s", strings.Join(keys, ", ")))
			}
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	},
}
