package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stagecraft/internal/domain/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run [sources...]",
	Short: "Collect sources and publish them",
	Long: `Run the full pipeline over the given source paths: collect them into
items, attach the configured plugins, validate every work unit and, when
everything validates, publish and finalize.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		report, err := manager.Run(cmd.Context(), args)
		printReport(report)
		if err != nil {
			printError(err)
			return err
		}
		return nil
	},
}

// printReport renders the run summary.
func printReport(report *pipeline.Report) {
	if report == nil {
		return
	}

	fmt.Fprintln(os.Stdout, titleStyle.Render("Publish Summary"))
	fmt.Fprintf(os.Stdout, "  %s\n", dimStyle.Render(fmt.Sprintf("items: %d  units: %d  active: %d",
		report.ItemCount, report.UnitCount, report.AcceptedCount)))

	if len(report.Failures) > 0 {
		for _, f := range report.Failures {
			fmt.Fprintf(os.Stdout, "  %s %s\n", errorStyle.Render("✗"), f.Error())
		}
		return
	}

	fmt.Fprintf(os.Stdout, "  %s %d published\n", successStyle.Render("✓"), report.PublishedCount)
}
