package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stagecraft/internal/domain/pipeline"
)

var validateCmd = &cobra.Command{
	Use:   "validate [sources...]",
	Short: "Collect sources and validate them without publishing",
	Long: `Run the pipeline up to and including validation. Nothing is copied or
registered; the command reports what a publish run would do and which work
units would fail.`,
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

		if err := manager.Collect(cmd.Context(), args); err != nil {
			printError(err)
			return err
		}

		err = manager.Validate(cmd.Context())

		var vf *pipeline.ValidationFailures
		switch {
		case err == nil:
			fmt.Fprintf(os.Stdout, "%s all work units valid\n", successStyle.Render("✓"))
			return nil
		case errors.As(err, &vf):
			for _, f := range vf.Failures {
				fmt.Fprintf(os.Stdout, "%s %s\n", errorStyle.Render("✗"), f.Error())
			}
			return err
		default:
			printError(err)
			return err
		}
	},
}
