package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reftrack/internal/domain/commands"
	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// RunController handles the "run" subcommand (batch mode).
type RunController struct {
	command commands.Run
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Run) *RunController {
	return &RunController{command: command}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run",
		Short: "Track every reference listed in the config file",
		Long: `Resolve every reference listed under "references" in the
configuration file and report which of them must be rewritten.

A reference that cannot be resolved is reported and skipped;
the run always processes the whole list.`,
	}
}

// Execute runs the batch mode.
func (it *RunController) Execute(cmd *cobra.Command, _ []string) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	prefix, _ := cmd.Flags().GetString("prefix")
	output, _ := cmd.Flags().GetString("output")

	settings, err := loadSettings(cmd, true)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}

	logger.Info("Starting reftrack run...")

	results, err := it.command.Execute(context.Background(), settings, commands.RunOptions{
		Verbose:    verbose,
		PathPrefix: prefix,
	})
	if err != nil {
		logger.Errorf("Run failed: %v", err)
		return
	}

	if printErr := printResults(cmd.OutOrStdout(), output, results); printErr != nil {
		logger.Errorf("Failed to print results: %v", printErr)
	}
}

// AddFlags adds the run-specific flags to the given Cobra command.
func (it *RunController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("prefix", "", "Only track references whose path starts with this prefix")
}
