package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reftrack/internal/domain/commands"
	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// TrackController handles the "track" subcommand (single reference).
type TrackController struct {
	command commands.Track
}

// NewTrackController creates a new TrackController.
func NewTrackController(command commands.Track) *TrackController {
	return &TrackController{command: command}
}

// GetBind returns the Cobra command metadata for the track controller.
func (it *TrackController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "track <reference>",
		Short: "Find where a file, directory or line reference points today",
		Long: `Resolve a single reference against the history of the repository.

A reference is one of:
  path/to/file.go          a file
  path/to/dir/             a directory
  path/to/file.go#L12      a single line
  path/to/file.go#L12-L20  a range of lines

Use --revision to anchor the reference at the commit it was written against.`,
	}
}

// Execute tracks the reference given as the first argument.
func (it *TrackController) Execute(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		logger.Error("A reference is required, e.g. reftrack track main.go#L10")
		return
	}

	reference, err := entities.ParseReference(args[0])
	if err != nil {
		logger.Errorf("Invalid reference: %v", err)
		return
	}
	reference.Revision, _ = cmd.Flags().GetString("revision")

	settings, err := loadSettings(cmd, false)
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return
	}
	if repoDir, _ := cmd.Flags().GetString("repo"); repoDir != "" {
		settings.Repository = repoDir
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	result, err := it.command.Execute(context.Background(), settings, reference)
	if err != nil {
		logger.Errorf("Track failed: %v", err)
		return
	}

	output, _ := cmd.Flags().GetString("output")
	if printErr := printResults(cmd.OutOrStdout(), output, []entities.TrackResult{result}); printErr != nil {
		logger.Errorf("Failed to print result: %v", printErr)
	}
}

// AddFlags adds the track-specific flags to the given Cobra command.
func (it *TrackController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("revision", "", "Revision the reference was captured at (default: search the whole history)")
	cmd.Flags().String("repo", "", "Working tree to resolve the reference in (overrides the config file)")
}
