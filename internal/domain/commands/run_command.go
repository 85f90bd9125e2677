package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	infraRepos "github.com/rios0rios0/reftrack/internal/infrastructure/repositories"
)

// Run is the interface for the run command (batch mode).
type Run interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RunOptions) ([]entities.TrackResult, error)
}

// RunOptions holds runtime options for a single run.
type RunOptions struct {
	Verbose    bool
	PathPrefix string // If set, only track references under this path
}

// RunCommand tracks every reference listed in the settings file.
type RunCommand struct {
	historyRegistry *infraRepos.HistoryRegistry
}

// NewRunCommand creates a new RunCommand with the given registry.
func NewRunCommand(historyRegistry *infraRepos.HistoryRegistry) *RunCommand {
	return &RunCommand{historyRegistry: historyRegistry}
}

// Execute tracks the configured references one by one. A reference that fails is
// logged, counted and kept in the results; it never stops the run.
func (it *RunCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	runOpts RunOptions,
) ([]entities.TrackResult, error) {
	if runOpts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	log := logger.WithField("run", uuid.NewString())

	repository, err := it.historyRegistry.Open(settings.Backend, settings.Repository)
	if err != nil {
		return nil, fmt.Errorf("failed to open history backend: %w", err)
	}
	tracker := newReferenceTracker(repository, settings)

	totalUpdates := 0
	totalErrors := 0
	results := make([]entities.TrackResult, 0, len(settings.References))

	for _, refCfg := range settings.References {
		if runOpts.PathPrefix != "" && !strings.HasPrefix(refCfg.Path, runOpts.PathPrefix) {
			continue
		}
		if err = ctx.Err(); err != nil {
			return results, err
		}

		reference, parseErr := entities.ParseReference(refCfg.Path)
		if parseErr != nil {
			log.Errorf("Skipping %q: %v", refCfg.Path, parseErr)
			invalid := entities.NewInvalidFileChange(parseErr)
			results = append(results, entities.TrackResult{FileChange: &invalid, Err: parseErr})
			totalErrors++
			continue
		}
		reference.Revision = refCfg.Revision

		result := tracker.track(ctx, reference)
		results = append(results, result)
		switch {
		case result.Err != nil:
			log.Errorf("Failed to track %s: %v", reference, result.Err)
			totalErrors++
		case result.RequiresUpdate():
			log.Infof("%s: %s -> %s", reference, result.Status(), result.AfterPath())
			totalUpdates++
		default:
			log.Debugf("%s: %s", reference, result.Status())
		}
	}

	log.Infof("%d references, %d require update, %d errors", len(results), totalUpdates, totalErrors)
	return results, nil
}
