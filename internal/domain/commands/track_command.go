package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	infraRepos "github.com/rios0rios0/reftrack/internal/infrastructure/repositories"
)

// Track is the interface for the track command (single reference).
type Track interface {
	Execute(ctx context.Context, settings *entities.Settings, reference entities.Reference) (entities.TrackResult, error)
}

// TrackCommand resolves one reference against the configured repository.
type TrackCommand struct {
	historyRegistry *infraRepos.HistoryRegistry
}

// NewTrackCommand creates a new TrackCommand.
func NewTrackCommand(historyRegistry *infraRepos.HistoryRegistry) *TrackCommand {
	return &TrackCommand{historyRegistry: historyRegistry}
}

// Execute tracks the reference. Failures specific to the reference are reported in
// the result; the returned error means the repository itself could not be opened.
func (it *TrackCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	reference entities.Reference,
) (entities.TrackResult, error) {
	repository, err := it.historyRegistry.Open(settings.Backend, settings.Repository)
	if err != nil {
		return entities.TrackResult{Reference: reference}, fmt.Errorf("failed to open history backend: %w", err)
	}

	result := newReferenceTracker(repository, settings).track(ctx, reference)
	if result.Err != nil {
		logger.Errorf("Failed to track %s: %v", reference, result.Err)
	} else {
		logger.Debugf("%s: %s -> %s", reference, result.Status(), result.AfterPath())
	}
	return result, nil
}
