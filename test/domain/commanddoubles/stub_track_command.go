//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/reftrack/internal/domain/commands"
	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// StubTrackCommand is a stub implementation of commands.Track.
type StubTrackCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           entities.TrackResult
	LastSettings     *entities.Settings
	LastReference    entities.Reference
}

var _ commands.Track = (*StubTrackCommand)(nil)

func (s *StubTrackCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	reference entities.Reference,
) (entities.TrackResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastReference = reference
	result := s.Result
	result.Reference = reference
	return result, s.ExecuteErr
}
