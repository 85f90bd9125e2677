package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reftrack/internal/diffhunk"
	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/domain/repositories"
	"github.com/rios0rios0/reftrack/internal/history"
	"github.com/rios0rios0/reftrack/internal/linetracker"
)

// referenceTracker resolves references against one opened history backend.
type referenceTracker struct {
	repository repositories.HistoryRepository
	resolver   *history.Resolver
	processor  *diffhunk.Processor
	lines      *linetracker.Tracker
}

func newReferenceTracker(
	repository repositories.HistoryRepository,
	settings *entities.Settings,
) *referenceTracker {
	return &referenceTracker{
		repository: repository,
		resolver:   history.NewResolver(repository, settings.Similarity.File, settings.Similarity.Directory),
		processor:  diffhunk.NewProcessor(settings.Tracking.ContextLines),
		lines:      linetracker.NewTracker(linetracker.OptionsFrom(settings.Tracking)),
	}
}

func (it *referenceTracker) track(ctx context.Context, reference entities.Reference) entities.TrackResult {
	result := entities.TrackResult{Reference: reference}

	switch reference.Kind() {
	case entities.ReferenceDirectory:
		change, err := it.resolver.ResolveDirectory(ctx, reference.Path, reference.Revision)
		if err != nil {
			change = entities.NewInvalidFileChange(err)
			change.Directory = true
		}
		result.FileChange, result.Err = &change, err
	case entities.ReferenceLine:
		result.LineChange, result.Err = it.trackLine(ctx, reference)
	case entities.ReferenceLines:
		result.LinesChange, result.Err = it.trackLines(ctx, reference)
	default:
		change, err := it.resolver.ResolveFileWithWorktree(ctx, reference.Path, reference.Revision)
		if err != nil {
			change = entities.NewInvalidFileChange(err)
		}
		result.FileChange, result.Err = &change, err
	}
	return result
}

func (it *referenceTracker) trackLine(
	ctx context.Context,
	reference entities.Reference,
) (*entities.LineChange, error) {
	change, originals, hunks, err := it.prepare(ctx, reference)
	if err != nil {
		return &entities.LineChange{
			FileChange:     change,
			ChangeType:     entities.LineChangeInvalid,
			OriginalNumber: reference.Start,
			ErrorMessage:   err.Error(),
		}, err
	}

	original := originals[0]
	result := it.lines.TrackLine(original.Number, original.Content, hunks)
	lineChange := &entities.LineChange{
		FileChange:     change,
		ChangeType:     result.ChangeType,
		OriginalNumber: original.Number,
	}
	if result.ChangeType != entities.LineChangeDeleted {
		lineChange.NewLine = result.Line
	}
	logger.Debugf("%s: %s after %d modifications", reference, result.ChangeType, result.Modifications)
	return lineChange, nil
}

func (it *referenceTracker) trackLines(
	ctx context.Context,
	reference entities.Reference,
) (*entities.LinesChange, error) {
	change, originals, hunks, err := it.prepare(ctx, reference)
	if err != nil {
		return &entities.LinesChange{
			FileChange:   change,
			ChangeType:   entities.LinesChangeInvalid,
			ErrorMessage: err.Error(),
		}, err
	}

	result := it.lines.TrackLines(originals, hunks)
	return &entities.LinesChange{
		FileChange: change,
		ChangeType: result.ChangeType,
		NewLines:   result.Groups,
	}, nil
}

// prepare resolves the file of a line reference, reads the tracked lines at the first
// known revision and diffs every consecutive pair of history hops.
func (it *referenceTracker) prepare(
	ctx context.Context,
	reference entities.Reference,
) (entities.FileChange, []entities.Line, []entities.DiffHunk, error) {
	change, err := it.resolver.ResolveFileWithWorktree(ctx, reference.Path, reference.Revision)
	if err != nil {
		return entities.NewInvalidFileChange(err), nil, nil, err
	}
	if change.ChangeType == entities.ChangeTypeDeleted {
		err = entities.NewTrackingError(entities.ErrTargetDeletedUpstream, reference.String(), "")
		return change, nil, nil, err
	}
	if len(change.HistoryHops) == 0 {
		err = entities.NewTrackingError(entities.ErrContentUnavailable, reference.String(), "no revision to read from")
		return change, nil, nil, err
	}

	first := change.HistoryHops[0]
	content, err := it.content(ctx, first)
	if err != nil {
		err = entities.NewTrackingError(entities.ErrContentUnavailable, reference.String(), "").WithCause(err)
		return change, nil, nil, err
	}
	fileLines := splitContent(content)
	if reference.End > len(fileLines) {
		detail := fmt.Sprintf("line %d is past the %d lines of %s at %s", reference.End, len(fileLines), first.Path, first.Revision)
		return change, nil, nil, entities.NewTrackingError(entities.ErrContentUnavailable, reference.String(), detail)
	}

	numbers := reference.LineNumbers()
	originals := make([]entities.Line, 0, len(numbers))
	for _, number := range numbers {
		originals = append(originals, entities.NewLine(number, fileLines[number-1]))
	}

	hunks, err := it.hunks(ctx, change.HistoryHops)
	if err != nil {
		return change, nil, nil, err
	}
	return change, originals, hunks, nil
}

func (it *referenceTracker) hunks(ctx context.Context, hops []entities.HistoryHop) ([]entities.DiffHunk, error) {
	var hunks []entities.DiffHunk
	for i := 1; i < len(hops); i++ {
		before, err := it.content(ctx, hops[i-1])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s at %q: %w", hops[i-1].Path, hops[i-1].Revision, err)
		}
		after, err := it.content(ctx, hops[i])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s at %q: %w", hops[i].Path, hops[i].Revision, err)
		}
		if before == after {
			continue
		}

		hunk, err := it.processor.Between(before, after, "a/"+hops[i-1].Path, "b/"+hops[i].Path)
		if err != nil {
			return nil, err
		}
		if !hunk.IsEmpty() {
			hunks = append(hunks, hunk)
		}
	}
	return hunks, nil
}

func (it *referenceTracker) content(ctx context.Context, hop entities.HistoryHop) (string, error) {
	if hop.FromUncommittedState {
		return it.repository.WorkingTreeContent(ctx, hop.Path)
	}
	return it.repository.FileContent(ctx, hop.Revision, hop.Path)
}

func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
