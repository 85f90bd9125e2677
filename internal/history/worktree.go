package history

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

const renameArrow = " -> "

// WorktreeChange classifies the uncommitted state of requested from status lines
// shaped like "XY path" or "XY old -> new". ok is false when the path is clean.
func WorktreeChange(requested string, statusLines []string) (entities.FileChange, bool) {
	for _, line := range statusLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !mentionsToken(trimmed, requested) {
			continue
		}

		change := entities.FileChange{AfterPath: requested}
		switch trimmed[0] {
		case '?', '!', 'C', 'A', 'U':
			change.ChangeType = entities.ChangeTypeAdded
		case 'R':
			_, target, found := strings.Cut(trimmed, renameArrow)
			target = strings.TrimSpace(target)
			if !found || target == requested {
				change.ChangeType = entities.ChangeTypeAdded
			} else {
				change.ChangeType = entities.ChangeTypeMoved
				change.AfterPath = target
			}
		case 'D':
			change.ChangeType = entities.ChangeTypeDeleted
		case 'M':
			change.ChangeType = entities.ChangeTypeModified
		default:
			continue
		}
		return change, true
	}
	return entities.FileChange{}, false
}

// ApplyWorktree folds the uncommitted state of the resolved path into a committed result.
// Renames and deletions override the committed classification; a modification keeps it
// and appends a working-copy hop so line tracking also diffs the uncommitted content.
func ApplyWorktree(change entities.FileChange, statusLines []string) entities.FileChange {
	if change.Directory || change.ChangeType == entities.ChangeTypeDeleted {
		return change
	}
	current, ok := WorktreeChange(change.AfterPath, statusLines)
	if !ok {
		return change
	}

	switch current.ChangeType {
	case entities.ChangeTypeDeleted:
		change.ChangeType = entities.ChangeTypeDeleted
	case entities.ChangeTypeMoved:
		change.ChangeType = entities.ChangeTypeMoved
		change.AfterPath = current.AfterPath
		change.HistoryHops = append(change.HistoryHops,
			entities.HistoryHop{Path: current.AfterPath, FromUncommittedState: true})
	case entities.ChangeTypeModified:
		change.HistoryHops = append(change.HistoryHops,
			entities.HistoryHop{Path: change.AfterPath, FromUncommittedState: true})
	default:
	}
	return change
}

// ResolveFileWithWorktree resolves a file and then applies its uncommitted state.
// A path that only exists in the working copy is reported as added there.
func (it *Resolver) ResolveFileWithWorktree(
	ctx context.Context,
	requested, anchor string,
) (entities.FileChange, error) {
	statusLines, err := it.repository.WorkingTreeStatus(ctx)
	if err != nil {
		logger.Warnf("Failed to read working tree status, ignoring uncommitted changes: %v", err)
		statusLines = nil
	}

	uncommitted, dirty := WorktreeChange(requested, statusLines)
	if dirty && uncommitted.ChangeType == entities.ChangeTypeAdded {
		return withUncommittedHop(uncommitted), nil
	}

	change, err := it.ResolveFile(ctx, requested, anchor)
	if err != nil {
		if dirty {
			logger.Debugf("History of %q failed (%v), using its working tree state", requested, err)
			return withUncommittedHop(uncommitted), nil
		}
		return entities.FileChange{}, err
	}
	return ApplyWorktree(change, statusLines), nil
}

func withUncommittedHop(change entities.FileChange) entities.FileChange {
	change.HistoryHops = []entities.HistoryHop{{Path: change.AfterPath, FromUncommittedState: true}}
	return change
}

func mentionsToken(line, requested string) bool {
	for _, token := range strings.Fields(line) {
		if token == requested {
			return true
		}
	}
	return false
}
