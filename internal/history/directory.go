package history

import (
	"context"
	"fmt"
	"path"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// ResolveDirectory classifies a directory by resolving each file it held at the anchor.
// Without an anchor, the most recent revision in which the directory existed is used.
func (it *Resolver) ResolveDirectory(ctx context.Context, requested, anchor string) (entities.FileChange, error) {
	requested = strings.TrimSuffix(requested, "/")
	added := entities.FileChange{ChangeType: entities.ChangeTypeAdded, AfterPath: requested, Directory: true}

	current, err := it.repository.DirectoryContents(ctx, "", requested)
	if err != nil {
		return entities.FileChange{}, fmt.Errorf("failed to list %q at HEAD: %w", requested, err)
	}
	if len(current) > 0 {
		return added, nil
	}

	if anchor == "" {
		if anchor, err = it.repository.LatestRevisionWithPath(ctx, requested); err != nil {
			return entities.FileChange{}, fmt.Errorf("failed to find %q in history: %w", requested, err)
		}
		if anchor == "" {
			return entities.FileChange{}, entities.NewTrackingError(entities.ErrReferenceNeverExisted, requested, "")
		}
	}

	contents, err := it.repository.DirectoryContents(ctx, anchor, requested)
	if err != nil {
		return entities.FileChange{}, fmt.Errorf("failed to list %q at %s: %w", requested, anchor, err)
	}
	if len(contents) == 0 {
		return entities.FileChange{}, entities.NewTrackingError(entities.ErrReferenceNeverExisted, requested, "")
	}

	var moved []string
	deleted := 0
	for _, file := range contents {
		change, resolveErr := it.ResolveFile(ctx, file, "")
		if resolveErr != nil {
			return entities.FileChange{}, fmt.Errorf("failed to resolve %q inside %q: %w", file, requested, resolveErr)
		}
		switch change.ChangeType {
		case entities.ChangeTypeMoved:
			moved = append(moved, change.AfterPath)
		case entities.ChangeTypeDeleted:
			deleted++
		default:
		}
	}
	logger.Debugf("Directory %q: %d files, %d moved, %d deleted", requested, len(contents), len(moved), deleted)

	if deleted+len(moved) != len(contents) {
		return added, nil
	}

	parent, percentage := CommonParent(moved, len(contents))
	if parent != "" && percentage >= it.directoryThreshold {
		return entities.FileChange{ChangeType: entities.ChangeTypeMoved, AfterPath: parent, Directory: true}, nil
	}
	return entities.FileChange{ChangeType: entities.ChangeTypeDeleted, AfterPath: requested, Directory: true}, nil
}

// CommonParent finds the ancestor directory shared by most of the moved paths and the
// percentage of total it covers. Ties go to the deepest ancestor.
func CommonParent(moved []string, total int) (string, int) {
	if total == 0 {
		return "", 0
	}

	counts := make(map[string]int)
	for _, file := range moved {
		dir := path.Dir(file)
		if dir == "." || dir == "/" {
			continue
		}
		prefix := ""
		for _, segment := range strings.Split(dir, "/") {
			prefix += segment + "/"
			counts[prefix]++
		}
	}

	best, bestCount := "", 0
	for prefix, count := range counts {
		if count > bestCount || (count == bestCount && len(prefix) > len(best)) {
			best, bestCount = prefix, count
		}
	}
	if best == "" {
		return "", 0
	}
	return strings.TrimSuffix(best, "/"), bestCount * 100 / total
}
