package history

import (
	"context"
	"fmt"
	"path"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/domain/repositories"
)

const (
	DefaultRenameScore        = 60
	DefaultDirectoryThreshold = 60
)

// Resolver classifies what happened to a path since an anchor revision.
type Resolver struct {
	repository         repositories.HistoryRepository
	renameScore        int
	directoryThreshold int
}

// NewResolver creates a Resolver; non-positive percentages fall back to 60.
func NewResolver(repository repositories.HistoryRepository, renameScore, directoryThreshold int) *Resolver {
	if renameScore <= 0 {
		renameScore = DefaultRenameScore
	}
	if directoryThreshold <= 0 {
		directoryThreshold = DefaultDirectoryThreshold
	}
	return &Resolver{
		repository:         repository,
		renameScore:        renameScore,
		directoryThreshold: directoryThreshold,
	}
}

// ResolveFile walks the change log of every file named like requested and classifies
// the fate of requested. An empty anchor means the whole history is searched.
func (it *Resolver) ResolveFile(ctx context.Context, requested, anchor string) (entities.FileChange, error) {
	lines, err := it.repository.ChangeLog(ctx, path.Base(requested), anchor, it.renameScore)
	if err != nil {
		return entities.FileChange{}, fmt.Errorf("failed to read change log of %q: %w", requested, err)
	}
	records, err := ParseChangeLog(lines)
	if err != nil {
		return entities.FileChange{}, err
	}
	logger.Debugf("Resolving %q over %d change records", requested, len(records))

	if len(records) > 0 {
		var change entities.FileChange
		var found bool
		if anchor != "" {
			change, found, err = it.resolveFromAnchor(ctx, records, requested, anchor)
		} else {
			change, found, err = it.resolveFromAdditions(records, requested)
		}
		if err != nil || found {
			return change, err
		}
	}
	return it.resolveOnDisk(ctx, requested, anchor)
}

func (it *Resolver) resolveFromAnchor(
	ctx context.Context,
	records []Record,
	requested, anchor string,
) (entities.FileChange, bool, error) {
	start := nextChange(records, 0, requested)
	if start < 0 {
		start = firstChangeAfterCommit(records)
	}
	if start < 0 {
		return entities.FileChange{}, false, nil
	}

	var hops []entities.HistoryHop
	exists, err := it.repository.FileExists(ctx, anchor, requested)
	if err != nil {
		return entities.FileChange{}, false, fmt.Errorf("failed to check %q at %s: %w", requested, anchor, err)
	}
	if exists {
		hops = append(hops, entities.HistoryHop{Revision: anchor, Path: requested})
	}
	return traverse(records, start, requested, hops)
}

// resolveFromAdditions tries every distinct addition of the name, most recent first,
// until one of them leads to the requested path.
func (it *Resolver) resolveFromAdditions(records []Record, requested string) (entities.FileChange, bool, error) {
	seen := make(map[string]bool)
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		if record.Kind != RecordChange || record.Letter != 'A' || seen[record.Raw] {
			continue
		}
		seen[record.Raw] = true

		change, found, err := traverse(records, i, requested, nil)
		if err != nil || found {
			return change, found, err
		}
	}
	return entities.FileChange{}, false, nil
}

func (it *Resolver) resolveOnDisk(ctx context.Context, requested, anchor string) (entities.FileChange, error) {
	exists, err := it.repository.WorkingTreeExists(ctx, requested)
	if err != nil {
		return entities.FileChange{}, fmt.Errorf("failed to check %q on disk: %w", requested, err)
	}
	if !exists {
		return entities.FileChange{}, entities.NewTrackingError(entities.ErrReferenceNeverExisted, requested, "")
	}

	revision := anchor
	if revision == "" {
		if revision, err = it.repository.HeadRevision(ctx); err != nil {
			return entities.FileChange{}, fmt.Errorf("failed to resolve HEAD: %w", err)
		}
	}
	logger.Debugf("%q has no usable history, reporting it as added at %s", requested, revision)
	return entities.FileChange{
		ChangeType:  entities.ChangeTypeAdded,
		AfterPath:   requested,
		HistoryHops: []entities.HistoryHop{{Revision: revision, Path: requested}},
	}, nil
}

// traverse follows the path of records[start] forward through the log. found is false
// when neither the walk nor its last record ever mentioned requested.
func traverse(
	records []Record,
	start int,
	requested string,
	hops []entities.HistoryHop,
) (entities.FileChange, bool, error) {
	found := false
	deletions := 0
	current := start
	hops = appendHop(hops, records, start)

	for {
		record := records[current]
		if record.Mentions(requested) {
			found = true
		}
		if found && record.IsDeletion() {
			deletions++
			break
		}

		next := nextChange(records, current+1, record.Target())
		if next < 0 {
			break
		}
		hops = appendHop(hops, records, next)
		current = next
	}

	last := records[current]
	if !found && !last.Mentions(requested) {
		return entities.FileChange{}, false, nil
	}

	change, err := classify(requested, last)
	if err != nil {
		return entities.FileChange{}, true, err
	}
	change.HistoryHops = hops
	change.DeletionsAndAdditionsCount = deletions
	return change, true, nil
}

// appendHop records where records[index] leaves the file, skipping deletions and repeats.
func appendHop(hops []entities.HistoryHop, records []Record, index int) []entities.HistoryHop {
	record := records[index]
	if record.IsDeletion() {
		return hops
	}
	revision := commitAbove(records, index)
	if revision == "" {
		return hops
	}
	hop := entities.HistoryHop{Revision: revision, Path: record.Target()}
	if len(hops) > 0 && hops[len(hops)-1] == hop {
		return hops
	}
	return append(hops, hop)
}

// nextChange returns the index of the first change record from index from that mentions target.
func nextChange(records []Record, from int, target string) int {
	for i := from; i < len(records); i++ {
		if records[i].Kind == RecordChange && records[i].Mentions(target) {
			return i
		}
	}
	return -1
}

// commitAbove returns the revision of the nearest commit marker before index.
func commitAbove(records []Record, index int) string {
	for i := index - 1; i >= 0; i-- {
		if records[i].Kind == RecordCommit {
			return records[i].Revision
		}
	}
	return ""
}

func firstChangeAfterCommit(records []Record) int {
	for i := 1; i < len(records); i++ {
		if records[i].Kind == RecordChange && records[i-1].Kind == RecordCommit {
			return i
		}
	}
	for i, record := range records {
		if record.Kind == RecordChange {
			return i
		}
	}
	return -1
}
