//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// FileChangeBuilder helps create test file changes with a fluent interface.
type FileChangeBuilder struct {
	*testkit.BaseBuilder
	changeType entities.ChangeType
	afterPath  string
	hops       []entities.HistoryHop
	deletions  int
	directory  bool
}

// NewFileChangeBuilder creates a builder for a file added at README.md.
func NewFileChangeBuilder() *FileChangeBuilder {
	return &FileChangeBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		changeType:  entities.ChangeTypeAdded,
		afterPath:   "README.md",
	}
}

// WithChangeType sets the change type.
func (b *FileChangeBuilder) WithChangeType(changeType entities.ChangeType) *FileChangeBuilder {
	b.changeType = changeType
	return b
}

// WithAfterPath sets the resulting path.
func (b *FileChangeBuilder) WithAfterPath(path string) *FileChangeBuilder {
	b.afterPath = path
	return b
}

// WithHop appends a history hop.
func (b *FileChangeBuilder) WithHop(revision, path string) *FileChangeBuilder {
	b.hops = append(b.hops, entities.HistoryHop{Revision: revision, Path: path})
	return b
}

// WithDeletionsAndAdditions sets the deletion counter.
func (b *FileChangeBuilder) WithDeletionsAndAdditions(count int) *FileChangeBuilder {
	b.deletions = count
	return b
}

// AsDirectory marks the change as a directory result.
func (b *FileChangeBuilder) AsDirectory() *FileChangeBuilder {
	b.directory = true
	return b
}

// Build creates the file change (satisfies testkit.Builder interface).
func (b *FileChangeBuilder) Build() interface{} {
	return b.BuildFileChange()
}

// BuildFileChange creates the file change with a concrete return type.
func (b *FileChangeBuilder) BuildFileChange() entities.FileChange {
	return entities.FileChange{
		ChangeType:                 b.changeType,
		AfterPath:                  b.afterPath,
		HistoryHops:                append([]entities.HistoryHop(nil), b.hops...),
		DeletionsAndAdditionsCount: b.deletions,
		Directory:                  b.directory,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *FileChangeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.changeType = entities.ChangeTypeAdded
	b.afterPath = "README.md"
	b.hops = nil
	b.deletions = 0
	b.directory = false
	return b
}

// Clone creates a deep copy of the FileChangeBuilder.
func (b *FileChangeBuilder) Clone() testkit.Builder {
	return &FileChangeBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		changeType:  b.changeType,
		afterPath:   b.afterPath,
		hops:        append([]entities.HistoryHop(nil), b.hops...),
		deletions:   b.deletions,
		directory:   b.directory,
	}
}
