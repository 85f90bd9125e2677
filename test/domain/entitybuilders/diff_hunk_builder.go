//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// DiffHunkBuilder helps create test diff hunks with a fluent interface.
type DiffHunkBuilder struct {
	*testkit.BaseBuilder
	addedLines   []entities.Line
	deletedLines []entities.Line
}

// NewDiffHunkBuilder creates a builder for an empty hunk.
func NewDiffHunkBuilder() *DiffHunkBuilder {
	return &DiffHunkBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
	}
}

// WithAddedLines appends added lines.
func (b *DiffHunkBuilder) WithAddedLines(lines ...entities.Line) *DiffHunkBuilder {
	b.addedLines = append(b.addedLines, lines...)
	return b
}

// WithDeletedLines appends deleted lines.
func (b *DiffHunkBuilder) WithDeletedLines(lines ...entities.Line) *DiffHunkBuilder {
	b.deletedLines = append(b.deletedLines, lines...)
	return b
}

// Build creates the hunk (satisfies testkit.Builder interface).
func (b *DiffHunkBuilder) Build() interface{} {
	return b.BuildDiffHunk()
}

// BuildDiffHunk creates the hunk with a concrete return type.
func (b *DiffHunkBuilder) BuildDiffHunk() entities.DiffHunk {
	return entities.DiffHunk{
		AddedLines:   append([]entities.Line(nil), b.addedLines...),
		DeletedLines: append([]entities.Line(nil), b.deletedLines...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DiffHunkBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.addedLines = nil
	b.deletedLines = nil
	return b
}

// Clone creates a deep copy of the DiffHunkBuilder.
func (b *DiffHunkBuilder) Clone() testkit.Builder {
	return &DiffHunkBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		addedLines:   append([]entities.Line(nil), b.addedLines...),
		deletedLines: append([]entities.Line(nil), b.deletedLines...),
	}
}
