package entities

import (
	"fmt"
	"strings"
)

// LineChange is the outcome of tracking a single line.
// NewLine is the zero Line when the line was deleted.
type LineChange struct {
	FileChange FileChange
	ChangeType LineChangeType
	NewLine    Line
	// OriginalNumber is the line number the reference pointed to at the anchor revision.
	OriginalNumber int
	ErrorMessage   string
}

// AfterPath renders the new location as path#L<n>.
func (it LineChange) AfterPath() string {
	if it.ChangeType == LineChangeDeleted || it.ChangeType == LineChangeInvalid {
		return it.FileChange.AfterPath
	}
	return fmt.Sprintf("%s#L%d", it.FileChange.AfterPath, it.NewLine.Number)
}

// RequiresUpdate is true when either the line or its file moved or disappeared.
func (it LineChange) RequiresUpdate() bool {
	return it.ChangeType.RequiresUpdate() || it.FileChange.RequiresUpdate()
}

// LinesChange is the outcome of tracking a contiguous range of lines.
// NewLines holds maximal runs of consecutive line numbers, sorted and disjoint.
type LinesChange struct {
	FileChange   FileChange
	ChangeType   LinesChangeType
	NewLines     [][]Line
	ErrorMessage string
}

// AfterPath renders one path#L<a>-L<b> entry per group, comma separated.
func (it LinesChange) AfterPath() string {
	if len(it.NewLines) == 0 {
		return it.FileChange.AfterPath
	}
	parts := make([]string, 0, len(it.NewLines))
	for _, group := range it.NewLines {
		first, last := group[0].Number, group[len(group)-1].Number
		if first == last {
			parts = append(parts, fmt.Sprintf("%s#L%d", it.FileChange.AfterPath, first))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s#L%d-L%d", it.FileChange.AfterPath, first, last))
	}
	return strings.Join(parts, ", ")
}

// RequiresUpdate is true when either the range or its file moved or disappeared.
func (it LinesChange) RequiresUpdate() bool {
	return it.ChangeType.RequiresUpdate() || it.FileChange.RequiresUpdate()
}
