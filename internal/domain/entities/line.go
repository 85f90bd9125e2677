package entities

import (
	"fmt"
	"strings"
)

// Line is a single line of one version of a file.
// ContextLines holds the unchanged or changed neighbours of the line on the same
// side of a diff. Context lines never carry context of their own.
type Line struct {
	Number       int
	Content      string
	ContextLines []Line
}

// NewLine creates a line without context.
func NewLine(number int, content string) Line {
	return Line{Number: number, Content: content}
}

// WithContext returns a copy of the line carrying the given context.
// Nested context of the given lines is dropped.
func (it Line) WithContext(context []Line) Line {
	flat := make([]Line, 0, len(context))
	for _, l := range context {
		flat = append(flat, NewLine(l.Number, l.Content))
	}
	it.ContextLines = flat
	return it
}

// ContextContents returns the contents of the context lines in order.
func (it Line) ContextContents() []string {
	contents := make([]string, 0, len(it.ContextLines))
	for _, l := range it.ContextLines {
		contents = append(contents, l.Content)
	}
	return contents
}

// JoinedContext concatenates the context contents with the given separator.
func (it Line) JoinedContext(sep string) string {
	return strings.Join(it.ContextContents(), sep)
}

func (it Line) String() string {
	return fmt.Sprintf("(%d, %s)", it.Number, it.Content)
}

// DiffHunk groups the added and deleted lines produced by comparing two revisions of a file.
type DiffHunk struct {
	AddedLines   []Line
	DeletedLines []Line
}

// IsEmpty reports whether the hunk carries no change at all.
func (it DiffHunk) IsEmpty() bool {
	return len(it.AddedLines) == 0 && len(it.DeletedLines) == 0
}

// DeletedAt returns the deleted line with the given number, if any.
func (it DiffHunk) DeletedAt(number int) (Line, bool) {
	for _, l := range it.DeletedLines {
		if l.Number == number {
			return l, true
		}
	}
	return Line{}, false
}

// AddedAt returns the added line with the given number, if any.
func (it DiffHunk) AddedAt(number int) (Line, bool) {
	for _, l := range it.AddedLines {
		if l.Number == number {
			return l, true
		}
	}
	return Line{}, false
}
