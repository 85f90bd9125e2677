package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ReferenceKind tells which part of the repository a reference points to.
type ReferenceKind int

const (
	ReferenceFile ReferenceKind = iota
	ReferenceDirectory
	ReferenceLine
	ReferenceLines
)

func (it ReferenceKind) String() string {
	switch it {
	case ReferenceFile:
		return "file"
	case ReferenceDirectory:
		return "directory"
	case ReferenceLine:
		return "line"
	case ReferenceLines:
		return "lines"
	default:
		return "unknown"
	}
}

// referencePattern matches path, path#L3 and path#L3-L5.
var referencePattern = regexp.MustCompile(`^([^#]+?)(?:#L(\d+)(?:-L(\d+))?)?$`)

// Reference is a tracked piece of code: a file, a directory, a line or a range of lines.
// Start and End are 1-based and equal for a single line.
type Reference struct {
	Path     string
	Start    int
	End      int
	Revision string
	kind     ReferenceKind
}

// ParseReference parses path, dir/, path#L<n> and path#L<a>-L<b>.
func ParseReference(raw string) (Reference, error) {
	trimmed := strings.TrimSpace(raw)
	match := referencePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return Reference{}, NewTrackingError(ErrUnsupportedReference, raw, "expected path, dir/, path#L<n> or path#L<a>-L<b>")
	}

	ref := Reference{Path: match[1], kind: ReferenceFile}
	if strings.HasSuffix(ref.Path, "/") {
		if match[2] != "" {
			return Reference{}, NewTrackingError(ErrUnsupportedReference, raw, "a directory cannot carry a line number")
		}
		return NewDirectoryReference(ref.Path), nil
	}
	if match[2] == "" {
		return ref, nil
	}

	start, err := strconv.Atoi(match[2])
	if err != nil || start < 1 {
		return Reference{}, NewTrackingError(ErrUnsupportedReference, raw, "line numbers start at 1")
	}
	ref.Start, ref.End, ref.kind = start, start, ReferenceLine
	if match[3] == "" {
		return ref, nil
	}

	end, err := strconv.Atoi(match[3])
	if err != nil || end < start {
		return Reference{}, NewTrackingError(ErrUnsupportedReference, raw, "range end must not precede its start")
	}
	ref.End, ref.kind = end, ReferenceLines
	return ref, nil
}

// NewDirectoryReference creates a reference to a whole directory.
func NewDirectoryReference(path string) Reference {
	return Reference{Path: strings.TrimSuffix(path, "/"), kind: ReferenceDirectory}
}

// Kind returns what the reference points to.
func (it Reference) Kind() ReferenceKind {
	return it.kind
}

// LineNumbers returns every tracked line number, in order.
func (it Reference) LineNumbers() []int {
	if it.kind != ReferenceLine && it.kind != ReferenceLines {
		return nil
	}
	numbers := make([]int, 0, it.End-it.Start+1)
	for n := it.Start; n <= it.End; n++ {
		numbers = append(numbers, n)
	}
	return numbers
}

func (it Reference) String() string {
	switch it.kind {
	case ReferenceDirectory:
		return it.Path + "/"
	case ReferenceLine:
		return fmt.Sprintf("%s#L%d", it.Path, it.Start)
	case ReferenceLines:
		return fmt.Sprintf("%s#L%d-L%d", it.Path, it.Start, it.End)
	default:
		return it.Path
	}
}
