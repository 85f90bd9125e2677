// Package diffhunk turns unified diff text into added and deleted lines annotated
// with their surrounding context.
package diffhunk

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// DefaultContextLines is the number of lines attached on each side of a changed line.
const DefaultContextLines = 3

// Processor parses unified diffs into DiffHunks.
type Processor struct {
	contextLines int
}

// NewProcessor creates a Processor attaching contextLines lines above and below every change.
func NewProcessor(contextLines int) *Processor {
	if contextLines < 0 {
		contextLines = DefaultContextLines
	}
	return &Processor{contextLines: contextLines}
}

// Parse reads the unified diff of a single file. The text may start with the
// "---"/"+++" file header (and git extended headers) or directly with a hunk header.
// An empty diff yields an empty hunk.
func (it *Processor) Parse(text string) (entities.DiffHunk, error) {
	if strings.TrimSpace(text) == "" {
		return entities.DiffHunk{}, nil
	}

	hunks, err := parseHunks([]byte(text))
	if err != nil {
		return entities.DiffHunk{}, err
	}

	s := newSides()
	for _, hunk := range hunks {
		s.consume(hunk)
	}

	return entities.DiffHunk{
		AddedLines:   attachContext(s.added, s.addedPool, it.contextLines),
		DeletedLines: attachContext(s.deleted, s.deletedPool, it.contextLines),
	}, nil
}

func parseHunks(data []byte) ([]*godiff.Hunk, error) {
	if bytes.HasPrefix(data, []byte("@@ ")) {
		hunks, err := godiff.ParseHunks(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse diff hunks: %w", err)
		}
		return hunks, nil
	}

	fileDiff, err := godiff.ParseFileDiff(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file diff: %w", err)
	}
	return fileDiff.Hunks, nil
}

// sides accumulates both versions of the file while walking hunk bodies.
// The pools hold every line seen on a side, changed or not.
type sides struct {
	added, deleted         []entities.Line
	addedPool, deletedPool []entities.Line
}

func newSides() *sides {
	return &sides{}
}

func (it *sides) consume(hunk *godiff.Hunk) {
	deletedNumber := int(hunk.OrigStartLine)
	addedNumber := int(hunk.NewStartLine)

	body := strings.TrimSuffix(string(hunk.Body), "\n")
	if body == "" {
		return
	}

	for _, raw := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(raw, "\\"):
			// "\ No newline at end of file"
			continue
		case strings.HasPrefix(raw, "+"):
			line := entities.NewLine(addedNumber, raw[1:])
			it.added = append(it.added, line)
			it.addedPool = append(it.addedPool, line)
			addedNumber++
		case strings.HasPrefix(raw, "-"):
			line := entities.NewLine(deletedNumber, raw[1:])
			it.deleted = append(it.deleted, line)
			it.deletedPool = append(it.deletedPool, line)
			deletedNumber++
		default:
			content := strings.TrimPrefix(raw, " ")
			it.deletedPool = append(it.deletedPool, entities.NewLine(deletedNumber, content))
			it.addedPool = append(it.addedPool, entities.NewLine(addedNumber, content))
			addedNumber++
			deletedNumber++
		}
	}
}

// attachContext gives every line the pool lines within window positions above and
// below it. Windows are clipped at the first line and at the last line of the pool.
func attachContext(lines, pool []entities.Line, window int) []entities.Line {
	if len(lines) == 0 {
		return nil
	}

	ordered := make([]entities.Line, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })
	maxNumber := ordered[len(ordered)-1].Number

	result := make([]entities.Line, 0, len(lines))
	for _, line := range lines {
		lower := max(0, line.Number-window)
		upper := min(line.Number+window, maxNumber)

		context := make([]entities.Line, 0, 2*window)
		for _, candidate := range ordered {
			if candidate.Number == line.Number {
				continue
			}
			if candidate.Number >= lower && candidate.Number <= upper {
				context = append(context, candidate)
			}
		}
		result = append(result, line.WithContext(context))
	}
	return result
}
