package diffhunk

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

// Unified renders the unified diff between two versions of a file.
// It returns an empty string when both versions are equal.
func Unified(before, after, beforeName, afterName string, contextLines int) (string, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: beforeName,
		ToFile:   afterName,
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("failed to compute diff between %q and %q: %w", beforeName, afterName, err)
	}
	return text, nil
}

// Between diffs two versions of a file and parses the result in one step.
func (it *Processor) Between(before, after, beforeName, afterName string) (entities.DiffHunk, error) {
	text, err := Unified(before, after, beforeName, afterName, it.contextLines)
	if err != nil {
		return entities.DiffHunk{}, err
	}
	return it.Parse(text)
}

// splitLines splits content into newline-terminated lines without inventing a
// trailing empty line for content that already ends with a newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
