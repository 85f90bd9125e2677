//go:build unit

package diffhunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reftrack/internal/diffhunk"
	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

func numbers(lines []entities.Line) []int {
	result := make([]int, 0, len(lines))
	for _, l := range lines {
		result = append(result, l.Number)
	}
	return result
}

func TestProcessorParse(t *testing.T) {
	t.Parallel()

	t.Run("should return an empty hunk for an empty diff", func(t *testing.T) {
		t.Parallel()

		// given
		processor := diffhunk.NewProcessor(3)

		// when
		hunk, err := processor.Parse("")

		// then
		require.NoError(t, err)
		assert.True(t, hunk.IsEmpty())
	})

	t.Run("should classify added and deleted lines with running numbers", func(t *testing.T) {
		t.Parallel()

		// given
		text := "--- a/main.go\n" +
			"+++ b/main.go\n" +
			"@@ -1,3 +1,3 @@\n" +
			" a\n" +
			"-b\n" +
			"+x\n" +
			" c\n" +
			"@@ -5 +5,2 @@\n" +
			" e\n" +
			"+f\n"
		processor := diffhunk.NewProcessor(3)

		// when
		hunk, err := processor.Parse(text)

		// then
		require.NoError(t, err)
		require.Len(t, hunk.DeletedLines, 1)
		require.Len(t, hunk.AddedLines, 2)
		assert.Equal(t, entities.NewLine(2, "b").Number, hunk.DeletedLines[0].Number)
		assert.Equal(t, "b", hunk.DeletedLines[0].Content)
		assert.Equal(t, []int{2, 6}, numbers(hunk.AddedLines))
		assert.Equal(t, "x", hunk.AddedLines[0].Content)
		assert.Equal(t, "f", hunk.AddedLines[1].Content)
	})

	t.Run("should accept a diff starting at the hunk header", func(t *testing.T) {
		t.Parallel()

		// given
		text := "@@ -10,2 +10,2 @@\n" +
			" keep\n" +
			"-old\n" +
			"+new\n"
		processor := diffhunk.NewProcessor(3)

		// when
		hunk, err := processor.Parse(text)

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{11}, numbers(hunk.DeletedLines))
		assert.Equal(t, []int{11}, numbers(hunk.AddedLines))
	})

	t.Run("should attach context drawn from the same side only", func(t *testing.T) {
		t.Parallel()

		// given
		text := "@@ -1,3 +1,3 @@\n" +
			" a\n" +
			"-b\n" +
			"+x\n" +
			" c\n"
		processor := diffhunk.NewProcessor(3)

		// when
		hunk, err := processor.Parse(text)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, hunk.DeletedLines[0].ContextContents())
		assert.Equal(t, []string{"a", "c"}, hunk.AddedLines[0].ContextContents())
		assert.Equal(t, []int{1, 3}, numbers(hunk.AddedLines[0].ContextLines))
	})

	t.Run("should clip context windows at the file boundaries", func(t *testing.T) {
		t.Parallel()

		// given
		text := "@@ -1,4 +1,4 @@\n" +
			"-first\n" +
			"+FIRST\n" +
			" two\n" +
			" three\n" +
			" four\n"
		processor := diffhunk.NewProcessor(2)

		// when
		hunk, err := processor.Parse(text)

		// then
		require.NoError(t, err)
		context := hunk.AddedLines[0].ContextLines
		assert.LessOrEqual(t, len(context), 2)
		assert.Equal(t, []int{2, 3}, numbers(context))
		for _, l := range context {
			assert.Empty(t, l.ContextLines)
		}
	})

	t.Run("should include neighbouring changed lines in the context", func(t *testing.T) {
		t.Parallel()

		// given
		text := "@@ -1,2 +1,3 @@\n" +
			" a\n" +
			"-b\n" +
			"+x\n" +
			"+y\n"
		processor := diffhunk.NewProcessor(1)

		// when
		hunk, err := processor.Parse(text)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "y"}, hunk.AddedLines[0].ContextContents())
		assert.Equal(t, []string{"x"}, hunk.AddedLines[1].ContextContents())
	})

	t.Run("should skip the no-newline marker", func(t *testing.T) {
		t.Parallel()

		// given
		text := "@@ -1 +1 @@\n" +
			"-old\n" +
			"\\ No newline at end of file\n" +
			"+new\n" +
			"\\ No newline at end of file\n"
		processor := diffhunk.NewProcessor(3)

		// when
		hunk, err := processor.Parse(text)

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{1}, numbers(hunk.DeletedLines))
		assert.Equal(t, []int{1}, numbers(hunk.AddedLines))
		assert.Equal(t, "new", hunk.AddedLines[0].Content)
	})
}

func TestProcessorBetween(t *testing.T) {
	t.Parallel()

	t.Run("should produce no change for equal contents", func(t *testing.T) {
		t.Parallel()

		// given
		processor := diffhunk.NewProcessor(3)
		content := "a\nb\nc\n"

		// when
		hunk, err := processor.Between(content, content, "a/f.txt", "b/f.txt")

		// then
		require.NoError(t, err)
		assert.True(t, hunk.IsEmpty())
	})

	t.Run("should number lines of both revisions", func(t *testing.T) {
		t.Parallel()

		// given
		processor := diffhunk.NewProcessor(1)
		before := "a\nb\nc\nd\ne\n"
		after := "a\nx\nc\nd\ne\nf\n"

		// when
		hunk, err := processor.Between(before, after, "a/f.txt", "b/f.txt")

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{2}, numbers(hunk.DeletedLines))
		assert.Equal(t, []int{2, 6}, numbers(hunk.AddedLines))
		assert.Equal(t, "f", hunk.AddedLines[1].Content)
	})
}

func TestUnified(t *testing.T) {
	t.Parallel()

	t.Run("should render file and hunk headers", func(t *testing.T) {
		t.Parallel()

		// when
		text, err := diffhunk.Unified("a\nb\n", "a\nc\n", "a/f.txt", "b/f.txt", 3)

		// then
		require.NoError(t, err)
		assert.Equal(t, "--- a/f.txt\n+++ b/f.txt\n@@ -1,2 +1,2 @@\n a\n-b\n+c\n", text)
	})
}
