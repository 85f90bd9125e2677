//go:build unit

package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/similarity"
)

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	t.Run("should return 1 for identical strings", func(t *testing.T) {
		t.Parallel()

		// when
		result := similarity.Levenshtein("return x;", "return x;")

		// then
		assert.InDelta(t, 1.0, result, 1e-9)
	})

	t.Run("should return 1 for two empty strings", func(t *testing.T) {
		t.Parallel()

		// when
		result := similarity.Levenshtein("", "")

		// then
		assert.InDelta(t, 1.0, result, 1e-9)
	})

	t.Run("should normalize the distance by the longest string", func(t *testing.T) {
		t.Parallel()

		// given
		// kitten -> sitting takes 3 edits over 7 characters
		first, second := "kitten", "sitting"

		// when
		result := similarity.Levenshtein(first, second)

		// then
		assert.InDelta(t, 1-3.0/7.0, result, 1e-9)
	})

	t.Run("should return 0 when nothing is shared", func(t *testing.T) {
		t.Parallel()

		// when
		result := similarity.Levenshtein("abc", "xyz")

		// then
		assert.InDelta(t, 0.0, result, 1e-9)
	})
}

func TestCosine(t *testing.T) {
	t.Parallel()

	t.Run("should return 0 when either side is empty", func(t *testing.T) {
		t.Parallel()

		// when
		withEmpty := similarity.Cosine("", "abc", 3)
		bothEmpty := similarity.Cosine("", "", 3)

		// then
		assert.Zero(t, withEmpty)
		assert.Zero(t, bothEmpty)
	})

	t.Run("should return 1 for identical strings", func(t *testing.T) {
		t.Parallel()

		// when
		result := similarity.Cosine("for i := range xs", "for i := range xs", 3)

		// then
		assert.InDelta(t, 1.0, result, 1e-9)
	})

	t.Run("should return 0 when a string is shorter than one gram", func(t *testing.T) {
		t.Parallel()

		// when
		result := similarity.Cosine("ab", "abc", 3)

		// then
		assert.Zero(t, result)
	})

	t.Run("should score the shared grams", func(t *testing.T) {
		t.Parallel()

		// given
		// abcd -> {abc, bcd}, abce -> {abc, bce}: one shared gram of two
		first, second := "abcd", "abce"

		// when
		result := similarity.Cosine(first, second, 3)

		// then
		assert.InDelta(t, 0.5, result, 1e-9)
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("should compare trimmed context contents", func(t *testing.T) {
		t.Parallel()

		// given
		deleted := entities.NewLine(4, "x").WithContext([]entities.Line{
			entities.NewLine(3, "  func f() {"),
			entities.NewLine(5, "}"),
		})
		added := entities.NewLine(9, "y").WithContext([]entities.Line{
			entities.NewLine(8, "func f() {"),
			entities.NewLine(10, "}  "),
		})

		// when
		result := similarity.Context(deleted, added)

		// then
		assert.InDelta(t, 1.0, result, 1e-9)
	})

	t.Run("should return 0 when a line has no context", func(t *testing.T) {
		t.Parallel()

		// given
		deleted := entities.NewLine(1, "x")
		added := entities.NewLine(1, "x").WithContext([]entities.Line{entities.NewLine(2, "abc")})

		// when
		result := similarity.Context(deleted, added)

		// then
		assert.Zero(t, result)
	})
}

func TestRoundToStep(t *testing.T) {
	t.Parallel()

	t.Run("should round to the nearest twentieth", func(t *testing.T) {
		t.Parallel()

		// when / then
		assert.InDelta(t, 0.65, similarity.RoundToStep(0.6376, 0.05), 1e-9)
		assert.InDelta(t, 0.6, similarity.RoundToStep(0.6124, 0.05), 1e-9)
		assert.InDelta(t, 1.0, similarity.RoundToStep(0.99, 0.05), 1e-9)
	})
}
