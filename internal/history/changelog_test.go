//go:build unit

package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/history"
)

func TestParseRecord(t *testing.T) {
	t.Parallel()

	t.Run("should parse a commit marker", func(t *testing.T) {
		t.Parallel()

		// when
		record, err := history.ParseRecord("Commit: 1a2b3c4d")

		// then
		require.NoError(t, err)
		assert.Equal(t, history.RecordCommit, record.Kind)
		assert.Equal(t, "1a2b3c4d", record.Revision)
	})

	t.Run("should parse a one-line log entry as a commit", func(t *testing.T) {
		t.Parallel()

		// when
		record, err := history.ParseRecord("1a2b3c4 fix the parser")

		// then
		require.NoError(t, err)
		assert.Equal(t, history.RecordCommit, record.Kind)
		assert.Equal(t, "1a2b3c4", record.Revision)
	})

	t.Run("should parse a rename with a similarity score", func(t *testing.T) {
		t.Parallel()

		// when
		record, err := history.ParseRecord("R087\tsrc/a.go\tlib/a.go")

		// then
		require.NoError(t, err)
		assert.Equal(t, byte('R'), record.Letter)
		assert.Equal(t, "src/a.go", record.Path)
		assert.Equal(t, "lib/a.go", record.Target())
		assert.True(t, record.Mentions("src/a.go"))
		assert.True(t, record.Mentions("lib/a.go"))
	})

	t.Run("should match paths only on directory boundaries", func(t *testing.T) {
		t.Parallel()

		// when
		record, err := history.ParseRecord("M\tdocs/README.md")

		// then
		require.NoError(t, err)
		assert.True(t, record.Mentions("docs/README.md"))
		assert.True(t, record.Mentions("docs"))
		assert.True(t, record.Mentions("docs/"))
		assert.False(t, record.Mentions("README.md"))
		assert.False(t, record.Mentions("doc"))
	})

	t.Run("should parse a deletion", func(t *testing.T) {
		t.Parallel()

		// when
		record, err := history.ParseRecord("D\tsrc/a.go")

		// then
		require.NoError(t, err)
		assert.True(t, record.IsDeletion())
		assert.Equal(t, "src/a.go", record.Target())
	})

	t.Run("should reject unknown letters and missing paths", func(t *testing.T) {
		t.Parallel()

		for _, line := range []string{"X\tsrc/a.go", "M src/a.go", "R100\tsrc/a.go", "Commit: "} {
			// when
			_, err := history.ParseRecord(line)

			// then
			require.ErrorIs(t, err, entities.ErrMalformedHistoryRecord, line)
		}
	})
}

func TestParseChangeLog(t *testing.T) {
	t.Parallel()

	t.Run("should skip blank lines", func(t *testing.T) {
		t.Parallel()

		// when
		records, err := history.ParseChangeLog([]string{"Commit: c1", "", "A\ta.go", "   "})

		// then
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
