//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reftrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestNewSettings(t *testing.T) {
	t.Run("should keep defaults for keys the file omits", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "similarity:\n  directory: 75\nreferences:\n  - path: docs/guide.md#L3-L5\n    revision: 1a2b3c4\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 75, settings.Similarity.Directory)
		assert.Equal(t, 60, settings.Similarity.File)
		assert.Equal(t, "git", settings.Backend)
		assert.Equal(t, 3, settings.Tracking.ContextLines)
		assert.True(t, settings.Tracking.RoundScores)
		assert.Equal(t, []entities.ReferenceConfig{{Path: "docs/guide.md#L3-L5", Revision: "1a2b3c4"}}, settings.References)
	})

	t.Run("should expand environment variables in the repository path", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("REFTRACK_TEST_CHECKOUT", "/srv/checkout")
		path := writeSettings(t, "repository: ${REFTRACK_TEST_CHECKOUT}/app\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "/srv/checkout/app", settings.Repository)
	})

	t.Run("should reject a threshold out of range", func(t *testing.T) {
		t.Parallel()

		// given
		path := writeSettings(t, "tracking:\n  split_accept: 1.5\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tracking.split_accept")
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("should accept the defaults", func(t *testing.T) {
		t.Parallel()

		// when
		err := entities.DefaultSettings().Validate()

		// then
		require.NoError(t, err)
	})

	t.Run("should fail when a directory percentage exceeds 100", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.Similarity.Directory = 120

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "similarity.directory")
	})

	t.Run("should fail when a reference has no path", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.References = []entities.ReferenceConfig{{Revision: "abc"}}

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "references[0].path")
	})
}

func TestExpandEnv(t *testing.T) {
	t.Parallel()

	t.Run("should drop unset variables", func(t *testing.T) {
		t.Parallel()

		// when
		result := entities.ExpandEnv("${DEFINITELY_NOT_SET_VAR_12345}/repo")

		// then
		assert.Equal(t, "/repo", result)
	})
}
