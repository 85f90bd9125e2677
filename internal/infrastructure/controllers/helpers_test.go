//go:build unit

package controllers_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/infrastructure/controllers"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".reftrack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	t.Run("should print the error instead of the location for a failed reference", func(t *testing.T) {
		t.Parallel()

		// given
		err := entities.NewTrackingError(entities.ErrReferenceNeverExisted, "ghost.go", "")
		invalid := entities.NewInvalidFileChange(err)
		reference, _ := entities.ParseReference("ghost.go")
		out := &bytes.Buffer{}

		// when
		printErr := controllers.PrintResults(out, "text", []entities.TrackResult{
			{Reference: reference, FileChange: &invalid, Err: err},
		})

		// then
		require.NoError(t, printErr)
		assert.Contains(t, out.String(), "INVALID")
		assert.Contains(t, out.String(), "never existed")
	})

	t.Run("should reject an unknown format", func(t *testing.T) {
		t.Parallel()

		// when
		err := controllers.PrintResults(&bytes.Buffer{}, "json", nil)

		// then
		require.Error(t, err)
	})
}
