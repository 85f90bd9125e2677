//go:build integration

package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/reftrack/internal/domain/entities"
	"github.com/rios0rios0/reftrack/internal/history"
	"github.com/rios0rios0/reftrack/internal/infrastructure/repositories/git"
)

type fixture struct {
	t        *testing.T
	dir      string
	worktree *gogit.Worktree
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	repository, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repository.Worktree()
	require.NoError(t, err)
	return &fixture{t: t, dir: dir, worktree: worktree}
}

func (f *fixture) write(name, content string) {
	f.t.Helper()
	full := filepath.Join(f.dir, name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(f.t, os.WriteFile(full, []byte(content), 0o600))
	_, err := f.worktree.Add(name)
	require.NoError(f.t, err)
}

func (f *fixture) move(from, to string) {
	f.t.Helper()
	_, err := f.worktree.Move(from, to)
	require.NoError(f.t, err)
}

func (f *fixture) remove(name string) {
	f.t.Helper()
	_, err := f.worktree.Remove(name)
	require.NoError(f.t, err)
}

func (f *fixture) commit(message string) string {
	f.t.Helper()
	hash, err := f.worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(f.t, err)
	return hash.String()
}

const content = "package a\n\nfunc A() int {\n\treturn 1\n}\n"

func TestHistoryRepository(t *testing.T) {
	t.Parallel()

	t.Run("should render additions, renames and deletions in the change log", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.write("src/a.go", content)
		f.write("src/b.go", "package b\n")
		first := f.commit("add")
		f.move("src/a.go", "lib/a.go")
		second := f.commit("move")
		f.remove("src/b.go")
		f.commit("remove")
		repository, err := git.NewHistoryRepository(f.dir)
		require.NoError(t, err)

		// when
		lines, err := repository.ChangeLog(context.Background(), "a.go", "", 60)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Commit: " + first, "A\tsrc/a.go",
			"Commit: " + second, "R\tsrc/a.go\tlib/a.go",
		}, lines)
	})

	t.Run("should read files and directories at a revision", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.write("src/a.go", content)
		f.write("src/nested/c.go", "package nested\n")
		first := f.commit("add")
		f.remove("src/a.go")
		f.commit("remove")
		repository, err := git.NewHistoryRepository(f.dir)
		require.NoError(t, err)
		ctx := context.Background()

		// when
		existsBefore, beforeErr := repository.FileExists(ctx, first, "src/a.go")
		existsNow, nowErr := repository.FileExists(ctx, "", "src/a.go")
		text, contentErr := repository.FileContent(ctx, first, "src/a.go")
		files, listErr := repository.DirectoryContents(ctx, first, "src")
		latest, latestErr := repository.LatestRevisionWithPath(ctx, "src/a.go")

		// then
		require.NoError(t, beforeErr)
		require.NoError(t, nowErr)
		require.NoError(t, contentErr)
		require.NoError(t, listErr)
		require.NoError(t, latestErr)
		assert.True(t, existsBefore)
		assert.False(t, existsNow)
		assert.Equal(t, content, text)
		assert.ElementsMatch(t, []string{"src/a.go", "src/nested/c.go"}, files)
		assert.Equal(t, first, latest)
	})

	t.Run("should report uncommitted changes in status format", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.write("src/a.go", content)
		f.commit("add")
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, "notes.md"), []byte("todo\n"), 0o600))
		repository, err := git.NewHistoryRepository(f.dir)
		require.NoError(t, err)
		ctx := context.Background()

		// when
		status, statusErr := repository.WorkingTreeStatus(ctx)
		exists, existsErr := repository.WorkingTreeExists(ctx, "notes.md")
		text, contentErr := repository.WorkingTreeContent(ctx, "notes.md")

		// then
		require.NoError(t, statusErr)
		require.NoError(t, existsErr)
		require.NoError(t, contentErr)
		assert.Equal(t, []string{"?? notes.md"}, status)
		assert.True(t, exists)
		assert.Equal(t, "todo\n", text)
	})

	t.Run("should let the resolver follow a committed rename", func(t *testing.T) {
		t.Parallel()

		// given
		f := newFixture(t)
		f.write("src/a.go", content)
		first := f.commit("add")
		f.move("src/a.go", "lib/a.go")
		second := f.commit("move")
		repository, err := git.NewHistoryRepository(f.dir)
		require.NoError(t, err)

		// when
		change, err := history.NewResolver(repository, 60, 60).ResolveFile(context.Background(), "src/a.go", first)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ChangeTypeMoved, change.ChangeType)
		assert.Equal(t, "lib/a.go", change.AfterPath)
		last, _ := change.LastHop()
		assert.Equal(t, entities.HistoryHop{Revision: second, Path: "lib/a.go"}, last)
	})
}
