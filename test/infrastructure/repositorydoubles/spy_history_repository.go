//go:build integration || unit || test

// Package repositorydoubles provides hand-written test doubles for repository interfaces.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/reftrack/internal/domain/repositories"
)

// SpyHistoryRepository implements repositories.HistoryRepository over in-memory maps.
// Revision-scoped maps are keyed by RevisionKey; an empty revision means HEAD.
type SpyHistoryRepository struct {
	// --- ChangeLog ---
	ChangeLogs   map[string][]string // file name -> log lines
	ChangeLogErr error
	// spy: file names that were requested
	ChangeLogCalls []string

	// --- HeadRevision ---
	Head string

	// --- FileExists / FileContent ---
	Files map[string]string // RevisionKey(rev, path) -> content

	// --- DirectoryContents ---
	Directories map[string][]string // RevisionKey(rev, dir) -> files

	// --- LatestRevisionWithPath ---
	LatestRevisions map[string]string // path -> revision

	// --- working tree ---
	Status    []string
	StatusErr error
	OnDisk    map[string]string // path -> content
}

var _ repositories.HistoryRepository = (*SpyHistoryRepository)(nil)

// RevisionKey builds the key of the revision-scoped maps.
func RevisionKey(revision, path string) string {
	return revision + ":" + path
}

func (it *SpyHistoryRepository) ChangeLog(
	_ context.Context, fileName, _ string, _ int,
) ([]string, error) {
	it.ChangeLogCalls = append(it.ChangeLogCalls, fileName)
	if it.ChangeLogErr != nil {
		return nil, it.ChangeLogErr
	}
	return it.ChangeLogs[fileName], nil
}

func (it *SpyHistoryRepository) HeadRevision(_ context.Context) (string, error) {
	if it.Head == "" {
		return "", errors.New("no HEAD")
	}
	return it.Head, nil
}

func (it *SpyHistoryRepository) FileExists(_ context.Context, revision, path string) (bool, error) {
	_, ok := it.Files[RevisionKey(revision, path)]
	return ok, nil
}

func (it *SpyHistoryRepository) FileContent(_ context.Context, revision, path string) (string, error) {
	content, ok := it.Files[RevisionKey(revision, path)]
	if !ok {
		return "", fmt.Errorf("file not found: %s at %q", path, revision)
	}
	return content, nil
}

func (it *SpyHistoryRepository) DirectoryContents(
	_ context.Context, revision, path string,
) ([]string, error) {
	return it.Directories[RevisionKey(revision, path)], nil
}

func (it *SpyHistoryRepository) LatestRevisionWithPath(_ context.Context, path string) (string, error) {
	return it.LatestRevisions[path], nil
}

func (it *SpyHistoryRepository) WorkingTreeStatus(_ context.Context) ([]string, error) {
	return it.Status, it.StatusErr
}

func (it *SpyHistoryRepository) WorkingTreeExists(_ context.Context, path string) (bool, error) {
	_, ok := it.OnDisk[path]
	return ok, nil
}

func (it *SpyHistoryRepository) WorkingTreeContent(_ context.Context, path string) (string, error) {
	content, ok := it.OnDisk[path]
	if !ok {
		return "", fmt.Errorf("file not found on disk: %s", path)
	}
	return content, nil
}
