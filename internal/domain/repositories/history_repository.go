package repositories

import "context"

// HistoryRepository gives read access to the version history of a working tree.
// An empty revision means HEAD.
type HistoryRepository interface {
	// ChangeLog lists, oldest first, the revisions touching paths that end with fileName.
	// Each revision is a "Commit: <sha>" line followed by "<letter>\t<path>[\t<newPath>]" lines.
	// When since is set, only since and its descendants are listed. renameScore is the
	// minimum similarity percentage for a delete/add pair to be reported as a rename.
	ChangeLog(ctx context.Context, fileName, since string, renameScore int) ([]string, error)

	// HeadRevision returns the full hash HEAD points to.
	HeadRevision(ctx context.Context) (string, error)

	// FileExists reports whether a file exists at path in the given revision.
	FileExists(ctx context.Context, revision, path string) (bool, error)

	// FileContent returns the content of the file at path in the given revision.
	FileContent(ctx context.Context, revision, path string) (string, error)

	// DirectoryContents lists every file below the directory at the given revision.
	DirectoryContents(ctx context.Context, revision, path string) ([]string, error)

	// LatestRevisionWithPath returns the most recent revision in which path exists,
	// or an empty string when it never did.
	LatestRevisionWithPath(ctx context.Context, path string) (string, error)

	// WorkingTreeStatus lists uncommitted changes as "XY path" or "XY old -> new" lines.
	WorkingTreeStatus(ctx context.Context) ([]string, error)

	// WorkingTreeExists reports whether path exists on disk.
	WorkingTreeExists(ctx context.Context, path string) (bool, error)

	// WorkingTreeContent returns the content of the file at path on disk.
	WorkingTreeContent(ctx context.Context, path string) (string, error)
}
