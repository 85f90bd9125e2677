package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reftrack/internal/domain/repositories"
)

const commitMarker = "Commit: "

// HistoryRepository implements repositories.HistoryRepository on top of go-git.
// HEAD and change logs are memoized for the lifetime of the handle.
type HistoryRepository struct {
	repository *gogit.Repository
	worktree   *gogit.Worktree

	mu   sync.Mutex
	head plumbing.Hash
	logs map[string][]string
}

var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository opens the repository containing dir.
func NewHistoryRepository(dir string) (repositories.HistoryRepository, error) {
	repository, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %q: %w", dir, err)
	}
	worktree, err := repository.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open working tree at %q: %w", dir, err)
	}
	logger.Debugf("Opened repository at %q", worktree.Filesystem.Root())

	return &HistoryRepository{
		repository: repository,
		worktree:   worktree,
		logs:       make(map[string][]string),
	}, nil
}

func (it *HistoryRepository) ChangeLog(
	ctx context.Context,
	fileName, since string,
	renameScore int,
) ([]string, error) {
	key := fmt.Sprintf("%s@%s#%d", fileName, since, renameScore)
	it.mu.Lock()
	cached, ok := it.logs[key]
	it.mu.Unlock()
	if ok {
		return cached, nil
	}

	head, err := it.headHash()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stop plumbing.Hash
	if since != "" {
		if stop, err = it.resolve(since); err != nil {
			return nil, err
		}
	}

	commits, err := it.commitsUntil(ctx, head, stop)
	if err != nil {
		return nil, err
	}

	var lines []string
	for i := len(commits) - 1; i >= 0; i-- {
		changes, changesErr := changesOf(ctx, commits[i], fileName, renameScore)
		if changesErr != nil {
			return nil, changesErr
		}
		if len(changes) == 0 {
			continue
		}
		lines = append(lines, commitMarker+commits[i].Hash.String())
		lines = append(lines, changes...)
	}

	it.mu.Lock()
	it.logs[key] = lines
	it.mu.Unlock()
	return lines, nil
}

func (it *HistoryRepository) HeadRevision(_ context.Context) (string, error) {
	head, err := it.headHash()
	if err != nil {
		return "", err
	}
	return head.String(), nil
}

func (it *HistoryRepository) FileExists(_ context.Context, revision, filePath string) (bool, error) {
	tree, err := it.tree(revision)
	if err != nil {
		return false, err
	}
	if _, err = tree.File(filePath); err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (it *HistoryRepository) FileContent(_ context.Context, revision, filePath string) (string, error) {
	tree, err := it.tree(revision)
	if err != nil {
		return "", err
	}
	file, err := tree.File(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to find %q at %q: %w", filePath, revision, err)
	}
	return file.Contents()
}

func (it *HistoryRepository) DirectoryContents(_ context.Context, revision, dir string) ([]string, error) {
	tree, err := it.tree(revision)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	dir = strings.Trim(dir, "/")
	if dir != "" && dir != "." {
		if tree, err = tree.Tree(dir); err != nil {
			if errors.Is(err, object.ErrDirectoryNotFound) {
				return nil, nil
			}
			return nil, err
		}
	}

	var files []string
	err = tree.Files().ForEach(func(file *object.File) error {
		files = append(files, path.Join(dir, file.Name))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", dir, err)
	}
	return files, nil
}

func (it *HistoryRepository) LatestRevisionWithPath(ctx context.Context, target string) (string, error) {
	head, err := it.headHash()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	iter, err := it.repository.Log(&gogit.LogOptions{From: head})
	if err != nil {
		return "", fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	target = strings.Trim(target, "/")
	found := ""
	err = iter.ForEach(func(commit *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		tree, treeErr := commit.Tree()
		if treeErr != nil {
			return treeErr
		}
		if _, entryErr := tree.FindEntry(target); entryErr == nil {
			found = commit.Hash.String()
			return storer.ErrStop
		}
		return nil
	})
	return found, err
}

func (it *HistoryRepository) WorkingTreeStatus(_ context.Context) ([]string, error) {
	status, err := it.worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read working tree status: %w", err)
	}

	paths := make([]string, 0, len(status))
	for filePath := range status {
		paths = append(paths, filePath)
	}
	sort.Strings(paths)

	lines := make([]string, 0, len(paths))
	for _, filePath := range paths {
		file := status[filePath]
		if file.Staging == gogit.Unmodified && file.Worktree == gogit.Unmodified {
			continue
		}
		if file.Staging == gogit.Renamed && file.Extra != "" {
			lines = append(lines, fmt.Sprintf("%c%c %s -> %s", file.Staging, file.Worktree, file.Extra, filePath))
			continue
		}
		lines = append(lines, fmt.Sprintf("%c%c %s", file.Staging, file.Worktree, filePath))
	}
	return lines, nil
}

func (it *HistoryRepository) WorkingTreeExists(_ context.Context, filePath string) (bool, error) {
	if _, err := it.worktree.Filesystem.Stat(filePath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (it *HistoryRepository) WorkingTreeContent(_ context.Context, filePath string) (string, error) {
	file, err := it.worktree.Filesystem.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", filePath, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", filePath, err)
	}
	return string(content), nil
}

func (it *HistoryRepository) headHash() (plumbing.Hash, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if !it.head.IsZero() {
		return it.head, nil
	}

	ref, err := it.repository.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	it.head = ref.Hash()
	return it.head, nil
}

func (it *HistoryRepository) resolve(revision string) (plumbing.Hash, error) {
	if revision == "" {
		return it.headHash()
	}
	hash, err := it.repository.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve revision %q: %w", revision, err)
	}
	return *hash, nil
}

func (it *HistoryRepository) tree(revision string) (*object.Tree, error) {
	hash, err := it.resolve(revision)
	if err != nil {
		return nil, err
	}
	commit, err := it.repository.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	return commit.Tree()
}

// commitsUntil lists commits reachable from head, newest first, ending at stop when set.
func (it *HistoryRepository) commitsUntil(
	ctx context.Context,
	head, stop plumbing.Hash,
) ([]*object.Commit, error) {
	iter, err := it.repository.Log(&gogit.LogOptions{From: head})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var commits []*object.Commit
	err = iter.ForEach(func(commit *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		commits = append(commits, commit)
		if !stop.IsZero() && commit.Hash == stop {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}
	return commits, nil
}

// changesOf renders the changes a commit made to files named fileName against its first parent.
func changesOf(ctx context.Context, commit *object.Commit, fileName string, renameScore int) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", commit.Hash, err)
	}

	parentTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, parentErr := commit.Parent(0)
		if parentErr != nil {
			return nil, fmt.Errorf("failed to read parent of %s: %w", commit.Hash, parentErr)
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, fmt.Errorf("failed to read tree of %s: %w", parent.Hash, err)
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, &object.DiffTreeOptions{
		DetectRenames: true,
		RenameScore:   uint(renameScore), //nolint:gosec // validated to 0..100
	})
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s: %w", commit.Hash, err)
	}

	var lines []string
	for _, change := range changes {
		from, to := change.From.Name, change.To.Name
		if path.Base(from) != fileName && path.Base(to) != fileName {
			continue
		}
		action, actionErr := change.Action()
		if actionErr != nil {
			return nil, actionErr
		}
		switch action {
		case merkletrie.Insert:
			lines = append(lines, "A\t"+to)
		case merkletrie.Delete:
			lines = append(lines, "D\t"+from)
		case merkletrie.Modify:
			if from != to {
				lines = append(lines, "R\t"+from+"\t"+to)
			} else {
				lines = append(lines, "M\t"+to)
			}
		}
	}
	return lines, nil
}
