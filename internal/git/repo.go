package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// IsGitRepo checks if the path is inside a git repository
func IsGitRepo(path string) bool {
	_, err := Open(path)
	return err == nil
}

// Repo answers repository questions in-process with go-git
type Repo struct {
	repo *git.Repository
}

// Open opens the repository containing path, walking up to find .git
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return &Repo{repo: repo}, nil
}

// CurrentBranch returns the short name HEAD points at, or DetachedHead
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	ref, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", &GitError{Command: "HEAD", Output: err.Error()}
	}

	if ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch() {
		return ref.Target().Short(), nil
	}
	return DetachedHead, nil
}

// LastCommitWasMerge reports whether the HEAD commit has more than one parent
func (r *Repo) LastCommitWasMerge(ctx context.Context) (bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Unborn branch: nothing was merged yet
			return false, nil
		}
		return false, &GitError{Command: "HEAD", Output: err.Error()}
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return false, &GitError{Command: "cat-file " + head.Hash().String(), Output: err.Error()}
	}
	return commit.NumParents() > 1, nil
}

// GitDir returns the repository's git directory
func (r *Repo) GitDir(ctx context.Context) (string, error) {
	storage, ok := r.repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", &GitError{Command: "git-dir", Output: "repository is not backed by a filesystem"}
	}
	return filepath.Abs(storage.Filesystem().Root())
}

// HooksDir returns <git-dir>/hooks
func (r *Repo) HooksDir(ctx context.Context) (string, error) {
	gitDir, err := r.GitDir(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// WorkTreeRoot returns the top-level directory of the work tree
func (r *Repo) WorkTreeRoot(ctx context.Context) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", &GitError{Command: "worktree", Output: err.Error()}
	}
	return wt.Filesystem.Root(), nil
}

// RebaseHeadName returns the branch recorded by an in-progress rebase
func (r *Repo) RebaseHeadName(ctx context.Context) (string, bool, error) {
	gitDir, err := r.GitDir(ctx)
	if err != nil {
		return "", false, err
	}
	return ReadRebaseHeadName(gitDir)
}

// GitError provides better context for git command failures
type GitError struct {
	Command string
	Output  string
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Output
}

// Backend is the set of repository queries the hook and the installer need
type Backend interface {
	CurrentBranch(ctx context.Context) (string, error)
	LastCommitWasMerge(ctx context.Context) (bool, error)
	RebaseHeadName(ctx context.Context) (string, bool, error)
	GitDir(ctx context.Context) (string, error)
	HooksDir(ctx context.Context) (string, error)
	WorkTreeRoot(ctx context.Context) (string, error)
}

// Backend names accepted by OpenBackend
const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

// OpenBackend returns the named backend for the repository containing dir.
// An empty dir means the current directory.
func OpenBackend(name, dir string) (Backend, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	}

	switch name {
	case "", BackendCLI:
		return NewCLI(dir), nil
	case BackendGoGit:
		return Open(dir)
	default:
		return nil, fmt.Errorf("unknown git backend %q (must be %q or %q)", name, BackendCLI, BackendGoGit)
	}
}
