package hook

import (
	"context"
	"strings"

	"github.com/wahlandcase/attuned.issuekey/internal/git"
)

// VersionControl answers the questions the engine asks about the repository
type VersionControl interface {
	CurrentBranch(ctx context.Context) (string, error)
	LastCommitWasMerge(ctx context.Context) (bool, error)
}

// RebaseStateReader returns the branch recorded by an in-progress rebase.
// found is false when there is none.
type RebaseStateReader interface {
	RebaseHeadName(ctx context.Context) (name string, found bool, err error)
}

// BranchResolver determines the branch a commit is being made on,
// recovering the real branch name when a rebase has detached HEAD.
type BranchResolver struct {
	VCS    VersionControl
	Rebase RebaseStateReader
}

// Resolve returns the effective branch name, trimmed of surrounding whitespace
func (r BranchResolver) Resolve(ctx context.Context) (string, error) {
	branch, err := r.VCS.CurrentBranch(ctx)
	if err != nil {
		return "", &BranchResolutionError{Err: err}
	}
	branch = strings.TrimSpace(branch)

	if branch != git.DetachedHead {
		return branch, nil
	}

	// Detached HEAD is only recoverable mid-rebase
	name, found, err := r.Rebase.RebaseHeadName(ctx)
	if err != nil {
		return "", &BranchResolutionError{Err: err}
	}
	if !found {
		return "", &DetachedHeadError{}
	}
	return strings.TrimSpace(name), nil
}
