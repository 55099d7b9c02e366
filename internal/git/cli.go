package git

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/wahlandcase/attuned.issuekey/internal/logging"
)

// DetachedHead is what both backends report as the branch when HEAD does not
// point at a branch.
const DetachedHead = "HEAD"

// CLI answers repository questions by running the git executable
type CLI struct {
	// Dir is where git runs; empty means the current directory
	Dir    string
	Runner Runner
}

// NewCLI creates a CLI backend rooted at dir
func NewCLI(dir string) *CLI {
	return &CLI{Dir: dir, Runner: ExecRunner{}}
}

func (c *CLI) run(ctx context.Context, args ...string) ExecResult {
	logging.LogCommand("git", args)
	return c.Runner.Run(ctx, ExecSpec{Argv: append([]string{"git"}, args...), Dir: c.Dir})
}

func (c *CLI) output(ctx context.Context, args ...string) (string, error) {
	res := c.run(ctx, args...)
	if res.ErrorKind != "" {
		return "", newGitError(args, res)
	}
	return strings.TrimSpace(res.Stdout), nil
}

func newGitError(args []string, res ExecResult) *GitError {
	output := strings.TrimSpace(res.Stderr)
	if output == "" {
		output = strings.TrimSpace(res.Stdout)
	}
	if output == "" {
		output = "exited with " + res.ErrorKind
	}
	return &GitError{Command: strings.Join(args, " "), Output: output}
}

// CurrentBranch returns the short name of the checked-out branch, or
// DetachedHead. Works on an unborn branch.
func (c *CLI) CurrentBranch(ctx context.Context) (string, error) {
	args := []string{"symbolic-ref", "--short", "-q", "HEAD"}
	res := c.run(ctx, args...)
	switch {
	case res.ErrorKind == "":
		return strings.TrimSpace(res.Stdout), nil
	case res.ErrorKind == "exit" && res.ExitCode == 1 && strings.TrimSpace(res.Stdout) == "":
		// -q: HEAD is not a symbolic ref
		return DetachedHead, nil
	default:
		return "", newGitError(args, res)
	}
}

// LastCommitWasMerge reports whether HEAD has more than one parent.
// A repository without commits has no merge.
func (c *CLI) LastCommitWasMerge(ctx context.Context) (bool, error) {
	verify := []string{"rev-parse", "--verify", "-q", "HEAD"}
	res := c.run(ctx, verify...)
	if res.ErrorKind == "exit" && res.ExitCode == 1 && strings.TrimSpace(res.Stdout) == "" {
		return false, nil
	}
	if res.ErrorKind != "" {
		return false, newGitError(verify, res)
	}

	out, err := c.output(ctx, "rev-list", "--parents", "-n", "1", "HEAD")
	if err != nil {
		return false, err
	}
	// "<commit> <parent> <parent>..."
	return len(strings.Fields(out)) > 2, nil
}

// GitDir returns the absolute path of the repository's git directory
func (c *CLI) GitDir(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "--absolute-git-dir")
}

// HooksDir returns the directory git runs hooks from, honouring core.hooksPath
func (c *CLI) HooksDir(ctx context.Context) (string, error) {
	dir, err := c.output(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Dir, dir)
	}
	return filepath.Abs(dir)
}

// WorkTreeRoot returns the top-level directory of the work tree
func (c *CLI) WorkTreeRoot(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "--show-toplevel")
}

// RebaseHeadName returns the branch recorded by an in-progress rebase
func (c *CLI) RebaseHeadName(ctx context.Context) (string, bool, error) {
	gitDir, err := c.GitDir(ctx)
	if err != nil {
		return "", false, err
	}
	return ReadRebaseHeadName(gitDir)
}
