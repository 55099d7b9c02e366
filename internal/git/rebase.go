package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// rebaseStateDirs are checked in order: the merge backend first, then the
// apply backend used by `git am` and older rebases.
var rebaseStateDirs = []string{"rebase-merge", "rebase-apply"}

// ReadRebaseHeadName reads the name of the branch being rebased from the
// rebase metadata in gitDir. found is false when no rebase is in progress.
func ReadRebaseHeadName(gitDir string) (name string, found bool, err error) {
	for _, dir := range rebaseStateDirs {
		path := filepath.Join(gitDir, dir, "head-name")
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", false, fmt.Errorf("failed to read rebase state %s: %w", path, err)
		}
		return strings.TrimSpace(string(data)), true, nil
	}
	return "", false, nil
}
