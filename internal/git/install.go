package git

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// HookName is the git hook the shim is installed as
const HookName = "commit-msg"

// hookMarker identifies a shim written by Install
const hookMarker = "# installed by issuekey"

// HookShim is the commit-msg script Install writes
const HookShim = `#!/bin/sh
` + hookMarker + `
exec issuekey check "$1"
`

// ErrForeignHook is returned by Uninstall when the hook was not written by Install
var ErrForeignHook = errors.New("commit-msg hook was not installed by issuekey")

// Install writes the commit-msg shim into hooksDir. An existing hook that is
// not ours is moved to commit-msg.backup unless force is set, in which case
// it is overwritten.
func Install(hooksDir string, force bool) (string, error) {
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hooksDir, HookName)
	if existing, err := os.ReadFile(hookPath); err == nil && !isOurHook(existing) && !force {
		if err := os.Rename(hookPath, hookPath+".backup"); err != nil {
			return "", fmt.Errorf("failed to backup %s: %w", HookName, err)
		}
	}

	// #nosec G306 -- git hooks must be executable
	if err := os.WriteFile(hookPath, []byte(HookShim), 0755); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", HookName, err)
	}
	return hookPath, nil
}

// Uninstall removes the shim from hooksDir and restores any backup.
// A missing hook is not an error.
func Uninstall(hooksDir string) error {
	hookPath := filepath.Join(hooksDir, HookName)

	existing, err := os.ReadFile(hookPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", HookName, err)
	}
	if !isOurHook(existing) {
		return ErrForeignHook
	}

	if err := os.Remove(hookPath); err != nil {
		return fmt.Errorf("failed to remove %s: %w", HookName, err)
	}

	backupPath := hookPath + ".backup"
	if _, err := os.Stat(backupPath); err == nil {
		if err := os.Rename(backupPath, hookPath); err != nil {
			return fmt.Errorf("failed to restore backup for %s: %w", HookName, err)
		}
	}
	return nil
}

func isOurHook(content []byte) bool {
	return bytes.Contains(content, []byte(hookMarker))
}
