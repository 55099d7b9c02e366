package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall_Fresh(t *testing.T) {
	hooksDir := filepath.Join(t.TempDir(), "hooks")

	path, err := Install(hooksDir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(hooksDir, HookName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, HookShim, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0100, "hook must be executable")
}

func TestInstall_BacksUpForeignHook(t *testing.T) {
	hooksDir := t.TempDir()
	hookPath := filepath.Join(hooksDir, HookName)
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho mine\n"), 0755))

	_, err := Install(hooksDir, false)
	require.NoError(t, err)

	backup, err := os.ReadFile(hookPath + ".backup")
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho mine\n", string(backup))

	require.NoError(t, Uninstall(hooksDir))

	restored, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho mine\n", string(restored))
	assert.NoFileExists(t, hookPath+".backup")
}

func TestInstall_ForceOverwrites(t *testing.T) {
	hooksDir := t.TempDir()
	hookPath := filepath.Join(hooksDir, HookName)
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho mine\n"), 0755))

	_, err := Install(hooksDir, true)
	require.NoError(t, err)
	assert.NoFileExists(t, hookPath+".backup")
}

func TestInstall_Reinstall(t *testing.T) {
	hooksDir := t.TempDir()

	_, err := Install(hooksDir, false)
	require.NoError(t, err)
	_, err = Install(hooksDir, false)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(hooksDir, HookName+".backup"))
}

func TestUninstall(t *testing.T) {
	t.Run("missing hook", func(t *testing.T) {
		assert.NoError(t, Uninstall(t.TempDir()))
	})

	t.Run("foreign hook", func(t *testing.T) {
		hooksDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(hooksDir, HookName), []byte("#!/bin/sh\n"), 0755))
		assert.ErrorIs(t, Uninstall(hooksDir), ErrForeignHook)
	})

	t.Run("our hook", func(t *testing.T) {
		hooksDir := t.TempDir()
		_, err := Install(hooksDir, false)
		require.NoError(t, err)

		require.NoError(t, Uninstall(hooksDir))
		assert.NoFileExists(t, filepath.Join(hooksDir, HookName))
	})
}
