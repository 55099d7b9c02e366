package message

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte("Fix bug\n\n# comment\n"), 0600))

	store := NewFileStore(path)
	msg, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, 3, msg.Len())

	updated, err := msg.PrefixSubject("ABC-1")
	require.NoError(t, err)
	require.NoError(t, store.Write(updated))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ABC-1 Fix bug\n\n# comment\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_ReadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing"))
	_, err := store.Read()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read commit message")
}

func TestMemoryStore(t *testing.T) {
	store := &MemoryStore{Message: Parse([]byte("Fix\n"))}

	msg, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "Fix\n", msg.String())

	require.NoError(t, store.Write(Parse([]byte("X Fix\n"))))
	assert.Equal(t, 1, store.Writes)
	assert.Equal(t, "X Fix\n", store.Message.String())
}
