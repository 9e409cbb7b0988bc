package files_utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EnsureDirectories_CreatesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "images", "workspaces")
	second := filepath.Join(root, "temp")

	err := EnsureDirectories([]string{first, second, first})
	require.NoError(t, err)

	for _, dir := range []string{first, second} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func Test_EnsureDirectories_WhenPathIsFile_ReturnsError(t *testing.T) {
	root := t.TempDir()
	filePath := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))

	err := EnsureDirectories([]string{filePath})
	assert.Error(t, err)
}

func Test_CleanFolder_RemovesContentButKeepsFolder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.png"), []byte("a"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "b.png"), []byte("b"), 0644))

	require.NoError(t, CleanFolder(root))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func Test_CleanFolder_WhenFolderMissing_ReturnsNil(t *testing.T) {
	assert.NoError(t, CleanFolder(filepath.Join(t.TempDir(), "missing")))
}

func Test_RemoveFileIfExists_ReportsPresence(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "image.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	removed, err := RemoveFileIfExists(path)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveFileIfExists(path)
	require.NoError(t, err)
	assert.False(t, removed)
}
