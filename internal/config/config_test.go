package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FindModuleRoot_WalksUpToGoMod(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x"), 0644))
	nested := filepath.Join(root, "internal", "features")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Equal(t, root, findModuleRoot(nested))
}

func Test_FindModuleRoot_WithoutGoMod_ReturnsStart(t *testing.T) {
	start := t.TempDir()
	assert.Equal(t, start, findModuleRoot(start))
}

func Test_GetEnv_InTests_UsesDefaults(t *testing.T) {
	loaded := GetEnv()

	assert.True(t, loaded.IsTesting)
	assert.NotEmpty(t, loaded.ImageFolder)
	assert.NotEmpty(t, loaded.TempFolder)
	assert.Positive(t, loaded.MaxImageSizeBytes())
}

func Test_MaxImageSizeBytes_ConvertsMegabytes(t *testing.T) {
	variables := EnvVariables{MaxImageSizeMB: 100}
	assert.Equal(t, int64(100*1024*1024), variables.MaxImageSizeBytes())
}
