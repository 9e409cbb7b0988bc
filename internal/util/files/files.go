package files_utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const directoryPermissions = 0755

// EnsureDirectories creates every missing directory in the list.
func EnsureDirectories(directories []string) error {
	for _, directory := range directories {
		info, err := os.Stat(directory)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s exists and is not a directory", directory)
			}
			continue
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check directory %s: %w", directory, err)
		}

		if err := os.MkdirAll(directory, directoryPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	return nil
}

// CleanFolder removes everything inside folder but keeps the folder itself.
// A missing folder is not an error.
func CleanFolder(folder string) error {
	entries, err := os.ReadDir(folder)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", folder, err)
	}

	for _, entry := range entries {
		itemPath := filepath.Join(folder, entry.Name())
		if err := os.RemoveAll(itemPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", itemPath, err)
		}
	}

	return nil
}

// RemoveFileIfExists deletes a single file and reports whether it was there.
func RemoveFileIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return true, nil
}
