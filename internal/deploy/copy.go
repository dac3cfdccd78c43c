package deploy

import (
	"fmt"
	"os"
	"path/filepath"
)

// excludedNames are entries never copied into the target.
var excludedNames = map[string]bool{
	".git":         true,
	".DS_Store":    true,
	"node_modules": true,
}

// Materialize copies the registry tree at source into the target runtime
// location, creating target as needed. Returns the number of files copied.
// Any copy failure aborts with an error; there are no partial-success exit
// paths for the caller to misread.
func Materialize(source, target string) (int, error) {
	info, err := os.Stat(source)
	if err != nil {
		return 0, fmt.Errorf("reading registry %s: %w", source, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("registry %s is not a directory", source)
	}

	return copyDir(source, target)
}

// copyDir recursively copies src to dst, excluding entries in excludedNames
// and skipping symlinks and other special files.
func copyDir(src, dst string) (int, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", src, err)
	}

	copied := 0
	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			n, err := copyDir(srcPath, dstPath)
			if err != nil {
				return copied, err
			}
			copied += n
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return copied, err
			}
			copied++
		}
	}

	return copied, nil
}

// copyFile copies a single file, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
