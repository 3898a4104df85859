// Package vfs provides the filesystem abstraction the testing tree is read from and outputs are written to.
// It wraps afero so the same code runs against the real OS filesystem and in-memory trees in tests.
package vfs

import (
	"os"
	"path/filepath"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/spf13/afero"
)

// FS is the filesystem interface used throughout the codebase.
type FS = afero.Fs

const (
	DefaultDirPerm  os.FileMode = 0755
	DefaultFilePerm os.FileMode = 0644
)

// NewOSFS returns a filesystem backed by the real operating system filesystem.
func NewOSFS() FS {
	return afero.NewOsFs()
}

// NewMemMapFS returns an in-memory filesystem for testing purposes.
func NewMemMapFS() FS {
	return afero.NewMemMapFs()
}

// FileExists checks if a path exists using the given filesystem.
// Returns (true, nil) if the file exists, (false, nil) if it does not exist,
// and (false, error) for other errors (e.g., permission denied).
func FileExists(fs FS, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, errors.New(err)
}

// IsDir reports whether path exists and is a directory.
func IsDir(fs FS, path string) bool {
	ok, err := afero.IsDir(fs, path)

	return err == nil && ok
}

// ReadDir returns the entries of dir sorted by name.
func ReadDir(fs FS, dir string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.New(err)
	}

	return entries, nil
}

// ReadFile reads the contents of a file from the given filesystem.
func ReadFile(fs FS, filename string) ([]byte, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, errors.New(err)
	}

	return data, nil
}

// WriteFile writes data to a file on the given filesystem, creating missing parent directories.
func WriteFile(fs FS, filename string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := fs.MkdirAll(dir, DefaultDirPerm); err != nil {
			return errors.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	if err := afero.WriteFile(fs, filename, data, perm); err != nil {
		return errors.New(err)
	}

	return nil
}
