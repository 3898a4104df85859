package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/keyboardio/testplan/pkg/log"
)

// Finder looks up convention files in scope directories.
type Finder struct {
	fs   vfs.FS
	conv *compiledConventions
}

// NewFinder returns a Finder reading fs with the given conventions.
func NewFinder(fs vfs.FS, conv Conventions) (*Finder, error) {
	compiled, err := conv.compile()
	if err != nil {
		return nil, err
	}

	return &Finder{fs: fs, conv: compiled}, nil
}

// Conventions returns the conventions the finder was created with.
func (finder *Finder) Conventions() Conventions {
	return finder.conv.Conventions
}

// Entries returns the entries of dir sorted by name.
func (finder *Finder) Entries(dir string) ([]os.FileInfo, error) {
	return vfs.ReadDir(finder.fs, dir)
}

// SubDirs returns the scope directories below dir in lexical order. The external-reference
// directory, hidden directories and empty directories are not scopes.
func (finder *Finder) SubDirs(dir string) ([]string, error) {
	entries, err := finder.Entries(dir)
	if err != nil {
		return nil, err
	}

	var dirs []string

	for _, entry := range entries {
		name := entry.Name()

		if !entry.IsDir() || name == finder.conv.ExternalDir || strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)

		children, err := finder.Entries(path)
		if err != nil {
			return nil, err
		}

		if len(children) == 0 {
			continue
		}

		dirs = append(dirs, path)
	}

	return dirs, nil
}

// FindUnique returns the file of the given kind directly inside dir. With more than one match
// a warning is logged and the first match in lexical order is returned.
func (finder *Finder) FindUnique(l log.Logger, dir string, kind FileKind) (string, bool, error) {
	entries, err := finder.Entries(dir)
	if err != nil {
		return "", false, err
	}

	pattern := finder.conv.patterns[kind]

	var matches []string

	for _, entry := range entries {
		if entry.IsDir() || !pattern.Match(entry.Name()) {
			continue
		}

		matches = append(matches, filepath.Join(dir, entry.Name()))
	}

	switch len(matches) {
	case 0:
		return "", false, nil
	case 1:
		return matches[0], true, nil
	}

	l.Warnf("Found %d %s files in %s, using %s: %s", len(matches), kind, dir, filepath.Base(matches[0]), strings.Join(matches, ", "))

	return matches[0], true, nil
}

// ExternalDir returns the path of the external-reference entry in dir, if there is one.
// The entry may not be a directory; callers decide whether that is an error.
func (finder *Finder) ExternalDir(dir string) (string, bool, error) {
	path := filepath.Join(dir, finder.conv.ExternalDir)

	exists, err := vfs.FileExists(finder.fs, path)
	if err != nil || !exists {
		return "", false, err
	}

	return path, true, nil
}

// IsExternalDir reports whether name is the external-reference directory name.
func (finder *Finder) IsExternalDir(name string) bool {
	return name == finder.conv.ExternalDir
}

// IsTestTrigger reports whether name is the test trigger name.
func (finder *Finder) IsTestTrigger(name string) bool {
	return name == finder.conv.TestTrigger
}

// HasTestTrigger reports whether dir itself contains the test trigger.
func (finder *Finder) HasTestTrigger(dir string) (bool, error) {
	path := filepath.Join(dir, finder.conv.TestTrigger)

	exists, err := vfs.FileExists(finder.fs, path)
	if err != nil || !exists {
		return false, err
	}

	return !vfs.IsDir(finder.fs, path), nil
}

// IsDir reports whether path is a directory.
func (finder *Finder) IsDir(path string) bool {
	return vfs.IsDir(finder.fs, path)
}

// FS returns the filesystem the finder reads.
func (finder *Finder) FS() vfs.FS {
	return finder.fs
}
