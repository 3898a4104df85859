package discovery_test

import (
	"path/filepath"
	"testing"

	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/keyboardio/testplan/test/helpers/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs vfs.FS, paths ...string) {
	t.Helper()

	for _, path := range paths {
		require.NoError(t, vfs.WriteFile(fs, path, []byte(""), vfs.DefaultFilePerm))
	}
}

func newFinder(t *testing.T, fs vfs.FS) *discovery.Finder {
	t.Helper()

	finder, err := discovery.NewFinder(fs, discovery.DefaultConventions())
	require.NoError(t, err)

	return finder
}

func TestSubDirs(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	writeFiles(t, fs,
		"/tests/b/driver.py",
		"/tests/a/sketch.ino",
		"/tests/__external__/driver.py",
		"/tests/.git/config",
		"/tests/file.txt",
	)
	require.NoError(t, fs.MkdirAll("/tests/empty", vfs.DefaultDirPerm))

	dirs, err := newFinder(t, fs).SubDirs("/tests")
	require.NoError(t, err)

	assert.Equal(t, []string{"/tests/a", "/tests/b"}, dirs)
}

func TestFindUnique(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		files    []string
		kind     discovery.FileKind
		expected string
		found    bool
		warns    bool
	}{
		{
			name:     "single driver",
			files:    []string{"/s/driver.py", "/s/sketch.ino"},
			kind:     discovery.Driver,
			expected: "/s/driver.py",
			found:    true,
		},
		{
			name:  "nothing found",
			files: []string{"/s/driver.py"},
			kind:  discovery.Sketch,
		},
		{
			name:  "nested files are not searched",
			files: []string{"/s/sub/specification.yaml"},
			kind:  discovery.Spec,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fs := vfs.NewMemMapFS()
			writeFiles(t, fs, tc.files...)

			l, buf := logger.CreateRecordingLogger()

			path, found, err := newFinder(t, fs).FindUnique(l, "/s", tc.kind)
			require.NoError(t, err)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.expected, path)
			assert.Empty(t, buf.String())
		})
	}
}

func TestFindUniqueWarnsOnMultipleMatches(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	writeFiles(t, fs, "/s/b.ino", "/s/a.ino")

	conv := discovery.DefaultConventions()
	conv.SketchPattern = "*.ino"

	finder, err := discovery.NewFinder(fs, conv)
	require.NoError(t, err)

	l, buf := logger.CreateRecordingLogger()

	path, found, err := finder.FindUnique(l, "/s", discovery.Sketch)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, filepath.Join("/s", "a.ino"), path)
	assert.Contains(t, buf.String(), "WRN")
	assert.Contains(t, buf.String(), "Found 2 sketch files in /s")
}

func TestExternalDirAndTrigger(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	writeFiles(t, fs, "/s/__external__/driver.py", "/s/__test__", "/t/__external__")

	finder := newFinder(t, fs)

	path, ok, err := finder.ExternalDir("/s")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/s/__external__", path)
	assert.True(t, finder.IsDir(path))

	path, ok, err = finder.ExternalDir("/t")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, finder.IsDir(path))

	trigger, err := finder.HasTestTrigger("/s")
	require.NoError(t, err)
	assert.True(t, trigger)

	trigger, err = finder.HasTestTrigger("/t")
	require.NoError(t, err)
	assert.False(t, trigger)
}

func TestNewFinderRejectsInvalidConventions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		modify func(conv *discovery.Conventions)
	}{
		{name: "empty external dir", modify: func(conv *discovery.Conventions) { conv.ExternalDir = "" }},
		{name: "empty driver pattern", modify: func(conv *discovery.Conventions) { conv.DriverPattern = "" }},
		{name: "broken pattern", modify: func(conv *discovery.Conventions) { conv.SpecPattern = "[" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			conv := discovery.DefaultConventions()
			tc.modify(&conv)

			_, err := discovery.NewFinder(vfs.NewMemMapFS(), conv)

			var invalid discovery.InvalidConventionError
			require.ErrorAs(t, err, &invalid)
		})
	}
}
