package vfs_test

import (
	"testing"

	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOSFS(t *testing.T) {
	t.Parallel()

	fs := vfs.NewOSFS()

	assert.NotNil(t, fs)
	_, ok := fs.(*afero.OsFs)
	assert.True(t, ok, "expected *afero.OsFs type")
}

func TestNewMemMapFS(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()

	assert.NotNil(t, fs)
	_, ok := fs.(*afero.MemMapFs)
	assert.True(t, ok, "expected *afero.MemMapFs type")
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		setup    func(fs vfs.FS)
		path     string
		expected bool
	}{
		{
			name: "file exists",
			setup: func(fs vfs.FS) {
				require.NoError(t, afero.WriteFile(fs, "/test.txt", []byte("content"), 0644))
			},
			path:     "/test.txt",
			expected: true,
		},
		{
			name:     "file does not exist",
			setup:    func(fs vfs.FS) {},
			path:     "/nonexistent.txt",
			expected: false,
		},
		{
			name: "directory exists",
			setup: func(fs vfs.FS) {
				require.NoError(t, fs.MkdirAll("/testdir", 0755))
			},
			path:     "/testdir",
			expected: true,
		},
		{
			name:     "parent does not exist",
			setup:    func(fs vfs.FS) {},
			path:     "/nonexistent/file.txt",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fs := vfs.NewMemMapFS()
			tc.setup(fs)

			exists, err := vfs.FileExists(fs, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, exists)
		})
	}
}

func TestIsDir(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	require.NoError(t, fs.MkdirAll("/tree/a", 0755))
	require.NoError(t, afero.WriteFile(fs, "/tree/file", []byte("x"), 0644))

	assert.True(t, vfs.IsDir(fs, "/tree/a"))
	assert.False(t, vfs.IsDir(fs, "/tree/file"))
	assert.False(t, vfs.IsDir(fs, "/tree/missing"))
}

func TestReadDirIsSorted(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, fs.MkdirAll("/tree/"+name, 0755))
	}

	entries, err := vfs.ReadDir(fs, "/tree")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestWriteFileCreatesParents(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()

	require.NoError(t, vfs.WriteFile(fs, "/out/nested/plan.json", []byte("{}"), vfs.DefaultFilePerm))

	data, err := vfs.ReadFile(fs, "/out/nested/plan.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := vfs.ReadFile(vfs.NewMemMapFS(), "/missing")
	require.Error(t, err)
}
