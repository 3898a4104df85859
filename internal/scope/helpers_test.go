package scope_test

import (
	"context"
	"testing"

	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/scope"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/keyboardio/testplan/test/helpers/logger"
	"github.com/stretchr/testify/require"
)

// newTree writes files (path -> content) to an in-memory filesystem.
func newTree(t *testing.T, files map[string]string) vfs.FS {
	t.Helper()

	fs := vfs.NewMemMapFS()
	for path, content := range files {
		require.NoError(t, vfs.WriteFile(fs, path, []byte(content), vfs.DefaultFilePerm))
	}

	return fs
}

func buildTree(t *testing.T, fs vfs.FS, root string) (*scope.Tree, error) {
	t.Helper()

	finder, err := discovery.NewFinder(fs, discovery.DefaultConventions())
	require.NoError(t, err)

	return scope.NewBuilder(finder).Build(context.Background(), logger.CreateLogger(), root)
}

func mustBuildTree(t *testing.T, files map[string]string) *scope.Tree {
	t.Helper()

	tree, err := buildTree(t, newTree(t, files), "/root")
	require.NoError(t, err)

	return tree
}

// baseTree is a complete root scope with two plain children.
func baseTree() map[string]string {
	return map[string]string{
		"/root/specification.yaml":   "description: firmware tests\nmodules:\n  - url: A\n    name: core\n",
		"/root/sketch.ino":           "",
		"/root/driver.py":            "",
		"/root/x/specification.yaml": "description: x tests\n",
		"/root/y/specification.yaml": "description: y tests\n",
	}
}
