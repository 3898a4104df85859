package scope_test

import (
	"testing"

	"github.com/keyboardio/testplan/internal/scope"
	"github.com/keyboardio/testplan/test/helpers/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCompleteTree(t *testing.T) {
	t.Parallel()

	tree := mustBuildTree(t, baseTree())

	require.NoError(t, scope.Validate(logger.CreateLogger(), tree))
}

func TestInnerScopeGeneratesNoTest(t *testing.T) {
	t.Parallel()

	files := baseTree()
	files["/root/y/__test__"] = ""
	files["/root/y/leaf/specification.yaml"] = "description: leaf\n"

	tree := mustBuildTree(t, files)

	assert.False(t, tree.Root.GeneratesTests())
	assert.True(t, tree.ByPath["/root/y"].GeneratesTests())
	assert.True(t, tree.ByPath["/root/y/leaf"].GeneratesTests())

	var paths []string
	for _, node := range tree.TestNodes() {
		paths = append(paths, node.Path)
	}

	assert.Equal(t, []string{"/root/x", "/root/y", "/root/y/leaf"}, paths)
}

func TestValidateReportsEveryMissingAttribute(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/root/specification.yaml":   "description: d\n",
		"/root/a/specification.yaml": "name: a\n",
		"/root/b/driver.py":          "",
		"/root/c/__test__":           "",
		"/root/c/d/sketch.ino":       "",
		"/root/c/d/driver.py":        "",
	}

	tree := mustBuildTree(t, files)

	l, buf := logger.CreateRecordingLogger()

	assert.False(t, scope.CheckSubtree(l, tree.Root))

	err := scope.Validate(logger.CreateLogger(), tree)
	require.Error(t, err)

	var missingAttrs scope.MissingAttributesError
	require.ErrorAs(t, err, &missingAttrs)

	var reported []scope.MissingAttributeError

	for _, wrapped := range missingAttrs.Unwrap() {
		var missing scope.MissingAttributeError
		require.ErrorAs(t, wrapped, &missing)

		assert.Contains(t, tree.ByPath, missing.Path, "failures name real scopes")

		reported = append(reported, missing)
	}

	assert.Equal(t, []scope.MissingAttributeError{
		{Path: "/root/a", Attribute: "driver"},
		{Path: "/root/a", Attribute: "firmware sketch"},
		{Path: "/root/b", Attribute: "firmware sketch"},
		{Path: "/root/c", Attribute: "driver"},
		{Path: "/root/c", Attribute: "firmware sketch"},
	}, reported)

	assert.Contains(t, buf.String(), "[/root/b] No firmware sketch defined for test")
}

func TestValidateMissingDriver(t *testing.T) {
	t.Parallel()

	files := baseTree()
	delete(files, "/root/driver.py")
	files["/root/y/driver.py"] = ""

	tree := mustBuildTree(t, files)

	err := scope.Validate(logger.CreateLogger(), tree)

	var missingAttrs scope.MissingAttributesError
	require.ErrorAs(t, err, &missingAttrs)
	require.Len(t, missingAttrs.Unwrap(), 1)
	assert.Contains(t, err.Error(), "/root/x: no driver defined")
}
