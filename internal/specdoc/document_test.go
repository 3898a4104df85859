package specdoc_test

import (
	"testing"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/specdoc"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	doc, err := specdoc.Parse([]byte(`
name: Foo
description: ""
driver_cmd_line_flags: --fast
boards_url: https://example.com/boards.git
modules:
  - url: A
    name: core
  - url: B
    commit: v1
unknown_key: [1, 2]
`))
	require.NoError(t, err)

	require.NotNil(t, doc.Name)
	assert.Equal(t, "Foo", *doc.Name)
	require.NotNil(t, doc.Description)
	assert.Empty(t, *doc.Description)
	assert.Equal(t, "--fast", *doc.DriverCmdLineFlags)
	assert.Equal(t, "https://example.com/boards.git", *doc.BoardsURL)
	assert.Nil(t, doc.BoardsCommit)

	require.Len(t, doc.Modules, 2)
	assert.Equal(t, "core", *doc.Modules[0].Name)
	assert.Nil(t, doc.Modules[0].Commit)
	assert.Nil(t, doc.Modules[1].Name)
	assert.Equal(t, "v1", *doc.Modules[1].Commit)

	assert.True(t, doc.Has(specdoc.KeyDescription))
	assert.True(t, doc.Has(specdoc.KeyModules))
	assert.False(t, doc.Has(specdoc.KeyBoardsCommit))
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()

	doc, err := specdoc.Parse(nil)
	require.NoError(t, err)

	assert.Nil(t, doc.Name)
	assert.False(t, doc.Has(specdoc.KeyName))
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		data string
	}{
		{name: "invalid yaml", data: "name: [unclosed"},
		{name: "not a mapping", data: "- a\n- b\n"},
		{name: "name is not a string", data: "name: {a: b}\n"},
		{name: "modules is not a list", data: "modules: core\n"},
		{name: "module url is not a string", data: "modules:\n  - url: [A]\n"},
		{name: "module is not a mapping", data: "modules:\n  - A\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := specdoc.Parse([]byte(tc.data))
			require.Error(t, err)

			var malformed *specdoc.MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
			assert.NotEmpty(t, malformed.Reasons)
		})
	}
}

func TestParseKeepsScalarText(t *testing.T) {
	t.Parallel()

	doc, err := specdoc.Parse([]byte(`
name: 42
description: true
boards_commit: 0123456
modules:
  - url: A
    commit: 1234567
    name:
`))
	require.NoError(t, err)

	assert.Equal(t, "42", *doc.Name)
	assert.Equal(t, "true", *doc.Description)
	assert.Equal(t, "0123456", *doc.BoardsCommit)

	require.Len(t, doc.Modules, 1)
	assert.Equal(t, "1234567", *doc.Modules[0].Commit)
	assert.Nil(t, doc.Modules[0].Name)
}

func TestParseNullIsAbsent(t *testing.T) {
	t.Parallel()

	doc, err := specdoc.Parse([]byte("name:\ndescription: ~\n"))
	require.NoError(t, err)

	assert.Nil(t, doc.Name)
	assert.Nil(t, doc.Description)
	assert.False(t, doc.Has(specdoc.KeyName))
}

func TestParseFileNamesPath(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(fs, "/tests/specification.yaml", []byte("name: {a: b}\n"), vfs.DefaultFilePerm))

	_, err := specdoc.ParseFile(fs, "/tests/specification.yaml")
	require.Error(t, err)

	var malformed *specdoc.MalformedDocumentError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "/tests/specification.yaml", malformed.Path)
	assert.Contains(t, err.Error(), "/tests/specification.yaml")
}

func TestSchemaAllowsUnknownKeys(t *testing.T) {
	t.Parallel()

	schema := specdoc.Schema()

	assert.Nil(t, schema.AdditionalProperties)
	assert.Empty(t, schema.Required)
}
