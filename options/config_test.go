package options_test

import (
	"testing"

	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/keyboardio/testplan/options"
	"github.com/keyboardio/testplan/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(fs, "/project/.testplan.yaml", []byte(`
root_dir: tests
outputs:
  - cmake=build/tests.cmake
  - json=/abs/plan.json
conventions:
  sketch_pattern: "*.ino"
log_level: debug
telemetry:
  trace_exporter: console
`), vfs.DefaultFilePerm))

	cfg, err := options.LoadConfigFile(fs, "/project/.testplan.yaml")
	require.NoError(t, err)

	assert.Equal(t, "/project/tests", cfg.RootDir)
	assert.Equal(t, []string{"cmake=/project/build/tests.cmake", "json=/abs/plan.json"}, cfg.Outputs)
	assert.Equal(t, "*.ino", cfg.Conventions.SketchPattern)
	assert.Empty(t, cfg.Conventions.DriverPattern)
	assert.Equal(t, "console", cfg.Telemetry.TraceExporter)
}

func TestLoadConfigFileInvalid(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()
	require.NoError(t, vfs.WriteFile(fs, "/p/.testplan.yaml", []byte("outputs: {a: b}\n"), vfs.DefaultFilePerm))

	_, err := options.LoadConfigFile(fs, "/p/.testplan.yaml")

	var invalid options.InvalidConfigFileError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "/p/.testplan.yaml", invalid.Path)
}

func TestMergePrecedence(t *testing.T) {
	t.Parallel()

	file := &options.Config{
		RootDir:     "/from/file",
		Outputs:     []string{"json=/file.json"},
		LogLevel:    "debug",
		Conventions: discovery.Conventions{SketchPattern: "*.ino"},
	}
	flags := &options.Config{
		LogLevel: "trace",
		NoColor:  true,
	}

	cfg, err := options.Merge(options.DefaultConfig(), file, flags)
	require.NoError(t, err)

	assert.Equal(t, "/from/file", cfg.RootDir)
	assert.Equal(t, []string{"json=/file.json"}, cfg.Outputs)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, options.LogFormatText, cfg.LogFormat)
	assert.Equal(t, "*.ino", cfg.Conventions.SketchPattern)
	assert.Equal(t, discovery.DefaultDriverPattern, cfg.Conventions.DriverPattern)
	assert.Equal(t, discovery.DefaultExternalDir, cfg.Conventions.ExternalDir)
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	fs := vfs.NewMemMapFS()

	path, err := options.FindConfigFile(fs, "", "/tests")
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, vfs.WriteFile(fs, "/tests/.testplan.yaml", nil, vfs.DefaultFilePerm))

	path, err = options.FindConfigFile(fs, "", "/tests")
	require.NoError(t, err)
	assert.Equal(t, "/tests/.testplan.yaml", path)

	path, err = options.FindConfigFile(fs, "/etc/testplan.yaml", "/tests")
	require.NoError(t, err)
	assert.Equal(t, "/etc/testplan.yaml", path)
}

func TestApply(t *testing.T) {
	t.Parallel()

	opts := options.NewTestplanOptionsForTest(vfs.NewMemMapFS(), "/tests")

	cfg := options.DefaultConfig()
	cfg.LogLevel = "warn"
	cfg.LogFormat = options.LogFormatJSON

	require.NoError(t, opts.Apply(cfg))
	assert.Equal(t, log.WarnLevel, opts.LogLevel)
	assert.Equal(t, log.WarnLevel, opts.Logger.Level())
	assert.True(t, opts.Logger.Formatter().DisabledColors())

	cfg.LogFormat = "xml"

	var invalid options.InvalidLogFormatError
	require.ErrorAs(t, opts.Apply(cfg), &invalid)

	cfg.LogFormat = options.LogFormatText
	cfg.LogLevel = "loud"
	require.Error(t, opts.Apply(cfg))
}
