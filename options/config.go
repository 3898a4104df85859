package options

import (
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/keyboardio/testplan/internal/discovery"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config is one layer of configuration: built-in defaults, the config file or the command line.
// Empty fields leave the lower layer's value in place.
type Config struct {
	RootDir     string                `yaml:"root_dir"`
	Outputs     []string              `yaml:"outputs"`
	Conventions discovery.Conventions `yaml:"conventions"`
	LogLevel    string                `yaml:"log_level"`
	LogFormat   string                `yaml:"log_format"`
	NoColor     bool                  `yaml:"no_color"`
	IfExists    string                `yaml:"if_exists"`
	Telemetry   TelemetryConfig       `yaml:"telemetry"`

	// ConfigFile is set by the command line only.
	ConfigFile string `yaml:"-"`
}

// TelemetryConfig configures tracing and metrics. Insecure applies to every OTLP exporter.
type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter"`
	HTTPEndpoint   string `yaml:"http_endpoint"`
	MetricExporter string `yaml:"metric_exporter"`
	Insecure       bool   `yaml:"insecure"`
	TraceParent    string `yaml:"-"`
}

// DefaultConfig returns the built-in configuration layer.
func DefaultConfig() *Config {
	return &Config{
		RootDir:     ".",
		Conventions: discovery.DefaultConventions(),
		LogLevel:    defaultLogLevel.String(),
		LogFormat:   LogFormatText,
		IfExists:    "overwrite",
		Telemetry:   TelemetryConfig{TraceExporter: "none", MetricExporter: "none"},
	}
}

// LoadConfigFile reads a YAML config file. Paths in it are relative to the file's directory.
func LoadConfigFile(fs vfs.FS, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	cfg := new(Config)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New(InvalidConfigFileError{Path: path, Err: err})
	}

	dir := filepath.Dir(path)

	if cfg.RootDir, err = resolvePath(dir, cfg.RootDir); err != nil {
		return nil, err
	}

	for i, output := range cfg.Outputs {
		format, target, ok := cutOutput(output)
		if !ok {
			continue
		}

		if target, err = resolvePath(dir, target); err != nil {
			return nil, err
		}

		cfg.Outputs[i] = format + "=" + target
	}

	return cfg, nil
}

// Merge layers the given configs over each other; later layers win for every non-empty field.
func Merge(layers ...*Config) (*Config, error) {
	merged := new(Config)

	for _, layer := range layers {
		if layer == nil {
			continue
		}

		if err := mergo.Merge(merged, layer, mergo.WithOverride); err != nil {
			return nil, errors.New(err)
		}
	}

	return merged, nil
}

// FindConfigFile returns the config file to load for cli: the explicitly given one, or the
// default file in the root directory if it exists. An empty result means no file.
func FindConfigFile(fs vfs.FS, explicit, rootDir string) (string, error) {
	if explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return "", errors.New(err)
		}

		return path, nil
	}

	rootDir, err := homedir.Expand(rootDir)
	if err != nil {
		return "", errors.New(err)
	}

	path := filepath.Join(rootDir, DefaultConfigFileName)

	exists, err := vfs.FileExists(fs, path)
	if err != nil || !exists {
		return "", err
	}

	return path, nil
}

// ExpandPaths expands `~` in the root directory and output paths.
func (cfg *Config) ExpandPaths() error {
	var err error

	if cfg.RootDir, err = homedir.Expand(cfg.RootDir); err != nil {
		return errors.New(err)
	}

	for i, output := range cfg.Outputs {
		format, target, ok := cutOutput(output)
		if !ok {
			continue
		}

		if target, err = homedir.Expand(target); err != nil {
			return errors.New(err)
		}

		cfg.Outputs[i] = format + "=" + target
	}

	return nil
}

func resolvePath(dir, path string) (string, error) {
	if path == "" {
		return "", nil
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return "", errors.New(err)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	return path, nil
}

func cutOutput(output string) (string, string, bool) {
	return strings.Cut(output, "=")
}
