package discovery

import (
	"github.com/gobwas/glob"
	"github.com/keyboardio/testplan/internal/errors"
)

const (
	DefaultExternalDir   = "__external__"
	DefaultTestTrigger   = "__test__"
	DefaultDriverPattern = "driver.py"
	DefaultSketchPattern = "sketch.ino"
	DefaultSpecPattern   = "specification.yaml"
)

// Conventions are the names and patterns that give files in a testing tree their meaning.
type Conventions struct {
	ExternalDir   string `yaml:"external_dir"`
	TestTrigger   string `yaml:"test_trigger"`
	DriverPattern string `yaml:"driver_pattern"`
	SketchPattern string `yaml:"sketch_pattern"`
	SpecPattern   string `yaml:"spec_pattern"`
}

// DefaultConventions returns the conventions used when nothing else is configured.
func DefaultConventions() Conventions {
	return Conventions{
		ExternalDir:   DefaultExternalDir,
		TestTrigger:   DefaultTestTrigger,
		DriverPattern: DefaultDriverPattern,
		SketchPattern: DefaultSketchPattern,
		SpecPattern:   DefaultSpecPattern,
	}
}

// FileKind is a kind of file a scope may contain once.
type FileKind int

const (
	Driver FileKind = iota
	Sketch
	Spec
)

func (kind FileKind) String() string {
	switch kind {
	case Driver:
		return "driver"
	case Sketch:
		return "sketch"
	case Spec:
		return "specification document"
	default:
		return "unknown"
	}
}

type compiledConventions struct {
	Conventions
	patterns map[FileKind]glob.Glob
}

func (conv Conventions) compile() (*compiledConventions, error) {
	if conv.ExternalDir == "" || conv.TestTrigger == "" {
		return nil, errors.New(InvalidConventionError{Reason: "external directory and test trigger names must not be empty"})
	}

	compiled := &compiledConventions{
		Conventions: conv,
		patterns:    make(map[FileKind]glob.Glob, 3), //nolint:mnd
	}

	for kind, pattern := range map[FileKind]string{
		Driver: conv.DriverPattern,
		Sketch: conv.SketchPattern,
		Spec:   conv.SpecPattern,
	} {
		if pattern == "" {
			return nil, errors.New(InvalidConventionError{Reason: kind.String() + " pattern must not be empty"})
		}

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.New(InvalidConventionError{Reason: "invalid " + kind.String() + " pattern " + pattern + ": " + err.Error()})
		}

		compiled.patterns[kind] = g
	}

	return compiled, nil
}
