// Package export writes plans in the formats downstream build systems read.
package export

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/plan"
	"github.com/keyboardio/testplan/internal/vfs"
	"github.com/keyboardio/testplan/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Writer serializes a plan.
type Writer interface {
	Write(w io.Writer, p *plan.Plan) error
}

var writers = map[string]Writer{
	FormatCMake: CMakeWriter{},
	FormatJSON:  JSONWriter{},
	FormatHCL:   HCLWriter{},
}

const (
	FormatCMake = "cmake"
	FormatJSON  = "json"
	FormatHCL   = "hcl"
)

// Formats returns the supported format names, sorted.
func Formats() []string {
	formats := make([]string, 0, len(writers))
	for format := range writers {
		formats = append(formats, format)
	}

	slices.Sort(formats)

	return formats
}

// WriterFor returns the writer of format.
func WriterFor(format string) (Writer, error) {
	writer, ok := writers[format]
	if !ok {
		return nil, errors.New(UnknownFormatError(format))
	}

	return writer, nil
}

// Target is one output file.
type Target struct {
	Format   string
	Path     string
	IfExists IfExists
}

// ParseTarget parses a `format=path` target. Relative paths are taken relative to baseDir.
func ParseTarget(value, baseDir string, ifExists IfExists) (Target, error) {
	format, path, ok := strings.Cut(value, "=")
	if !ok || format == "" || path == "" {
		return Target{}, errors.New(InvalidTargetError(value))
	}

	if _, err := WriterFor(format); err != nil {
		return Target{}, err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	path = filepath.Clean(path)

	return Target{Format: format, Path: path, IfExists: ifExists}, nil
}

// ParseTargets parses every value with ParseTarget. A target repeating an earlier one is dropped;
// two formats written to the same path are an error.
func ParseTargets(values []string, baseDir string, ifExists IfExists) ([]Target, error) {
	targets := make([]Target, 0, len(values))
	formats := make(map[string]string, len(values))

	for _, value := range values {
		target, err := ParseTarget(value, baseDir, ifExists)
		if err != nil {
			return nil, err
		}

		if format, ok := formats[target.Path]; ok {
			if format == target.Format {
				continue
			}

			return nil, errors.New(DuplicateTargetError{Path: target.Path, Formats: []string{format, target.Format}})
		}

		formats[target.Path] = target.Format
		targets = append(targets, target)
	}

	return targets, nil
}

// WriteAll renders p once per target and writes the targets concurrently. After the first
// failure, targets that have not started yet are skipped.
func WriteAll(ctx context.Context, l log.Logger, fs vfs.FS, p *plan.Plan, targets []Target) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.New(err)
			}

			return Write(l, fs, p, target)
		})
	}

	return g.Wait()
}

// Write renders p in the target's format and writes it to the target's path.
func Write(l log.Logger, fs vfs.FS, p *plan.Plan, target Target) error {
	writer, err := WriterFor(target.Format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	if err := writer.Write(&buf, p); err != nil {
		return errors.Errorf("failed to render %s output %s: %w", target.Format, target.Path, err)
	}

	return writeFile(l, fs, target, buf.Bytes())
}
