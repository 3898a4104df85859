package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/plan"
	"github.com/mgutz/ansi"
)

func Run(ctx context.Context, opts *Options) error {
	p, err := plan.Generate(ctx, opts.Logger, opts.TestplanOptions)
	if err != nil {
		return err
	}

	var items any = p.Tests
	if opts.Builds {
		items = p.Builds
	}

	switch opts.Format {
	case FormatJSON:
		return outputJSON(opts.Writer, items)
	case FormatText:
		colorizer := NewColorizer(!opts.Logger.Formatter().DisabledColors())
		if opts.Builds {
			return outputBuilds(opts.Writer, colorizer, p.Builds)
		}

		return outputTests(opts.Writer, colorizer, p.Tests)
	default:
		return errors.New(InvalidFormatError(opts.Format))
	}
}

func outputJSON(w io.Writer, items any) error {
	jsonBytes, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return errors.New(err)
	}

	_, err = fmt.Fprintln(w, string(jsonBytes))

	return errors.New(err)
}

// Colorizer styles the parts of a text listing.
type Colorizer struct {
	idColorizer   func(string) string
	nameColorizer func(string) string
	pathColorizer func(string) string
}

// NewColorizer returns a colorizer; with enabled false every part is left as is.
func NewColorizer(enabled bool) *Colorizer {
	if !enabled {
		plain := func(s string) string { return s }
		return &Colorizer{idColorizer: plain, nameColorizer: plain, pathColorizer: plain}
	}

	return &Colorizer{
		idColorizer:   ansi.ColorFunc("yellow+h"),
		nameColorizer: ansi.ColorFunc("blue+bh"),
		pathColorizer: ansi.ColorFunc("white+d"),
	}
}

func outputTests(w io.Writer, c *Colorizer, tests []plan.TestRecord) error {
	for _, test := range tests {
		line := fmt.Sprintf("%s %s build=%s %s",
			c.idColorizer(strconv.Itoa(test.ID)),
			c.nameColorizer(test.Name),
			c.idColorizer(strconv.Itoa(test.BuildID)),
			c.pathColorizer(test.Origins.Name),
		)

		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.New(err)
		}
	}

	return nil
}

func outputBuilds(w io.Writer, c *Colorizer, builds []plan.BuildRecord) error {
	for _, build := range builds {
		modules := make([]string, 0, len(build.Modules))

		for _, module := range build.Modules {
			name := module.Name
			if name == "" {
				name = module.URL
			}

			if module.Commit != "" {
				name += "@" + module.Commit
			}

			modules = append(modules, name)
		}

		line := fmt.Sprintf("%s %s modules=[%s] %s",
			c.idColorizer(strconv.Itoa(build.ID)),
			c.nameColorizer(build.Sketch),
			strings.Join(modules, " "),
			c.pathColorizer(build.Origin),
		)

		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.New(err)
		}
	}

	return nil
}
