package generate

import (
	"context"

	"github.com/keyboardio/testplan/internal/export"
	"github.com/keyboardio/testplan/internal/plan"
)

// Run generates the plan and writes it to every configured output. Without outputs the plan is
// printed as JSON.
func Run(ctx context.Context, opts *Options) error {
	l := opts.Logger

	ifExists, err := export.IfExistsFromString(opts.TestplanOptions.IfExists)
	if err != nil {
		return err
	}

	targets, err := export.ParseTargets(opts.TestplanOptions.Outputs, "", ifExists)
	if err != nil {
		return err
	}

	p, err := plan.Generate(ctx, l, opts.TestplanOptions)
	if err != nil {
		return err
	}

	l.Infof("Resolved %d tests on %d builds", len(p.Tests), len(p.Builds))

	if len(targets) == 0 {
		return export.JSONWriter{}.Write(opts.Writer, p)
	}

	return export.WriteAll(ctx, l, opts.FS, p, targets)
}
