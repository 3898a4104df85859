// Package validate implements the `testplan validate` command, which resolves and checks the
// testing tree without writing anything.
package validate

import (
	"context"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/plan"
	"github.com/keyboardio/testplan/options"
	"github.com/urfave/cli/v2"
)

const CommandName = "validate"

func NewCommand(opts *options.TestplanOptions) *cli.Command {
	return &cli.Command{
		Name:  CommandName,
		Usage: "Check that every scope of the testing tree is complete and every test name is unique.",
		Action: errors.WithPanicHandling(func(cliCtx *cli.Context) error {
			return Run(cliCtx.Context, opts)
		}),
	}
}

func Run(ctx context.Context, opts *options.TestplanOptions) error {
	p, err := plan.Generate(ctx, opts.Logger, opts)
	if err != nil {
		return err
	}

	opts.Logger.Infof("Testing tree %s is valid: %d tests, %d unique builds", opts.RootDir, len(p.Tests), len(p.Builds))

	return nil
}
