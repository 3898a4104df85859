// Package generate implements the `testplan generate` command, which resolves the testing tree and
// writes the resulting plan to one or more export targets.
package generate

import (
	"github.com/keyboardio/testplan/cli/flags"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "generate"

	OutputFlagName   = "output"
	CMakeFlagName    = "cmake"
	IfExistsFlagName = "if-exists"
)

// Options are the command's own options on top of the global ones.
type Options struct {
	*options.TestplanOptions

	Outputs  cli.StringSlice
	CMake    string
	IfExists string
}

func NewFlags(opts *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        OutputFlagName,
			Aliases:     []string{"o"},
			EnvVars:     flags.EnvVars(OutputFlagName),
			Destination: &opts.Outputs,
			Usage:       "Export target as format=path, e.g. json=plan.json. Repeatable. Formats: cmake, json, hcl.",
		},
		&cli.StringFlag{
			Name:        CMakeFlagName,
			Aliases:     []string{"c"},
			EnvVars:     flags.EnvVars(CMakeFlagName),
			Destination: &opts.CMake,
			Usage:       "Write the CMake test definitions to this file. Shorthand for --output cmake=<path>.",
		},
		&cli.StringFlag{
			Name:        IfExistsFlagName,
			EnvVars:     flags.EnvVars(IfExistsFlagName),
			Destination: &opts.IfExists,
			Usage:       "What to do when an output file exists: overwrite, skip or error.",
			DefaultText: "overwrite",
		},
	}
}

func NewCommand(opts *options.TestplanOptions) *cli.Command {
	cmdOpts := &Options{TestplanOptions: opts}

	return &cli.Command{
		Name:      CommandName,
		Usage:     "Resolve the testing tree and write the build and test plan.",
		UsageText: "testplan generate [--output format=path]... [--cmake path]",
		Flags:     NewFlags(cmdOpts),
		Action: errors.WithPanicHandling(func(cliCtx *cli.Context) error {
			cmdOpts.applyFlags(cliCtx)
			return Run(cliCtx.Context, cmdOpts)
		}),
	}
}

// applyFlags lets the command's flags override the configured outputs and if-exists behavior.
func (opts *Options) applyFlags(cliCtx *cli.Context) {
	if cliCtx.IsSet(OutputFlagName) {
		opts.TestplanOptions.Outputs = opts.Outputs.Value()
	}

	if opts.CMake != "" {
		opts.TestplanOptions.Outputs = append(opts.TestplanOptions.Outputs, "cmake="+opts.CMake)
	}

	if opts.IfExists != "" {
		opts.TestplanOptions.IfExists = opts.IfExists
	}
}
