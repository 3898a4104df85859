// Package list implements the `testplan list` command, which prints the resolved tests or builds.
package list

import (
	"github.com/keyboardio/testplan/cli/flags"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName  = "list"
	CommandAlias = "ls"

	FormatFlagName = "format"
	JSONFlagName   = "json"
	BuildsFlagName = "builds"

	FormatText = "text"
	FormatJSON = "json"
)

// Options are the list command's options.
type Options struct {
	*options.TestplanOptions

	Format string
	JSON   bool
	Builds bool
}

// Validate checks the output format.
func (opts *Options) Validate() error {
	switch opts.Format {
	case FormatText, FormatJSON:
		return nil
	}

	return errors.New(InvalidFormatError(opts.Format))
}

func NewFlags(opts *Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        FormatFlagName,
			EnvVars:     flags.EnvVars("list-" + FormatFlagName),
			Destination: &opts.Format,
			Value:       FormatText,
			Usage:       "Output format. Valid values: text, json.",
		},
		&cli.BoolFlag{
			Name:        JSONFlagName,
			Destination: &opts.JSON,
			Usage:       "Output in JSON format (equivalent to --format=json).",
		},
		&cli.BoolFlag{
			Name:        BuildsFlagName,
			Destination: &opts.Builds,
			Usage:       "List the unique firmware builds instead of the tests.",
		},
	}
}

func NewCommand(opts *options.TestplanOptions) *cli.Command {
	cmdOpts := &Options{TestplanOptions: opts}

	return &cli.Command{
		Name:    CommandName,
		Aliases: []string{CommandAlias},
		Usage:   "List the tests, or the builds they run on, of the testing tree.",
		Flags:   NewFlags(cmdOpts),
		Before: func(_ *cli.Context) error {
			if cmdOpts.JSON {
				cmdOpts.Format = FormatJSON
			}

			return cmdOpts.Validate()
		},
		Action: errors.WithPanicHandling(func(cliCtx *cli.Context) error {
			return Run(cliCtx.Context, cmdOpts)
		}),
	}
}
