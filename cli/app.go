// Package cli wires the testplan commands into a command line application.
package cli

import (
	"github.com/keyboardio/testplan/cli/commands/generate"
	"github.com/keyboardio/testplan/cli/commands/list"
	"github.com/keyboardio/testplan/cli/commands/validate"
	"github.com/keyboardio/testplan/cli/flags"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/telemetry"
	"github.com/keyboardio/testplan/options"
	"github.com/keyboardio/testplan/pkg/log"
	"github.com/urfave/cli/v2"
)

const AppName = "testplan"

// NewApp creates the testplan command line application.
func NewApp(opts *options.TestplanOptions) *cli.App {
	flagsCfg := new(options.Config)

	app := &cli.App{
		Name:      AppName,
		Usage:     "Resolve a directory tree of firmware test specifications into builds and tests.",
		UsageText: "testplan [global options] command [options]",
		Description: `testplan walks a testing tree, where every directory may refine the firmware build,
driver and metadata it inherits from its parent. Directories holding a test trigger become tests.
Equal builds are merged so each is compiled once.`,
		Version:   opts.AppVersion,
		Writer:    opts.Writer,
		ErrWriter: opts.ErrWriter,
		Flags:     flags.NewGlobalFlags(flagsCfg),
		Commands: []*cli.Command{
			generate.NewCommand(opts),
			validate.NewCommand(opts),
			list.NewCommand(opts),
		},
		Before: func(cliCtx *cli.Context) error {
			return beforeRunningCommand(cliCtx, opts, flagsCfg)
		},
		After: func(cliCtx *cli.Context) error {
			ctx := cliCtx.Context

			return errors.Join(
				telemetry.TracerFromContext(ctx).Shutdown(ctx),
				telemetry.MeterFromContext(ctx).Shutdown(ctx),
			)
		},
	}

	return app
}

// beforeRunningCommand layers the configuration, applies it to opts and attaches the logger,
// tracer and meter to the command context.
func beforeRunningCommand(cliCtx *cli.Context, opts *options.TestplanOptions, flagsCfg *options.Config) error {
	cfg, err := resolveConfig(opts, flagsCfg)
	if err != nil {
		return err
	}

	if err := opts.Apply(cfg); err != nil {
		return err
	}

	if opts.ConfigFile != "" {
		opts.Logger.Debugf("Loaded config file %s", opts.ConfigFile)
	}

	tracer, err := telemetry.NewTracer(cliCtx.Context, AppName, opts.AppVersion, opts.ErrWriter, opts.Telemetry)
	if err != nil {
		return err
	}

	meter, err := telemetry.NewMeter(cliCtx.Context, AppName, opts.AppVersion, opts.ErrWriter, opts.Telemetry)
	if err != nil {
		return errors.Join(err, tracer.Shutdown(cliCtx.Context))
	}

	ctx := log.ContextWithLogger(cliCtx.Context, opts.Logger)
	ctx = telemetry.ContextWithTracer(ctx, tracer)
	ctx = telemetry.ContextWithMeter(ctx, meter)
	cliCtx.Context = options.ContextWithOptions(ctx, opts)

	return nil
}

// resolveConfig merges the built-in defaults, the config file and the command line, in that order.
func resolveConfig(opts *options.TestplanOptions, flagsCfg *options.Config) (*options.Config, error) {
	rootDir := flagsCfg.RootDir
	if rootDir == "" {
		rootDir = options.DefaultConfig().RootDir
	}

	path, err := options.FindConfigFile(opts.FS, flagsCfg.ConfigFile, rootDir)
	if err != nil {
		return nil, err
	}

	var fileCfg *options.Config

	if path != "" {
		if fileCfg, err = options.LoadConfigFile(opts.FS, path); err != nil {
			return nil, err
		}
	}

	cfg, err := options.Merge(options.DefaultConfig(), fileCfg, flagsCfg)
	if err != nil {
		return nil, err
	}

	cfg.ConfigFile = path

	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}

	return cfg, nil
}
