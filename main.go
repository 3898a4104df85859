package main

import (
	"context"
	"os"

	"github.com/keyboardio/testplan/cli"
	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/options"
	"github.com/keyboardio/testplan/pkg/log"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// The main entrypoint for testplan
func main() {
	opts := options.NewTestplanOptions()
	opts.AppVersion = Version

	defer errors.Recover(checkForErrorsAndExit(opts))

	app := cli.NewApp(opts)

	ctx := log.ContextWithLogger(context.Background(), opts.Logger)
	err := app.RunContext(ctx, os.Args)

	checkForErrorsAndExit(opts)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
// The logger is read from opts on exit since the configured one replaces the initial logger.
func checkForErrorsAndExit(opts *options.TestplanOptions) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		logger := opts.Logger
		logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			logger.Trace(errStack)
		}

		os.Exit(errors.ExitCode(err))
	}
}
