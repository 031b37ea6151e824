package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/cruciblehq/cmbuild/internal"
	"github.com/cruciblehq/cmbuild/internal/cli"
)

// The entry point for cmbuild.
//
// Initializes logging and executes the root command. A build that ran but
// failed exits with the code chosen by the orchestrator; usage and
// configuration errors exit with the usage code.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("cmbuild is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	err := cli.Execute()
	if err == nil {
		return
	}

	var exit *cli.ExitError
	if !errors.As(err, &exit) || exit.Err != nil {
		slog.Error(err.Error())
	}
	os.Exit(cli.ExitCodeOf(err))
}

// Creates a text logger on stderr whose level is seeded from build-time
// linker flags.
//
// The level is adjusted after flag parsing via cli.Execute.
func logger() *slog.Logger {
	internal.LogLevel().Set(logLevel())
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: internal.LogLevel(),
	}))
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
