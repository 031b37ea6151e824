package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/cmbuild/internal"
	"github.com/cruciblehq/cmbuild/internal/build"
)

// Represents the root command for cmbuild.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Echo every external command and its exit code."`
	Debug   bool       `short:"d" help:"Enable debug output."`
	Config  string     `short:"c" help:"Configuration file (default: ./cmbuild.yaml, then the user config)." placeholder:"PATH" type:"path"`
	Build   BuildCmd   `cmd:"" default:"withargs" help:"Build the native and WebAssembly targets (default)."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
//
// Builds are not cancellable: every external tool runs to completion once
// started, so the context carries no signal handling.
func Execute() error {
	return execute(context.Background(), os.Args[1:])
}

// Parses args and runs the selected subcommand. Parse failures print the
// usage summary and are returned as an [ExitError] carrying the usage code.
func execute(ctx context.Context, args []string, options ...kong.Option) error {
	parser, err := kong.New(&RootCmd, append([]kong.Option{
		kong.Name(internal.Name),
		kong.Description("Builds the cmb library natively and for WebAssembly, and stages the artifacts."),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	}, options...)...)
	if err != nil {
		return err
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return &ExitError{Code: build.ExitUsage, Err: err}
	}

	configureLogger()

	return kongCtx.Run()
}

// Applies CLI flags to the process-wide modes and the logger level.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	switch {
	case internal.IsDebug():
		internal.LogLevel().Set(slog.LevelDebug)
	case internal.IsQuiet():
		internal.LogLevel().Set(slog.LevelWarn)
	default:
		internal.LogLevel().Set(slog.LevelInfo)
	}
}
