package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/cruciblehq/cmbuild/internal"
	"github.com/cruciblehq/cmbuild/internal/build"
	"github.com/cruciblehq/cmbuild/internal/config"
	"github.com/cruciblehq/cmbuild/internal/metrics"
	"github.com/cruciblehq/cmbuild/internal/paths"
	"github.com/cruciblehq/cmbuild/internal/runner"
	"github.com/google/uuid"
)

// Represents the 'cmbuild build' command.
type BuildCmd struct {
	EmscriptenSDK    string `name:"emscripten-sdk" help:"Emscripten SDK root (overrides EMSCRIPTEN)." placeholder:"PATH"`
	Variant          string `help:"Build variant: Debug, Release, RelWithDebInfo or MinSizeRel." placeholder:"NAME"`
	Source           string `help:"Source directory containing CMakeLists.txt." placeholder:"DIR"`
	Output           string `help:"Output root for staged artifacts." placeholder:"DIR"`
	StageWasmArchive bool   `help:"Also copy the unmerged primary WebAssembly library to the output."`
	NoWasm           bool   `help:"Skip the WebAssembly target."`
	MetricsFile      string `help:"Write build metrics in Prometheus text format to this file." placeholder:"PATH"`
	CMake            string `name:"cmake" default:"cmake" help:"Build tool executable."`
}

// Executes the build command.
//
// Resolves the configuration, runs both pipelines and converts a non-zero
// report into an [ExitError].
func (c *BuildCmd) Run(ctx context.Context) error {
	cfg, err := c.configuration()
	if err != nil {
		return err
	}

	if err := config.LoadDotEnv(cfg.Source); err != nil {
		return err
	}

	logger := slog.Default().With("run", uuid.NewString())

	exec := runner.NewExec(os.Stdout, os.Stderr)
	exec.SetEcho(internal.IsVerbose())
	exec.SetLogger(logger)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	report, err := build.Run(ctx, build.Options{
		Config:   cfg,
		Runner:   exec,
		Recorder: recorder,
		Logger:   logger,
		CMake:    c.CMake,
	})
	if err != nil {
		return err
	}

	if prom != nil {
		if err := prom.WriteFile(cfg.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	if code := report.ExitCode(); code != build.ExitOK {
		return &ExitError{Code: code}
	}
	return nil
}

// Resolves the run configuration from the config file and flags.
func (c *BuildCmd) configuration() (*config.BuildConfiguration, error) {
	var file *config.File

	path := RootCmd.Config
	if path == "" {
		found, err := config.Discover(paths.ProjectConfigFile, paths.UserConfig())
		if err != nil {
			return nil, err
		}
		path = found
	}

	if path != "" {
		f, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded configuration", "path", path)
		file = f
	}

	return config.Resolve(file, c.overrides())
}

// Returns the configuration overrides expressed by the flags.
func (c *BuildCmd) overrides() config.Overrides {
	o := config.Overrides{
		Source:      c.Source,
		Output:      c.Output,
		Variant:     c.Variant,
		SDK:         c.EmscriptenSDK,
		DisableWasm: c.NoWasm,
		MetricsFile: c.MetricsFile,
	}
	if c.StageWasmArchive {
		stage := true
		o.StageArchive = &stage
	}
	return o
}
