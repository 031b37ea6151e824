package build

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cruciblehq/cmbuild/internal/config"
	"github.com/cruciblehq/cmbuild/internal/metrics"
	"github.com/cruciblehq/cmbuild/internal/runner"
	"github.com/cruciblehq/cmbuild/internal/toolchain"
)

// Default build-configuration/build-execution tool.
const DefaultCMake = "cmake"

// Process exit codes derived from a [Report].
const (
	ExitOK             = 0
	ExitUsage          = 1
	ExitNativeFailed   = 2
	ExitWasmFailed     = 3
	ExitBothFailed     = 4
	ExitManifestFailed = 5
)

// Controls an orchestrator run.
type Options struct {
	Config   *config.BuildConfiguration // Run configuration. Required.
	Runner   runner.Runner              // Executes external tools. Required.
	Recorder metrics.Recorder           // Defaults to [metrics.NoopRecorder].
	Lookup   toolchain.LookupFunc       // Environment lookup for target selection. Defaults to the process environment.
	Logger   *slog.Logger               // Defaults to [slog.Default].
	CMake    string                     // Build tool executable. Defaults to [DefaultCMake].
}

// Returned after every orchestrator run.
type Report struct {
	Native   *PipelineResult
	Wasm     *PipelineResult
	Manifest string // Path of the artifact manifest, empty if nothing was staged.
	Err      error  // Manifest failure; pipeline failures live in the results.
}

// Returns the process exit code for the report.
func (r *Report) ExitCode() int {
	switch {
	case r.Native.Failed() && r.Wasm.Failed():
		return ExitBothFailed
	case r.Native.Failed():
		return ExitNativeFailed
	case r.Wasm.Failed():
		return ExitWasmFailed
	case r.Err != nil:
		return ExitManifestFailed
	}
	return ExitOK
}

// Builds every enabled target.
//
// The native pipeline always runs first, to completion. The WebAssembly
// pipeline runs next if the toolchain selector enables it, whatever the
// native outcome; otherwise the selector's diagnostic is logged once. Both
// pipelines are strictly sequential. Finally, the artifacts staged by the
// pipelines that succeeded are described in the output manifest.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Config == nil || opts.Runner == nil {
		return nil, fmt.Errorf("%w: config and runner are required", ErrInvalidOptions)
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.CMake == "" {
		opts.CMake = DefaultCMake
	}

	cfg := opts.Config
	opts.Logger.Info("starting build",
		"source", cfg.Source,
		"output", cfg.Output,
		"variant", cfg.Variant.String(),
		"platform", cfg.Native.Platform.RID,
	)

	report := &Report{}
	report.Native = runNative(ctx, newPipeline(TargetNative, &opts))

	sel := toolchain.Select(cfg, opts.Lookup)
	if sel.Enabled {
		opts.Logger.Info("using emscripten", "sdk", sel.Descriptor.Root)
		report.Wasm = runWasm(ctx, newPipeline(TargetWasm, &opts), sel.Descriptor)
	} else {
		opts.Logger.Warn(sel.Reason)
		opts.Recorder.ObservePipeline(string(TargetWasm), 0, metrics.ResultSkipped)
		report.Wasm = &PipelineResult{Target: TargetWasm, Outcome: OutcomeSkipped, Reason: sel.Reason}
	}

	staged := published(report.Native, report.Wasm)
	if len(staged) > 0 {
		path, err := writeManifest(cfg.Output, staged)
		if err != nil {
			report.Err = fmt.Errorf("%w: %w", ErrManifest, err)
			opts.Logger.Error("failed to write artifact manifest", "error", err)
		} else {
			report.Manifest = path
		}
	}

	return report, nil
}

// Returns the staged files of the pipelines that succeeded, in pipeline
// order. A failed pipeline contributes nothing, even if some of its files
// reached the output before the failure.
func published(results ...*PipelineResult) []string {
	var files []string
	for _, r := range results {
		if r.Outcome == OutcomeSucceeded {
			files = append(files, r.Staged...)
		}
	}
	return files
}
