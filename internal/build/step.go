package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cruciblehq/cmbuild/internal/config"
	"github.com/cruciblehq/cmbuild/internal/metrics"
	"github.com/cruciblehq/cmbuild/internal/runner"
)

// Build output produced by one pipeline.
type Target string

const (
	TargetNative Target = "native"
	TargetWasm   Target = "wasm"
)

// Pipeline step name.
type Step string

const (
	StepConfigure Step = "configure"
	StepBuild     Step = "build"
	StepScript    Step = "script"
	StepArchive   Step = "archive"
	StepStage     Step = "stage"
)

// Returns the sentinel error reported when the step fails.
func (s Step) sentinel() error {
	switch s {
	case StepConfigure:
		return ErrConfigure
	case StepBuild:
		return ErrBuild
	case StepScript, StepArchive:
		return ErrArchive
	default:
		return ErrStage
	}
}

// Outcome of a single pipeline step.
//
// A step fails when the external tool exits non-zero or when Cause is set
// (the tool could not be started, or a filesystem operation failed).
type StepResult struct {
	Target   Target
	Step     Step
	ExitCode int
	Duration time.Duration
	Cause    error
}

// Whether the step succeeded.
func (r StepResult) OK() bool {
	return r.Cause == nil && r.ExitCode == 0
}

// Returns nil for a successful step, otherwise an error matching the step's
// sentinel and, when present, the cause.
func (r StepResult) Err() error {
	switch {
	case r.OK():
		return nil
	case r.Cause != nil:
		return fmt.Errorf("%w: %s %s: %w", r.Step.sentinel(), r.Target, r.Step, r.Cause)
	default:
		return fmt.Errorf("%w: %s %s: exit code %d", r.Step.sentinel(), r.Target, r.Step, r.ExitCode)
	}
}

// Final state of a pipeline.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Outcome of one target pipeline.
type PipelineResult struct {
	Target  Target
	Outcome Outcome
	Steps   []StepResult // Steps that ran, in order. The last one failed if Outcome is failed.
	Staged  []string     // Files written under the output root, in staging order.
	Reason  string       // Why the pipeline was skipped.
	Err     error        // Error of the failed step.
}

// Whether the pipeline failed.
func (r *PipelineResult) Failed() bool {
	return r.Outcome == OutcomeFailed
}

// Executes the steps of one target pipeline and accumulates its result.
//
// Every step is checked as soon as it finishes. The first failure marks the
// pipeline failed and callers must stop issuing further steps.
type pipeline struct {
	target   Target
	cfg      *config.BuildConfiguration
	runner   runner.Runner
	recorder metrics.Recorder
	logger   *slog.Logger
	cmake    string
	started  time.Time
	result   *PipelineResult
}

// Creates a pipeline for target sharing the orchestrator's collaborators.
func newPipeline(target Target, opts *Options) *pipeline {
	return &pipeline{
		target:   target,
		cfg:      opts.Config,
		runner:   opts.Runner,
		recorder: opts.Recorder,
		logger:   opts.Logger.With("target", string(target)),
		cmake:    opts.CMake,
		started:  time.Now(),
		result:   &PipelineResult{Target: target},
	}
}

// Runs an external tool as a step and records its result.
func (p *pipeline) exec(ctx context.Context, step Step, cmd runner.Command) bool {
	p.logger.Info(fmt.Sprintf("%s %s", step, p.target))

	res := StepResult{Target: p.target, Step: step}
	out, err := p.runner.Run(ctx, cmd)
	if err != nil {
		res.Cause = err
	} else {
		res.ExitCode = out.ExitCode
		res.Duration = out.Duration
	}
	return p.record(res)
}

// Runs an in-process filesystem operation as a step and records its result.
func (p *pipeline) do(step Step, fn func() error) bool {
	start := time.Now()
	err := fn()
	return p.record(StepResult{
		Target:   p.target,
		Step:     step,
		Duration: time.Since(start),
		Cause:    err,
	})
}

// Appends a step result and reports whether the pipeline may continue.
func (p *pipeline) record(res StepResult) bool {
	p.result.Steps = append(p.result.Steps, res)

	if res.OK() {
		p.recorder.ObserveStep(string(p.target), string(res.Step), res.Duration, metrics.ResultSuccess)
		return true
	}

	p.recorder.ObserveStep(string(p.target), string(res.Step), res.Duration, metrics.ResultFailed)
	p.result.Outcome = OutcomeFailed
	p.result.Err = res.Err()
	p.logger.Error("step failed", "step", string(res.Step), "exit", res.ExitCode, "error", p.result.Err)
	return false
}

// Notes a staged file.
func (p *pipeline) staged(path string) {
	p.result.Staged = append(p.result.Staged, path)
}

// Finalises the pipeline result.
func (p *pipeline) finish() *PipelineResult {
	if p.result.Outcome == "" {
		p.result.Outcome = OutcomeSucceeded
	}

	label := metrics.ResultSuccess
	if p.result.Failed() {
		label = metrics.ResultFailed
	}
	p.recorder.ObservePipeline(string(p.target), time.Since(p.started), label)

	p.logger.Info(fmt.Sprintf("%s pipeline %s", p.target, p.result.Outcome), "staged", len(p.result.Staged))
	return p.result
}

// Returns a build-tool command.
func (p *pipeline) tool(args ...string) runner.Command {
	return runner.Command{Name: p.cmake, Args: args}
}
