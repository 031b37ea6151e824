package build

import (
	"context"

	"github.com/cruciblehq/cmbuild/internal/paths"
)

// Configures, builds and stages the native dynamic library.
//
// The variant is applied at build time only; configure receives no
// variant-specific flags. The staging copy is the only check that the build
// produced the artifacts expected for the variant.
func runNative(ctx context.Context, p *pipeline) *PipelineResult {
	cfg := p.cfg
	dir := cfg.Native.BuildDir

	if !p.exec(ctx, StepConfigure, p.tool("-S", cfg.Source, "-B", dir)) {
		return p.finish()
	}

	if !p.exec(ctx, StepBuild, p.tool("--build", dir, "--config", cfg.Variant.String())) {
		return p.finish()
	}

	platform := cfg.Native.Platform
	p.do(StepStage, func() error {
		staged, err := stageFiles(
			p.logger,
			platform.ArtifactDir(dir, cfg.Variant),
			paths.NativeOutput(cfg.Output, platform.RID),
			platform.Artifacts(cfg.Variant),
		)
		for _, s := range staged {
			p.staged(s)
		}
		return err
	})

	return p.finish()
}
