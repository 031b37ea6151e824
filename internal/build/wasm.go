package build

import (
	"context"
	"path/filepath"

	"github.com/cruciblehq/cmbuild/internal/paths"
	"github.com/cruciblehq/cmbuild/internal/runner"
	"github.com/cruciblehq/cmbuild/internal/toolchain"
)

// Cross-compiles the library with the Emscripten toolchain and merges its
// static libraries into a single archive.
//
// Only the configured target is built, so unrelated targets that cannot be
// cross-compiled are never attempted. The merge runs last because every
// constituent library must exist first. When staging is enabled the
// unmerged primary library is also copied next to the merged archive.
func runWasm(ctx context.Context, p *pipeline, tc *toolchain.Descriptor) *PipelineResult {
	cfg := p.cfg
	dir := cfg.Wasm.BuildDir

	configure := p.tool(
		"-S", cfg.Source,
		"-B", dir,
		"-G", cfg.Wasm.Generator,
		"-DCMAKE_BUILD_TYPE="+cfg.Variant.String(),
		"-DCMAKE_TOOLCHAIN_FILE="+filepath.ToSlash(tc.ToolchainFile),
		"-DCMAKE_CROSSCOMPILING_EMULATOR="+filepath.ToSlash(tc.Emulator),
	)
	if !p.exec(ctx, StepConfigure, configure) {
		return p.finish()
	}

	if !p.exec(ctx, StepBuild, p.tool("--build", dir, "--target", cfg.Wasm.Target)) {
		return p.finish()
	}

	spec := mergeSpec(dir, cfg.Output, cfg.Wasm.Libraries)
	script := paths.ArchiverScript(dir)
	if !p.do(StepScript, func() error { return spec.WriteScript(script) }) {
		return p.finish()
	}

	archive := runner.Command{Name: tc.Archiver, Args: []string{"-M"}, Stdin: script}
	if !p.exec(ctx, StepArchive, archive) {
		return p.finish()
	}
	p.staged(spec.Destination)

	if cfg.Wasm.StageArchive {
		primary := cfg.Wasm.Libraries[0]
		p.do(StepStage, func() error {
			staged, err := stageFiles(
				p.logger,
				filepath.Join(dir, filepath.Dir(primary)),
				paths.WasmOutput(cfg.Output),
				[]string{filepath.Base(primary)},
			)
			for _, s := range staged {
				p.staged(s)
			}
			return err
		})
	}

	return p.finish()
}

// Returns the merge of libraries (relative to buildDir) into the fixed
// archive location under output.
func mergeSpec(buildDir, output string, libraries []string) ArchiveMergeSpec {
	sources := make([]string, len(libraries))
	for i, lib := range libraries {
		sources[i] = filepath.Join(buildDir, lib)
	}
	return ArchiveMergeSpec{
		Destination: paths.MergedArchive(output),
		Sources:     sources,
	}
}
