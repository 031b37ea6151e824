// Package build orchestrates the native and WebAssembly builds of cmb.
//
// [Run] drives an external build tool (CMake) through two independent
// pipelines. The native pipeline configures, builds and stages the host
// dynamic library, together with its debug symbols for debug variants. The
// WebAssembly pipeline, enabled only when an Emscripten SDK is available,
// configures with the Emscripten toolchain file and emulator, builds the
// single library target, then merges the resulting static libraries into
// one archive through an archiver control script.
//
// Every step yields a [StepResult] that is checked immediately; the first
// failure ends its pipeline without staging anything further. A failure in
// one pipeline never prevents the other from running. The [Report] maps the
// combined outcome to a process exit code.
//
// Example usage:
//
//	report, err := build.Run(ctx, build.Options{
//	    Config: cfg,
//	    Runner: runner.NewExec(os.Stdout, os.Stderr),
//	})
//	if err != nil {
//	    return err
//	}
//	os.Exit(report.ExitCode())
package build
