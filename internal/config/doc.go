// Package config resolves the immutable [BuildConfiguration] for a run.
//
// Values are layered, lowest precedence first: built-in defaults, the YAML
// configuration file, and explicit [Overrides] supplied by the CLI. The
// resulting configuration is constructed once at startup and handed to every
// pipeline by pointer; pipelines never consult the process environment.
//
// Environment files (.env) are loaded separately by [LoadDotEnv] so that the
// toolchain selector sees their values through the ordinary environment.
package config
