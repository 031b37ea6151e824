package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultSource        = "."
	defaultOutput        = "build/OUT"
	defaultWasmDir       = "build/wasm"
	defaultWasmTarget    = "cmb"
	defaultWasmGenerator = "Ninja"
	defaultVariant       = VariantDebug
)

// Static libraries produced by the cross build, in merge order. Paths are
// relative to the cross build directory.
var defaultWasmLibraries = []string{
	"libcmb.a",
	"shewchuk_predicates/libshewchuk_predicates.a",
}

// Settings for the native target.
type Native struct {
	BuildDir string   // Build directory for the native configure/build steps.
	Platform Platform // Host platform layout.
}

// Settings for the WebAssembly target.
type Wasm struct {
	BuildDir     string   // Build directory for the cross configure/build steps.
	SDK          string   // Explicit SDK root; empty defers to the environment.
	Target       string   // Single build target compiled by the cross build.
	Generator    string   // Build-system generator passed at configure time.
	Emulator     string   // Emulator path relative to the SDK root (or absolute).
	StageArchive bool     // Copy the unmerged primary library next to the merged archive.
	Libraries    []string // Static libraries to merge, relative to BuildDir.
	Disabled     bool     // Skip the cross target regardless of the environment.
}

// Immutable settings for one orchestrator run.
type BuildConfiguration struct {
	Source      string  // Source tree containing the build description.
	Output      string  // Output root for staged artifacts.
	Variant     Variant // Build variant shared by both targets.
	Native      Native
	Wasm        Wasm
	MetricsFile string // Prometheus text file written after the run; empty disables it.
}

// YAML configuration file schema. Pointer fields distinguish unset values
// from explicit zero values.
type File struct {
	Source  string   `yaml:"source,omitempty"`
	Output  string   `yaml:"output,omitempty"`
	Variant *Variant `yaml:"variant,omitempty"`
	Native  struct {
		BuildDir string `yaml:"build_dir,omitempty"`
		Platform string `yaml:"platform,omitempty"`
	} `yaml:"native,omitempty"`
	Wasm struct {
		BuildDir     string   `yaml:"build_dir,omitempty"`
		SDK          string   `yaml:"sdk,omitempty"`
		Target       string   `yaml:"target,omitempty"`
		Generator    string   `yaml:"generator,omitempty"`
		Emulator     string   `yaml:"emulator,omitempty"`
		StageArchive *bool    `yaml:"stage_archive,omitempty"`
		Libraries    []string `yaml:"libraries,omitempty"`
	} `yaml:"wasm,omitempty"`
}

// Values supplied on the command line. Empty strings and nil pointers leave
// the lower layers untouched.
type Overrides struct {
	Source       string
	Output       string
	Variant      string
	SDK          string
	StageArchive *bool
	DisableWasm  bool
	MetricsFile  string
}

// Reads and decodes a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, path, err)
	}
	return &f, nil
}

// Returns the first existing file among candidates, or "" if none exists.
// Candidates that cannot be inspected for reasons other than absence are
// reported as errors.
func Discover(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		info, err := os.Stat(c)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrConfigFile, err)
		}
		if !info.IsDir() {
			return c, nil
		}
	}
	return "", nil
}

// Builds the run configuration from defaults, an optional file and the CLI
// overrides.
func Resolve(file *File, o Overrides) (*BuildConfiguration, error) {
	if file == nil {
		file = &File{}
	}

	platform, err := resolvePlatform(file.Native.Platform)
	if err != nil {
		return nil, err
	}

	cfg := &BuildConfiguration{
		Source:  firstNonEmpty(o.Source, file.Source, defaultSource),
		Output:  firstNonEmpty(o.Output, file.Output, defaultOutput),
		Variant: defaultVariant,
		Native: Native{
			BuildDir: firstNonEmpty(file.Native.BuildDir, defaultNativeDir(platform)),
			Platform: platform,
		},
		Wasm: Wasm{
			BuildDir:  firstNonEmpty(file.Wasm.BuildDir, defaultWasmDir),
			SDK:       firstNonEmpty(o.SDK, file.Wasm.SDK),
			Target:    firstNonEmpty(file.Wasm.Target, defaultWasmTarget),
			Generator: firstNonEmpty(file.Wasm.Generator, defaultWasmGenerator),
			Emulator:  firstNonEmpty(file.Wasm.Emulator, defaultEmulator(runtime.GOOS)),
			Libraries: slices.Clone(defaultWasmLibraries),
			Disabled:  o.DisableWasm,
		},
		MetricsFile: o.MetricsFile,
	}

	if file.Variant != nil {
		cfg.Variant = *file.Variant
	}
	if o.Variant != "" {
		v, err := ParseVariant(o.Variant)
		if err != nil {
			return nil, err
		}
		cfg.Variant = v
	}

	if file.Wasm.StageArchive != nil {
		cfg.Wasm.StageArchive = *file.Wasm.StageArchive
	}
	if o.StageArchive != nil {
		cfg.Wasm.StageArchive = *o.StageArchive
	}

	if len(file.Wasm.Libraries) > 0 {
		cfg.Wasm.Libraries = slices.Clone(file.Wasm.Libraries)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Checks invariants the pipelines rely on.
func (c *BuildConfiguration) validate() error {
	if filepath.Clean(c.Native.BuildDir) == filepath.Clean(c.Wasm.BuildDir) {
		return fmt.Errorf("%w: native and wasm build directories must differ (%s)", ErrInvalidConfig, c.Native.BuildDir)
	}
	if len(c.Wasm.Libraries) == 0 {
		return fmt.Errorf("%w: at least one wasm library is required", ErrInvalidConfig)
	}
	return nil
}

// Returns the named platform, or the host platform when name is empty.
func resolvePlatform(name string) (Platform, error) {
	if name == "" {
		return HostPlatform()
	}
	return PlatformFor(name)
}

// Returns the native build directory for a platform. Windows keeps the
// historical build/windows location; other platforms build under their RID.
func defaultNativeDir(p Platform) string {
	if strings.HasPrefix(p.RID, "win-") {
		return "build/windows"
	}
	return filepath.Join("build", p.RID)
}

// Returns the emulator path shipped with the SDK for the given host OS.
func defaultEmulator(goos string) string {
	if goos == "windows" {
		return "node/16.20.0_64bit/bin/node.exe"
	}
	return "node/16.20.0_64bit/bin/node"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
