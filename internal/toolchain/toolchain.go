package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cruciblehq/cmbuild/internal/config"
)

// Environment variable naming the Emscripten SDK root.
const EnvSDK = "EMSCRIPTEN"

// Toolchain file location relative to the SDK root.
var toolchainFile = filepath.Join("cmake", "Modules", "Platform", "Emscripten.cmake")

// Paths into an Emscripten SDK installation.
type Descriptor struct {
	Root          string // SDK install root.
	ToolchainFile string // CMake toolchain description for cross-compiling.
	Emulator      string // Executes target binaries during configure-time probes.
	Archiver      string // Archiver supporting "-M" script mode.
}

// Outcome of target selection.
type Selection struct {
	Enabled    bool        // Whether the cross target should be built.
	Descriptor *Descriptor // Non-nil only when Enabled.
	Reason     string      // Human-readable diagnostic when not Enabled.
}

// Looks up an environment variable, like [os.LookupEnv].
type LookupFunc func(key string) (string, bool)

// Creates a descriptor for an SDK root on the given host OS.
//
// The emulator is taken as-is when absolute and joined to root otherwise.
func NewDescriptor(root, emulator, goos string) *Descriptor {
	if !filepath.IsAbs(emulator) {
		emulator = filepath.Join(root, emulator)
	}

	archiver := "emar"
	if goos == "windows" {
		archiver = "emar.bat"
	}

	return &Descriptor{
		Root:          root,
		ToolchainFile: filepath.Join(root, toolchainFile),
		Emulator:      emulator,
		Archiver:      filepath.Join(root, archiver),
	}
}

// Decides whether the cross target is enabled.
//
// An SDK root set in the configuration takes precedence over the environment.
// A nil lookup reads the process environment.
func Select(cfg *config.BuildConfiguration, lookup LookupFunc) Selection {
	if cfg.Wasm.Disabled {
		return Selection{Reason: "WebAssembly target disabled on the command line."}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}

	root := strings.TrimSpace(cfg.Wasm.SDK)
	if root == "" {
		if v, ok := lookup(EnvSDK); ok {
			root = strings.TrimSpace(v)
		}
	}

	if root == "" {
		return Selection{Reason: missingSDKReason()}
	}

	return Selection{
		Enabled:    true,
		Descriptor: NewDescriptor(root, cfg.Wasm.Emulator, runtime.GOOS),
	}
}

func missingSDKReason() string {
	return fmt.Sprintf("%s environment variable not set. Please install Emscripten and set the %s environment variable to the path of installation.", EnvSDK, EnvSDK)
}
