package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for the user configuration directory.
	appName = "cmbuild"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644

	// Name of the project-local configuration file.
	ProjectConfigFile = "cmbuild.yaml"

	// Name of the artifact manifest written at the output root.
	ManifestFile = "manifest.json"
)

// Path to the user-level configuration file.
//
//	Linux:   $XDG_CONFIG_HOME/cmbuild/config.yaml
//	macOS:   ~/Library/Application Support/cmbuild/config.yaml
//	Windows: %LOCALAPPDATA%\cmbuild\config.yaml
func UserConfig() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Directory receiving the native runtime artifacts for a runtime identifier.
func NativeOutput(output, rid string) string {
	return filepath.Join(output, "runtimes", rid, "native")
}

// Directory receiving the WebAssembly static archive.
func WasmOutput(output string) string {
	return filepath.Join(output, "build", "wasm-binaries")
}

// Path of the merged WebAssembly static archive.
func MergedArchive(output string) string {
	return filepath.Join(WasmOutput(output), "cmb.a")
}

// Path of the archiver control script inside the cross build directory.
func ArchiverScript(buildDir string) string {
	return filepath.Join(buildDir, "cmb.ar")
}

// Path of the artifact manifest.
func Manifest(output string) string {
	return filepath.Join(output, ManifestFile)
}
