package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Describes where the native build leaves its artifacts on a host platform
// and where they are staged.
type Platform struct {
	RID         string // Runtime identifier naming the staging directory (e.g., "win-x64").
	Library     string // File name of the dynamic library.
	Symbols     string // File name of the debug-symbol companion, empty if none.
	MultiConfig bool   // Whether artifacts land in a per-variant subdirectory.
}

// Returns the platform for a runtime identifier such as "win-x64" or
// "linux-arm64".
func PlatformFor(rid string) (Platform, error) {
	osPart, arch, ok := strings.Cut(strings.ToLower(strings.TrimSpace(rid)), "-")
	if !ok || (arch != "x64" && arch != "arm64") {
		return Platform{}, fmt.Errorf("%w: %q", ErrInvalidPlatform, rid)
	}

	p := Platform{RID: osPart + "-" + arch}
	switch osPart {
	case "win":
		p.Library = "cmb.dll"
		p.Symbols = "cmb.pdb"
		p.MultiConfig = true
	case "linux":
		p.Library = "libcmb.so"
	case "osx":
		p.Library = "libcmb.dylib"
	default:
		return Platform{}, fmt.Errorf("%w: %q", ErrInvalidPlatform, rid)
	}
	return p, nil
}

// Returns the platform of the running host.
func HostPlatform() (Platform, error) {
	return PlatformFor(hostRID(runtime.GOOS, runtime.GOARCH))
}

// Maps a GOOS/GOARCH pair to a runtime identifier.
func hostRID(goos, goarch string) string {
	osPart := goos
	switch goos {
	case "windows":
		osPart = "win"
	case "darwin":
		osPart = "osx"
	}

	arch := goarch
	if goarch == "amd64" {
		arch = "x64"
	}
	return osPart + "-" + arch
}

// Returns the directory containing the built native artifacts.
func (p Platform) ArtifactDir(buildDir string, v Variant) string {
	if p.MultiConfig {
		return filepath.Join(buildDir, string(v))
	}
	return buildDir
}

// Returns the artifact file names staged for a variant, library first.
func (p Platform) Artifacts(v Variant) []string {
	files := []string{p.Library}
	if v.IsDebug() && p.Symbols != "" {
		files = append(files, p.Symbols)
	}
	return files
}
