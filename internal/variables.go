package internal

import (
	"fmt"
	"runtime"
	"strings"
)

// Name of the program, used for the logger group, config directory and CLI.
const Name = "cmbuild"

const (

	// String to indicate an undefined variable
	defaultUndefined = "(undefined)"

	// String to indicate a local (non-pipeline) build
	defaultLocalBuild = "(local)"

	// Main branch name used in version strings
	mainBranch = "main"
)

var (
	version   = "" // Version number (e.g., "1.2.3")
	stage     = "" // Development stage or git branch (e.g., "staging", "main")
	gitCommit = "" // Git commit hash (e.g., "a1b2c3d4")

	rawQuiet   = "false" // Whether to start in quiet mode
	rawDebug   = "false" // Whether to start in debug mode
	rawVerbose = "false" // Whether to echo external commands
)

// Returns the current version with any "v" prefix stripped, or "(undefined)".
func Version() string {
	v := strings.ToLower(strings.TrimSpace(version))
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(v, "v")
}

// Returns the development stage (git branch) the binary was built from.
func Stage() string {
	s := strings.TrimSpace(stage)
	if s == "" {
		return defaultUndefined
	}
	return strings.ToLower(s)
}

// Returns the git commit hash, or "(undefined)".
func GitCommit() string {
	if c := strings.TrimSpace(gitCommit); c != "" {
		return c
	}
	return defaultUndefined
}

// Returns true if any of the pipeline-provided linker variables is unset.
func IsLocal() bool {
	return strings.TrimSpace(version) == "" ||
		strings.TrimSpace(gitCommit) == "" ||
		strings.TrimSpace(stage) == ""
}

// Returns a detailed version string.
//
// Local builds report "(local)". Pipeline builds are formatted as
// "<version>+<stage> <git-commit> [<os>/<arch>]", with the stage omitted for
// the main branch.
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	s := Stage()
	if s == mainBranch {
		s = ""
	} else {
		s = "+" + s
	}

	return fmt.Sprintf("%s%s %s [%s/%s]", Version(), s, GitCommit(), runtime.GOOS, runtime.GOARCH)
}
