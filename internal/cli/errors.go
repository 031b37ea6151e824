package cli

import (
	"errors"
	"fmt"

	"github.com/cruciblehq/cmbuild/internal/build"
)

// Reports an error that must end the process with a specific code.
//
// A completed build that failed carries only the code; its diagnostics were
// already logged by the pipelines. Usage errors also carry the parse error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("build finished with exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Returns the process exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// Returns the process exit code for an error returned by [Execute]. Errors
// that are not an [ExitError] are configuration or usage errors.
func ExitCodeOf(err error) int {
	if err == nil {
		return build.ExitOK
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	return build.ExitUsage
}
