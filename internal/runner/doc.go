// Package runner invokes external build tools as blocking child processes.
//
// A [Runner] executes a [Command] and reports its exit status in a [Result].
// A non-zero exit code is not an error: the caller decides whether the step
// failed. Errors are reserved for processes that could not be started or
// waited on. Tool output is streamed straight to the configured writers so
// that failures surface as the tool's own diagnostics.
//
// Example usage:
//
//	r := runner.NewExec(os.Stdout, os.Stderr)
//	res, err := r.Run(ctx, runner.Command{
//	    Name: "cmake",
//	    Args: []string{"--build", "build/windows", "--config", "Debug"},
//	})
//	if err != nil {
//	    return err
//	}
//	if res.ExitCode != 0 {
//	    // step failed
//	}
package runner
