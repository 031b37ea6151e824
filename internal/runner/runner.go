package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"
)

// An external tool invocation.
type Command struct {
	Name  string   // Executable name or path.
	Args  []string // Arguments, without the executable.
	Stdin string   // File redirected to standard input; empty leaves it closed.
}

// Formats the command as a shell-like line for logging.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(quote(c.Name))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	if c.Stdin != "" {
		b.WriteString(" <")
		b.WriteString(quote(c.Stdin))
	}
	return b.String()
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Exit status of a finished command.
type Result struct {
	ExitCode int           // Process exit code.
	Duration time.Duration // Wall time between start and exit.
}

// Executes commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Runs commands as host processes.
type Exec struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	echo   bool
}

// Creates an [Exec] streaming child output to stdout and stderr. Nil writers
// discard the corresponding stream.
func NewExec(stdout, stderr io.Writer) *Exec {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Exec{stdout: stdout, stderr: stderr, logger: slog.Default()}
}

// Routes command records to logger, so they carry its attributes.
func (e *Exec) SetLogger(logger *slog.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// Logs each command line and exit code at info level when enabled.
func (e *Exec) SetEcho(enabled bool) {
	e.echo = enabled
}

// Runs cmd and blocks until it exits.
func (e *Exec) Run(ctx context.Context, cmd Command) (*Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdout = e.stdout
	c.Stderr = e.stderr

	if cmd.Stdin != "" {
		f, err := os.Open(cmd.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStdin, err)
		}
		defer f.Close()
		c.Stdin = f
	}

	e.log("run", "cmd", cmd.String())

	start := time.Now()
	err := c.Run()
	res := &Result{Duration: time.Since(start)}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrStart, cmd.Name, err)
	}

	e.log("exited", "cmd", cmd.Name, "code", res.ExitCode, "duration", res.Duration.Round(time.Millisecond))
	return res, nil
}

func (e *Exec) log(msg string, args ...any) {
	if e.echo {
		e.logger.Info(msg, args...)
		return
	}
	e.logger.Debug(msg, args...)
}
